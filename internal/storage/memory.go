package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryStore holds all verification state in memory.
// Everything is lost on restart.
type MemoryStore struct {
	otps     map[string]*models.OTPEntry
	otpOrder []string
	profiles map[string]*models.VoiceProfile
	events   []*models.VerificationEvent

	// Mutexes for thread safety
	otpMu     sync.RWMutex
	profileMu sync.RWMutex
	eventMu   sync.RWMutex

	eventCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		otps:     make(map[string]*models.OTPEntry),
		profiles: make(map[string]*models.VoiceProfile),
	}
}

// OTP operations
func (m *MemoryStore) CreateOTP(entry *models.OTPEntry) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	if _, exists := m.otps[entry.OTPID]; exists {
		return fmt.Errorf("otp %s already exists", entry.OTPID)
	}

	stored := *entry
	m.otps[entry.OTPID] = &stored
	m.otpOrder = append(m.otpOrder, entry.OTPID)
	return nil
}

// FindOTP scans entries in issue order and returns a copy of the first one
// for the pair.
func (m *MemoryStore) FindOTP(userID, transactionID string) (*models.OTPEntry, error) {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()

	for _, id := range m.otpOrder {
		entry := m.otps[id]
		if entry.Matches(userID, transactionID) {
			found := *entry
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateOTP(entry *models.OTPEntry) error {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	existing, exists := m.otps[entry.OTPID]
	if !exists {
		return ErrNotFound
	}
	*existing = *entry
	return nil
}

func (m *MemoryStore) DeleteOTP(otpID string) (bool, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	return m.deleteOTPLocked(otpID), nil
}

func (m *MemoryStore) deleteOTPLocked(otpID string) bool {
	if _, exists := m.otps[otpID]; !exists {
		return false
	}
	delete(m.otps, otpID)
	for i, id := range m.otpOrder {
		if id == otpID {
			m.otpOrder = append(m.otpOrder[:i], m.otpOrder[i+1:]...)
			break
		}
	}
	return true
}

// DeleteExpiredOTPs removes every entry expired at now and returns their ids
func (m *MemoryStore) DeleteExpiredOTPs(now time.Time) ([]string, error) {
	m.otpMu.Lock()
	defer m.otpMu.Unlock()

	var expired []string
	for _, id := range m.otpOrder {
		if m.otps[id].IsExpired(now) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		m.deleteOTPLocked(id)
	}
	return expired, nil
}

func (m *MemoryStore) CountOTPs() int {
	m.otpMu.RLock()
	defer m.otpMu.RUnlock()
	return len(m.otps)
}

// Voice profile operations
func (m *MemoryStore) GetVoiceProfile(userID string) (*models.VoiceProfile, error) {
	m.profileMu.RLock()
	defer m.profileMu.RUnlock()

	profile, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return copyProfile(profile), nil
}

// RecordVoiceScore creates the profile on first use and appends a score to
// the rolling history. score runs under the profile lock and is told whether
// the profile existed before this call.
func (m *MemoryStore) RecordVoiceScore(userID, phrase string, now time.Time, score func(hasProfile bool) float64) (*models.VoiceProfile, error) {
	m.profileMu.Lock()
	defer m.profileMu.Unlock()

	profile, exists := m.profiles[userID]
	value := score(exists)
	if !exists {
		profile = &models.VoiceProfile{
			UserID:           userID,
			Voiceprint:       fmt.Sprintf("voiceprint_%s_%d", userID, now.UnixMilli()),
			RegisteredPhrase: phrase,
			CreatedAt:        now,
		}
		m.profiles[userID] = profile
	}

	profile.ConfidenceHistory = append(profile.ConfidenceHistory, value)
	if len(profile.ConfidenceHistory) > models.MaxConfidenceHistory {
		profile.ConfidenceHistory = profile.ConfidenceHistory[len(profile.ConfidenceHistory)-models.MaxConfidenceHistory:]
	}
	profile.UpdatedAt = now

	return copyProfile(profile), nil
}

func copyProfile(p *models.VoiceProfile) *models.VoiceProfile {
	out := *p
	out.ConfidenceHistory = append([]float64(nil), p.ConfidenceHistory...)
	return &out
}

// Audit operations
func (m *MemoryStore) RecordEvent(event *models.VerificationEvent) error {
	m.eventMu.Lock()
	defer m.eventMu.Unlock()

	m.eventCounter++
	event.ID = m.eventCounter
	if event.EventID == "" {
		event.EventID = "EVT" + uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.UpdatedAt = event.CreatedAt

	m.events = append(m.events, event)
	return nil
}

// ListEvents returns the newest events for a user first
func (m *MemoryStore) ListEvents(userID string, limit int) ([]*models.VerificationEvent, error) {
	m.eventMu.RLock()
	defer m.eventMu.RUnlock()

	var events []*models.VerificationEvent
	for _, event := range m.events {
		if event.UserID == userID {
			events = append(events, event)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ID > events[j].ID
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (m *MemoryStore) Ping() error {
	return nil
}
