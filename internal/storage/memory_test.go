package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newEntry(id, userID, txnID string) *models.OTPEntry {
	return &models.OTPEntry{
		OTPID:         id,
		Code:          "123456",
		UserID:        userID,
		TransactionID: txnID,
		ExpiresAt:     baseTime.Add(5 * time.Minute),
		MaxAttempts:   3,
		CreatedAt:     baseTime,
	}
}

func TestMemoryStore_OTPLifecycle(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateOTP(newEntry("otp_1", "u1", "t1")))
	assert.Error(t, store.CreateOTP(newEntry("otp_1", "u1", "t1")))

	found, err := store.FindOTP("u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "otp_1", found.OTPID)

	// returned entries are copies
	found.Attempts = 2
	again, err := store.FindOTP("u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Attempts)

	require.NoError(t, store.UpdateOTP(found))
	again, err = store.FindOTP("u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Attempts)

	deleted, err := store.DeleteOTP("otp_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteOTP("otp_1")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.FindOTP("u1", "t1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.UpdateOTP(found), ErrNotFound)
}

func TestMemoryStore_FindOTPUsesIssueOrder(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.CreateOTP(newEntry(fmt.Sprintf("otp_%d", i), "u1", "t1")))
	}

	for i := 0; i < 5; i++ {
		found, err := store.FindOTP("u1", "t1")
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("otp_%d", i), found.OTPID)
		_, err = store.DeleteOTP(found.OTPID)
		require.NoError(t, err)
	}
}

func TestMemoryStore_DeleteExpiredOTPs(t *testing.T) {
	store := NewMemoryStore()
	expired := newEntry("otp_old", "u1", "t1")
	expired.ExpiresAt = baseTime.Add(-time.Second)
	require.NoError(t, store.CreateOTP(expired))
	require.NoError(t, store.CreateOTP(newEntry("otp_new", "u2", "t2")))

	removed, err := store.DeleteExpiredOTPs(baseTime)
	require.NoError(t, err)
	assert.Equal(t, []string{"otp_old"}, removed)
	assert.Equal(t, 1, store.CountOTPs())
}

func TestMemoryStore_VoiceProfileHistory(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetVoiceProfile("u1")
	assert.ErrorIs(t, err, ErrNotFound)

	for i := 0; i < 12; i++ {
		_, err := store.RecordVoiceScore("u1", fmt.Sprintf("phrase %d", i), baseTime.Add(time.Duration(i)*time.Second), fixedScore(float64(i)/100))
		require.NoError(t, err)
	}

	profile, err := store.GetVoiceProfile("u1")
	require.NoError(t, err)
	assert.Equal(t, "phrase 0", profile.RegisteredPhrase)
	assert.Equal(t, fmt.Sprintf("voiceprint_u1_%d", baseTime.UnixMilli()), profile.Voiceprint)
	assert.Len(t, profile.ConfidenceHistory, models.MaxConfidenceHistory)
	assert.Equal(t, 0.02, profile.ConfidenceHistory[0])
	assert.Equal(t, 0.11, profile.ConfidenceHistory[9])
	assert.Equal(t, baseTime.Add(11*time.Second), profile.UpdatedAt)
}

func TestMemoryStore_ConcurrentScores(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.RecordVoiceScore("u1", "phrase", baseTime, fixedScore(0.7))
		}(i)
	}
	wg.Wait()

	profile, err := store.GetVoiceProfile("u1")
	require.NoError(t, err)
	assert.Len(t, profile.ConfidenceHistory, models.MaxConfidenceHistory)
}

func TestMemoryStore_ConcurrentFirstScoreSeesNoProfileOnce(t *testing.T) {
	store := NewMemoryStore()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		misses int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.RecordVoiceScore("u1", "phrase", baseTime, func(hasProfile bool) float64 {
				if !hasProfile {
					mu.Lock()
					misses++
					mu.Unlock()
				}
				return 0.7
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, misses)
}

func fixedScore(v float64) func(bool) float64 {
	return func(bool) float64 { return v }
}

func TestMemoryStore_Events(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordEvent(&models.VerificationEvent{
			Kind:    models.EventOTPVerify,
			UserID:  "u1",
			Outcome: fmt.Sprintf("outcome-%d", i),
		}))
	}
	require.NoError(t, store.RecordEvent(&models.VerificationEvent{Kind: models.EventVoiceVerify, UserID: "u2", Outcome: models.OutcomeApproved}))

	events, err := store.ListEvents("u1", 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "outcome-4", events[0].Outcome)
	assert.Equal(t, "outcome-2", events[2].Outcome)
	assert.NotEmpty(t, events[0].EventID)

	events, err = store.ListEvents("u2", 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, store.Ping())
}
