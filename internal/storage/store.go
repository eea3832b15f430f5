package storage

import (
	"errors"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
)

// ErrNotFound is returned when a lookup has no matching record
var ErrNotFound = errors.New("record not found")

// Store defines the interface for volatile verification state
type Store interface {
	// OTP ledger operations
	CreateOTP(entry *models.OTPEntry) error
	FindOTP(userID, transactionID string) (*models.OTPEntry, error)
	UpdateOTP(entry *models.OTPEntry) error
	DeleteOTP(otpID string) (bool, error)
	DeleteExpiredOTPs(now time.Time) ([]string, error)
	CountOTPs() int

	// Voice profile operations
	GetVoiceProfile(userID string) (*models.VoiceProfile, error)
	RecordVoiceScore(userID, phrase string, now time.Time, score func(hasProfile bool) float64) (*models.VoiceProfile, error)
}

// AuditLog records verification outcomes
type AuditLog interface {
	RecordEvent(event *models.VerificationEvent) error
	ListEvents(userID string, limit int) ([]*models.VerificationEvent, error)
	Ping() error
}
