package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification event kinds
const (
	EventOTPGenerate = "otp_generate"
	EventOTPVerify   = "otp_verify"
	EventVoiceVerify = "voice_verify"
)

// Verification outcomes
const (
	OutcomeIssued    = "issued"
	OutcomeApproved  = "approved"
	OutcomeRejected  = "rejected"
	OutcomeExpired   = "expired"
	OutcomeBlocked   = "blocked"
	OutcomeFailed    = "failed"
	OutcomeNotFound  = "not_found"
	OutcomeUndeliver = "undelivered"
)

// VerificationEvent is one entry of the audit trail. Codes are never recorded.
type VerificationEvent struct {
	gorm.Model
	EventID        string  `json:"event_id" gorm:"uniqueIndex"`
	Kind           string  `json:"kind" gorm:"not null;index"`
	UserID         string  `json:"user_id" gorm:"not null;index"`
	TransactionID  string  `json:"transaction_id" gorm:"index"`
	Outcome        string  `json:"outcome" gorm:"not null"`
	Confidence     float64 `json:"confidence"`
	EmotionalState string  `json:"emotional_state"`
	Detail         string  `json:"detail"`
}

func (v *VerificationEvent) BeforeCreate(tx *gorm.DB) error {
	if v.EventID == "" {
		v.EventID = "EVT" + uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	return nil
}
