package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
	"github.com/Ananth-NQI/fraudshield-backend/internal/utils"
)

const (
	DefaultOTPTTL         = 5 * time.Minute
	DefaultOTPMaxAttempts = 3
)

// OTPService issues and validates short-lived numeric challenges per
// (user, transaction).
type OTPService struct {
	store       storage.Store
	audit       storage.AuditLog
	sender      Sender
	ttl         time.Duration
	maxAttempts int

	// verify is a read-modify-write over the ledger
	mu sync.Mutex

	now          func() time.Time
	generateCode func() (string, error)
}

// NewOTPService creates an OTP service. A zero ttl or maxAttempts falls back to the defaults.
func NewOTPService(store storage.Store, audit storage.AuditLog, sender Sender, ttl time.Duration, maxAttempts int) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultOTPMaxAttempts
	}
	return &OTPService{
		store:        store,
		audit:        audit,
		sender:       sender,
		ttl:          ttl,
		maxAttempts:  maxAttempts,
		now:          time.Now,
		generateCode: utils.GenerateSecureOTP,
	}
}

// TTL is how long an issued code stays valid
func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Generate issues a new OTP and hands the code to the sender. The code is
// never part of the returned payload.
func (s *OTPService) Generate(ctx context.Context, req models.OTPGenerateRequest) (*models.OTPResponse, error) {
	if req.UserID == "" || req.TransactionID == "" {
		return nil, newVerificationError(ErrValidation, "Missing required fields: userId or transactionId")
	}
	if req.PhoneNumber == "" && req.Email == "" {
		return nil, newVerificationError(ErrValidation, "Either phoneNumber or email must be provided")
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error during OTP generation", err)
	}

	now := s.now()
	entry := &models.OTPEntry{
		OTPID:         utils.GenerateSecureID("otp", now),
		Code:          code,
		UserID:        req.UserID,
		TransactionID: req.TransactionID,
		ExpiresAt:     now.Add(s.ttl),
		Attempts:      0,
		MaxAttempts:   s.maxAttempts,
		CreatedAt:     now,
	}

	if err := s.store.CreateOTP(entry); err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error during OTP generation", err)
	}

	log.Printf("🔢 OTP generated for user %s, transaction %s: %s", req.UserID, req.TransactionID, code)

	err = s.sender.Send(ctx, Delivery{
		OTPID:       entry.OTPID,
		Code:        code,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		ExpiresAt:   entry.ExpiresAt,
	})
	if err != nil {
		if _, delErr := s.store.DeleteOTP(entry.OTPID); delErr != nil {
			log.Printf("Failed to discard undelivered OTP %s: %v", entry.OTPID, delErr)
		}
		s.record(&models.VerificationEvent{
			Kind:          models.EventOTPGenerate,
			UserID:        req.UserID,
			TransactionID: req.TransactionID,
			Outcome:       models.OutcomeUndeliver,
			Detail:        err.Error(),
		})
		return nil, wrapVerificationError(ErrDelivery, "Failed to send OTP. Please try again.", err)
	}

	destination := "your email"
	if req.PhoneNumber != "" {
		destination = "your phone"
	}

	s.record(&models.VerificationEvent{
		Kind:          models.EventOTPGenerate,
		UserID:        req.UserID,
		TransactionID: req.TransactionID,
		Outcome:       models.OutcomeIssued,
	})

	return &models.OTPResponse{
		Success:   true,
		Message:   fmt.Sprintf("OTP sent successfully to %s", destination),
		OTPID:     entry.OTPID,
		ExpiresAt: entry.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

// Verify checks a submitted code against the oldest live entry for the pair.
func (s *OTPService) Verify(ctx context.Context, req models.OTPVerifyRequest) (*models.OTPResponse, error) {
	if req.UserID == "" || req.TransactionID == "" || req.OTP == "" {
		return nil, newVerificationError(ErrValidation, "Missing required fields: userId, transactionId, or otp")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.FindOTP(req.UserID, req.TransactionID)
	if errors.Is(err, storage.ErrNotFound) {
		s.recordVerify(req, models.OutcomeNotFound)
		return nil, newVerificationError(ErrNotFound, "No active OTP found for this transaction")
	}
	if err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error during OTP verification", err)
	}

	if entry.IsExpired(s.now()) {
		s.discard(entry.OTPID)
		s.recordVerify(req, models.OutcomeExpired)
		return nil, newVerificationError(ErrExpired, "OTP has expired. Please request a new one.")
	}

	entry.Attempts++
	log.Printf("🔍 OTP verification attempt %d/%d for user %s", entry.Attempts, entry.MaxAttempts, req.UserID)

	if entry.Attempts > entry.MaxAttempts {
		s.discard(entry.OTPID)
		s.recordVerify(req, models.OutcomeBlocked)
		return nil, exhausted()
	}

	if req.OTP == entry.Code {
		s.discard(entry.OTPID)
		log.Printf("✅ OTP verified successfully for user %s", req.UserID)
		s.recordVerify(req, models.OutcomeApproved)
		return &models.OTPResponse{
			Success: true,
			Message: "OTP verified successfully! Transaction approved.",
		}, nil
	}

	remaining := entry.RemainingAttempts()
	log.Printf("❌ Invalid OTP for user %s. %d attempts remaining.", req.UserID, remaining)

	// the last allowed attempt failed; nothing is left to try
	if remaining == 0 {
		s.discard(entry.OTPID)
		s.recordVerify(req, models.OutcomeBlocked)
		return nil, exhausted()
	}

	if err := s.store.UpdateOTP(entry); err != nil {
		// only the expiry sweeper removes entries outside this lock
		if errors.Is(err, storage.ErrNotFound) {
			s.recordVerify(req, models.OutcomeExpired)
			return nil, newVerificationError(ErrExpired, "OTP has expired. Please request a new one.")
		}
		return nil, wrapVerificationError(ErrInternal, "Internal server error during OTP verification", err)
	}
	s.recordVerify(req, models.OutcomeRejected)

	verr := newVerificationError(ErrInvalidCode, fmt.Sprintf("Invalid OTP. %d attempts remaining.", remaining))
	verr.RemainingAttempts = remaining
	return nil, verr
}

// Status reports the state of the oldest live entry for the pair without mutating it
func (s *OTPService) Status(userID, transactionID string) (*models.OTPStatus, error) {
	entry, err := s.store.FindOTP(userID, transactionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newVerificationError(ErrNotFound, "No active OTP found for this transaction")
	}
	if err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error", err)
	}

	now := s.now()
	remaining := int64(entry.ExpiresAt.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}

	return &models.OTPStatus{
		Exists:        true,
		Expired:       entry.IsExpired(now),
		Attempts:      entry.Attempts,
		MaxAttempts:   entry.MaxAttempts,
		TimeRemaining: remaining,
		ExpiresAt:     entry.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func exhausted() *VerificationError {
	return newVerificationError(ErrAttemptsExhausted,
		"Too many failed attempts. Transaction blocked for security. Please start over.")
}

func (s *OTPService) discard(otpID string) {
	if _, err := s.store.DeleteOTP(otpID); err != nil {
		log.Printf("Failed to delete OTP %s: %v", otpID, err)
	}
}

func (s *OTPService) recordVerify(req models.OTPVerifyRequest, outcome string) {
	s.record(&models.VerificationEvent{
		Kind:          models.EventOTPVerify,
		UserID:        req.UserID,
		TransactionID: req.TransactionID,
		Outcome:       outcome,
	})
}

func (s *OTPService) record(event *models.VerificationEvent) {
	recordEvent(s.audit, event)
}

// recordEvent appends to the audit log; failures never fail the request
func recordEvent(audit storage.AuditLog, event *models.VerificationEvent) {
	if audit == nil {
		return
	}
	if err := audit.RecordEvent(event); err != nil {
		log.Printf("⚠️  Failed to record %s event for user %s: %v", event.Kind, event.UserID, err)
	}
}
