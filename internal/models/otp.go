package models

import "time"

// OTPEntry is one outstanding one-time passcode challenge
type OTPEntry struct {
	OTPID         string    `json:"otp_id"`
	Code          string    `json:"-"`
	UserID        string    `json:"user_id"`
	TransactionID string    `json:"transaction_id"`
	ExpiresAt     time.Time `json:"expires_at"`
	Attempts      int       `json:"attempts"`
	MaxAttempts   int       `json:"max_attempts"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsExpired reports whether the entry is past its expiry at the given instant
func (o *OTPEntry) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Matches reports whether the entry belongs to the given user and transaction
func (o *OTPEntry) Matches(userID, transactionID string) bool {
	return o.UserID == userID && o.TransactionID == transactionID
}

// RemainingAttempts is how many verify calls the entry still accepts
func (o *OTPEntry) RemainingAttempts() int {
	if o.Attempts >= o.MaxAttempts {
		return 0
	}
	return o.MaxAttempts - o.Attempts
}

// OTPGenerateRequest is the body of POST /api/otp/generate
type OTPGenerateRequest struct {
	UserID        string `json:"userId" validate:"max=128"`
	TransactionID string `json:"transactionId" validate:"max=128"`
	PhoneNumber   string `json:"phoneNumber" validate:"max=32"`
	Email         string `json:"email" validate:"omitempty,email"`
}

// OTPVerifyRequest is the body of POST /api/otp/verify
type OTPVerifyRequest struct {
	UserID        string `json:"userId" validate:"max=128"`
	TransactionID string `json:"transactionId" validate:"max=128"`
	OTP           string `json:"otp" validate:"max=16"`
}

// OTPResponse is returned by generate and verify
type OTPResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	OTPID     string `json:"otpId,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// OTPStatus is the read-only view returned by the status endpoint
type OTPStatus struct {
	Exists        bool   `json:"exists"`
	Expired       bool   `json:"expired"`
	Attempts      int    `json:"attempts"`
	MaxAttempts   int    `json:"maxAttempts"`
	TimeRemaining int64  `json:"timeRemaining"`
	ExpiresAt     string `json:"expiresAt"`
}
