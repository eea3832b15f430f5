package services

import (
	"errors"
	"fmt"
)

// Verification error kinds. Every error returned by the OTP and voice
// services wraps exactly one of these.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrExpired           = errors.New("expired")
	ErrAttemptsExhausted = errors.New("attempts exhausted")
	ErrInvalidCode       = errors.New("invalid code")
	ErrDelivery          = errors.New("delivery failed")
	ErrInternal          = errors.New("internal error")
)

// VerificationError carries the client-facing message alongside its kind
type VerificationError struct {
	Kind              error
	Message           string
	RemainingAttempts int
	cause             error
}

func (e *VerificationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *VerificationError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func newVerificationError(kind error, message string) *VerificationError {
	return &VerificationError{Kind: kind, Message: message}
}

func wrapVerificationError(kind error, message string, cause error) *VerificationError {
	return &VerificationError{Kind: kind, Message: message, cause: cause}
}

// Message returns the client-facing message for err
func Message(err error) string {
	var ve *VerificationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Internal server error"
}
