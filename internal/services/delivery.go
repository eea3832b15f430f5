package services

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Delivery is one OTP to hand to the user
type Delivery struct {
	OTPID       string
	Code        string
	PhoneNumber string
	Email       string
	ExpiresAt   time.Time
}

// Sender delivers an OTP over SMS and/or email
type Sender interface {
	Send(ctx context.Context, d Delivery) error
}

// LogSender simulates SMS and email delivery by writing the code to the log
type LogSender struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

// NewLogSender creates a sender that waits between minDelay and maxDelay before logging
func NewLogSender(minDelay, maxDelay time.Duration) *LogSender {
	return &LogSender{MinDelay: minDelay, MaxDelay: maxDelay}
}

func (s *LogSender) Send(ctx context.Context, d Delivery) error {
	if err := sleepContext(ctx, s.MinDelay, s.MaxDelay); err != nil {
		return err
	}

	if d.PhoneNumber != "" {
		log.Printf("📱 SMS OTP sent to %s: %s", d.PhoneNumber, d.Code)
		log.Printf("📱 [DEMO] Your verification code is: %s", d.Code)
	}
	if d.Email != "" {
		log.Printf("📧 Email OTP sent to %s: %s", d.Email, d.Code)
		log.Printf("📧 [DEMO] Your verification code is: %s", d.Code)
	}
	return nil
}

// TwilioSender sends OTP SMS through Twilio. Email-only deliveries go to Fallback.
type TwilioSender struct {
	client   *twilio.RestClient
	from     string
	Fallback Sender
}

// NewTwilioSender creates a Twilio-backed sender
func NewTwilioSender(accountSID, authToken, from string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client:   client,
		from:     from,
		Fallback: NewLogSender(0, 0),
	}, nil
}

func (t *TwilioSender) Send(ctx context.Context, d Delivery) error {
	if d.PhoneNumber == "" {
		return t.Fallback.Send(ctx, d)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(d.PhoneNumber)
	params.SetBody(fmt.Sprintf("Your FraudShield verification code is %s. It expires at %s.",
		d.Code, d.ExpiresAt.UTC().Format("15:04 MST")))

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send OTP SMS: %v", err)
		return err
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Printf("✅ OTP SMS sent for %s! SID: %s", d.OTPID, sid)

	if d.Email != "" {
		return t.Fallback.Send(ctx, Delivery{OTPID: d.OTPID, Code: d.Code, Email: d.Email, ExpiresAt: d.ExpiresAt})
	}
	return nil
}

// sleepContext waits a random duration in [min, max) or until ctx is done
func sleepContext(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += rand.N(max - min)
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
