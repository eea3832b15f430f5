package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "USE_MEMORY_STORE", "DATABASE_URL", "DB_HOST", "INSTANCE_CONNECTION_NAME",
		"OTP_TTL", "OTP_MAX_ATTEMPTS", "SWEEP_INTERVAL", "SIMULATE_DELAYS", "MAX_AUDIO_BYTES",
		"TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_PHONE_NUMBER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.SimulateDelays)
	assert.Equal(t, 10*1024*1024, cfg.MaxAudioBytes)
	assert.False(t, cfg.DatabaseConfigured())
	assert.False(t, cfg.TwilioConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("OTP_MAX_ATTEMPTS", "5")
	t.Setenv("SIMULATE_DELAYS", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/fraudshield")
	t.Setenv("USE_MEMORY_STORE", "")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.OTPTTL)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.False(t, cfg.SimulateDelays)
	assert.True(t, cfg.DatabaseConfigured())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OTP_TTL", "soon")
	t.Setenv("OTP_MAX_ATTEMPTS", "-1")
	t.Setenv("USE_MEMORY_STORE", "maybe")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.False(t, cfg.UseMemoryStore)
}

func TestDatabaseConfigured_MemoryStoreWins(t *testing.T) {
	cfg := &Config{UseMemoryStore: true, DatabaseURL: "postgres://localhost/x"}
	assert.False(t, cfg.DatabaseConfigured())
}
