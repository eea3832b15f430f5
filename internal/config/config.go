package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment
type Config struct {
	Port        string
	Environment string

	UseMemoryStore         bool
	DatabaseURL            string
	DBUser                 string
	DBPass                 string
	DBName                 string
	DBHost                 string
	DBPort                 string
	InstanceConnectionName string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	OTPTTL         time.Duration
	OTPMaxAttempts int
	SweepInterval  time.Duration

	// SimulateDelays adds the artificial send and processing waits of the demo
	SimulateDelays bool

	MaxAudioBytes int
}

// LoadEnv loads a .env file for local development. Missing files are not an error.
func LoadEnv() {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("environments/.env.development"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}
}

// Load reads the configuration from the environment
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		UseMemoryStore:         getBool("USE_MEMORY_STORE", false),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPass:                 os.Getenv("DB_PASS"),
		DBName:                 getEnv("DB_NAME", "fraudshield"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),

		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		OTPTTL:         getDuration("OTP_TTL", 5*time.Minute),
		OTPMaxAttempts: getInt("OTP_MAX_ATTEMPTS", 3),
		SweepInterval:  getDuration("SWEEP_INTERVAL", 30*time.Second),

		SimulateDelays: getBool("SIMULATE_DELAYS", true),

		MaxAudioBytes: getInt("MAX_AUDIO_BYTES", 10*1024*1024),
	}
}

// DatabaseConfigured reports whether an audit database should be used
func (c *Config) DatabaseConfigured() bool {
	if c.UseMemoryStore {
		return false
	}
	return c.DatabaseURL != "" || c.DBHost != "" || c.InstanceConnectionName != ""
}

// TwilioConfigured reports whether SMS can go through Twilio
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
