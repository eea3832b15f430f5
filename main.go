package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/database"
	"github.com/Ananth-NQI/fraudshield-backend/internal/config"
	"github.com/Ananth-NQI/fraudshield-backend/internal/jobs"
	"github.com/Ananth-NQI/fraudshield-backend/internal/routes"
	"github.com/Ananth-NQI/fraudshield-backend/internal/services"
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	config.LoadEnv()
	cfg := config.Load()

	// OTP ledger and voice profiles always live in memory
	store := storage.NewMemoryStore()

	var audit storage.AuditLog = store
	if cfg.DatabaseConfigured() {
		log.Println("📦 Connecting to PostgreSQL audit database...")
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal("Failed to initialize audit database:", err)
		}
		audit = storage.NewDatabaseStore(db)
		log.Println("✅ Using PostgreSQL for the verification audit log")
	} else {
		log.Println("⚠️  Using in-memory audit log (not for production!)")
	}

	// Delivery: Twilio when configured, otherwise codes go to the log
	var sendMin, sendMax, voiceMin, voiceMax time.Duration
	if cfg.SimulateDelays {
		sendMin, sendMax = 500*time.Millisecond, 1500*time.Millisecond
		voiceMin, voiceMax = 2*time.Second, 4*time.Second
	}

	var sender services.Sender = services.NewLogSender(sendMin, sendMax)
	if cfg.TwilioConfigured() {
		twilioSender, err := services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		if err != nil {
			log.Fatal("Failed to initialize Twilio sender:", err)
		}
		sender = twilioSender
		log.Println("✅ Twilio SMS delivery initialized")
	} else {
		log.Println("⚠️  Twilio credentials not found - OTP codes will only be logged")
	}

	otpService := services.NewOTPService(store, audit, sender, cfg.OTPTTL, cfg.OTPMaxAttempts)
	voiceService := services.NewVoiceService(store, audit, services.NewStubAnalyzer(nil), voiceMin, voiceMax)

	cleanupJob := jobs.NewCleanupJob(store, cfg.SweepInterval)
	cleanupJob.Start()

	app := routes.NewApp("FraudShield Backend v"+version, cfg.MaxAudioBytes)
	routes.SetupRoutes(app, routes.Dependencies{
		Version:          version,
		Store:            store,
		Audit:            audit,
		OTPService:       otpService,
		VoiceService:     voiceService,
		MaxAudioBytes:    int64(cfg.MaxAudioBytes),
		TwilioConfigured: cfg.TwilioConfigured(),
	})

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping OTP cleanup job...")
		cleanupJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 FraudShield Backend starting on port %s", cfg.Port)
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("🔢 OTP: %v expiry, %d attempts", otpService.TTL(), cfg.OTPMaxAttempts)
	log.Println("🎤 Voice biometrics: random stub (no real model)")
	log.Println("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
