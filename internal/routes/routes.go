package routes

import (
	"github.com/Ananth-NQI/fraudshield-backend/internal/handlers"
	"github.com/Ananth-NQI/fraudshield-backend/internal/middleware"
	"github.com/Ananth-NQI/fraudshield-backend/internal/services"
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// Dependencies is everything the routes need, built once in main
type Dependencies struct {
	Version          string
	Store            storage.Store
	Audit            storage.AuditLog
	OTPService       *services.OTPService
	VoiceService     *services.VoiceService
	MaxAudioBytes    int64
	TwilioConfigured bool
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	health := handlers.NewHealthHandler(deps.Version, deps.Store, deps.Audit, deps.TwilioConfigured)
	otp := handlers.NewOTPHandler(deps.OTPService)
	voice := handlers.NewVoiceHandler(deps.VoiceService)
	verifications := handlers.NewVerificationHandler(deps.Audit)

	app.Get("/health", health.Check)

	// API routes
	api := app.Group("/api")
	api.Get("/ping", health.Ping)

	// OTP generation & verification
	otpGroup := api.Group("/otp")
	otpGroup.Post("/generate", otp.Generate)
	otpGroup.Post("/verify", otp.Verify)
	otpGroup.Get("/status/:userId/:transactionId", otp.Status)

	// Voice verification
	voiceGroup := api.Group("/voice")
	app.Post(VoiceVerifyPath, middleware.AudioUpload("audio", deps.MaxAudioBytes), voice.Verify)
	voiceGroup.Get("/profile/:userId", voice.Profile)

	// Audit trail
	api.Get("/verifications/:userId", verifications.ListByUser)
}
