package routes

import (
	"fmt"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// multipart framing and form fields on top of the audio payload
const uploadOverhead = 1024 * 1024

// VoiceVerifyPath is the audio upload endpoint
const VoiceVerifyPath = "/api/voice/verify"

// NewApp creates the fiber app with the shared middleware stack
func NewApp(appName string, maxAudioBytes int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   appName,
		BodyLimit: maxAudioBytes + uploadOverhead,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// fasthttp rejects oversized bodies before any route runs
			if code == fiber.StatusRequestEntityTooLarge && c.Path() == VoiceVerifyPath {
				return c.Status(fiber.StatusBadRequest).JSON(models.VoiceVerifyResponse{
					Success:        false,
					Confidence:     0,
					Message:        fmt.Sprintf("Upload error: File too large (max %d bytes)", maxAudioBytes),
					EmotionalState: models.EmotionUnknown,
					VerificationID: "",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	return app
}
