package middleware

import (
	"fmt"
	"strings"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AudioFileKey is the Locals key holding the accepted *multipart.FileHeader
const AudioFileKey = "audioFile"

// AudioUpload checks the "audio" multipart field. Only audio/* content types
// up to maxBytes are accepted. A request without the field is passed on so the
// handler can report the missing file.
func AudioUpload(field string, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			return c.Next()
		}

		contentType := file.Header.Get(fiber.HeaderContentType)
		if !strings.HasPrefix(contentType, "audio/") {
			return rejectUpload(c, "Only audio files are allowed")
		}

		if file.Size > maxBytes {
			return rejectUpload(c, fmt.Sprintf("File too large (max %d bytes)", maxBytes))
		}

		c.Locals(AudioFileKey, file)
		return c.Next()
	}
}

func rejectUpload(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.VoiceVerifyResponse{
		Success:        false,
		Confidence:     0,
		Message:        "Upload error: " + reason,
		EmotionalState: models.EmotionUnknown,
		VerificationID: "",
	})
}
