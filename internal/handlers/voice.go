package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/Ananth-NQI/fraudshield-backend/internal/middleware"
	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/Ananth-NQI/fraudshield-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// VoiceHandler handles the mocked voice biometric endpoints
type VoiceHandler struct {
	service *services.VoiceService
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(service *services.VoiceService) *VoiceHandler {
	return &VoiceHandler{
		service: service,
	}
}

// Verify scores an uploaded voice sample. Expects the upload to have passed
// middleware.AudioUpload.
func (h *VoiceHandler) Verify(c *fiber.Ctx) error {
	req := models.VoiceVerifyRequest{
		UserID:         c.FormValue("userId"),
		TransactionID:  c.FormValue("transactionId"),
		ExpectedPhrase: c.FormValue("expectedPhrase"),
	}

	var audio []byte
	contentType := ""
	if file, ok := c.Locals(middleware.AudioFileKey).(*multipart.FileHeader); ok && file != nil {
		data, err := readUpload(file)
		if err != nil {
			return h.fail(c, fiber.StatusBadRequest, fmt.Sprintf("Upload error: %v", err))
		}
		audio = data
		contentType = file.Header.Get(fiber.HeaderContentType)
	}

	resp, err := h.service.Verify(c.UserContext(), req, audio, contentType)
	if err != nil {
		code := statusFor(err)
		if code == fiber.StatusInternalServerError {
			log.Printf("Voice verification error: %v", err)
		}
		return h.fail(c, code, services.Message(err))
	}

	return c.JSON(resp)
}

// Profile returns the stored voice history summary for a user
func (h *VoiceHandler) Profile(c *fiber.Ctx) error {
	resp, err := h.service.Profile(c.Params("userId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"exists":  false,
			"message": services.Message(err),
		})
	}

	return c.JSON(resp)
}

func (h *VoiceHandler) fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.VoiceVerifyResponse{
		Success:        false,
		Confidence:     0,
		Message:        message,
		EmotionalState: models.EmotionUnknown,
		VerificationID: "",
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
