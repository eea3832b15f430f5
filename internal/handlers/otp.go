package handlers

import (
	"log"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/Ananth-NQI/fraudshield-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// OTPHandler handles OTP generation, verification and status requests
type OTPHandler struct {
	service *services.OTPService
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(service *services.OTPService) *OTPHandler {
	return &OTPHandler{
		service: service,
	}
}

// Generate issues a new OTP for a transaction
func (h *OTPHandler) Generate(c *fiber.Ctx) error {
	var req models.OTPGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	resp, err := h.service.Generate(c.UserContext(), req)
	if err != nil {
		return h.serviceError(c, "OTP generation", err)
	}

	return c.JSON(resp)
}

// Verify checks a submitted OTP
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req models.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, validationMessage(err))
	}

	resp, err := h.service.Verify(c.UserContext(), req)
	if err != nil {
		return h.serviceError(c, "OTP verification", err)
	}

	return c.JSON(resp)
}

// Status reports whether an OTP is outstanding for a transaction
func (h *OTPHandler) Status(c *fiber.Ctx) error {
	status, err := h.service.Status(c.Params("userId"), c.Params("transactionId"))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"exists":  false,
			"message": services.Message(err),
		})
	}

	return c.JSON(status)
}

func (h *OTPHandler) serviceError(c *fiber.Ctx, op string, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("%s error: %v", op, err)
	}
	return h.fail(c, code, services.Message(err))
}

func (h *OTPHandler) fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.OTPResponse{
		Success: false,
		Message: message,
	})
}
