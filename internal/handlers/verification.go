package handlers

import (
	"log"

	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const verificationHistoryLimit = 50

// VerificationHandler serves the verification audit trail
type VerificationHandler struct {
	audit storage.AuditLog
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(audit storage.AuditLog) *VerificationHandler {
	return &VerificationHandler{
		audit: audit,
	}
}

// ListByUser returns the most recent verification events for a user
func (h *VerificationHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "User ID is required",
		})
	}

	events, err := h.audit.ListEvents(userID, verificationHistoryLimit)
	if err != nil {
		log.Printf("Failed to list verification events for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to retrieve verification history",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}
