package handlers

import (
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version          string
	store            storage.Store
	audit            storage.AuditLog
	twilioConfigured bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, store storage.Store, audit storage.AuditLog, twilioConfigured bool) *HealthHandler {
	return &HealthHandler{
		Version:          version,
		store:            store,
		audit:            audit,
		twilioConfigured: twilioConfigured,
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	dbHealthy := h.audit.Ping() == nil
	if !dbHealthy {
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"service": "FraudShield Backend",
		"version": h.Version,
		"services": fiber.Map{
			"database":    dbHealthy,
			"twilio":      h.twilioConfigured,
			"pending_otp": h.store.CountOTPs(),
		},
	})
}

// Ping is a liveness probe
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Hello from FraudShield server!",
	})
}
