package handlers

import (
	"github.com/gofiber/fiber/v2"

	"zapbridge/internal/app/common"
	"zapbridge/platform/logger"
)

type HealthHandler struct {
	logger *logger.Logger
}

func NewHealthHandler(appLogger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		logger: appLogger,
	}
}

// GetRoot é a sonda simples usada pelos dois lados da ponte.
func (h *HealthHandler) GetRoot(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(common.HealthResponse{
		Message: "zapbridge is up",
	})
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"service": "zapbridge",
	})
}
