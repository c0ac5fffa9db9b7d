package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SystemHandler struct {
	system *services.SystemService
}

func NewSystemHandler(system *services.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	if err := h.system.Reset(middleware.GetPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "System reset complete"})
}
