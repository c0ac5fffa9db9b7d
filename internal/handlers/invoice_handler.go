package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
	settings *services.SettingsService
}

func NewInvoiceHandler(invoices *services.InvoiceService, settings *services.SettingsService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, settings: settings}
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.invoices.List(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"invoices": invoices, "total": len(invoices)})
}

// Upsert creates or replaces the invoice of a room's billing period.
func (h *InvoiceHandler) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertInvoiceRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	inv, err := h.invoices.Upsert(middleware.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

func (h *InvoiceHandler) Patch(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.PatchInvoiceRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	inv, err := h.invoices.SetStatus(middleware.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.invoices.Delete(middleware.GetPrincipal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Invoice deleted"})
}

func (h *InvoiceHandler) GetFees(c *fiber.Ctx) error {
	fees, err := h.settings.FeeSchedule()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fees.ToDTO())
}

func (h *InvoiceHandler) UpdateFees(c *fiber.Ctx) error {
	var req dto.UpdateFeesRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	fees, err := h.settings.UpdateFees(middleware.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fees.ToDTO())
}
