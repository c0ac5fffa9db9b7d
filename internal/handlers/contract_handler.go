package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContractHandler struct {
	contracts *services.ContractService
}

func NewContractHandler(contracts *services.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// List accepts ?filter=all|active|expiring|expired.
func (h *ContractHandler) List(c *fiber.Ctx) error {
	resp, err := h.contracts.List(middleware.GetPrincipal(c), c.Query("filter", services.ContractFilterAll))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *ContractHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	view, err := h.contracts.Get(middleware.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContractRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	view, err := h.contracts.Create(middleware.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.UpdateContractRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	view, err := h.contracts.Update(middleware.GetPrincipal(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// Terminate handles DELETE; contracts are never removed, only terminated.
func (h *ContractHandler) Terminate(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	view, err := h.contracts.Terminate(middleware.GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}
