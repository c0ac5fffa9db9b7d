package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// BuildingHandler serves the resident directory and the resident/account
// reconciliation endpoints.
type BuildingHandler struct {
	residents *services.ResidentService
}

func NewBuildingHandler(residents *services.ResidentService) *BuildingHandler {
	return &BuildingHandler{residents: residents}
}

func (h *BuildingHandler) GetBuilding(c *fiber.Ctx) error {
	resp, err := h.residents.Building(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *BuildingHandler) GetRoom(c *fiber.Ctx) error {
	room, err := h.residents.Room(middleware.GetPrincipal(c), c.Params("room"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// GetMyRoom returns the caller's own room.
func (h *BuildingHandler) GetMyRoom(c *fiber.Ctx) error {
	room, err := h.residents.MyRoom(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

func (h *BuildingHandler) GetParking(c *fiber.Ctx) error {
	plates, err := h.residents.ParkingPlates(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"plates": plates, "total": len(plates)})
}

func (h *BuildingHandler) AddResident(c *fiber.Ctx) error {
	var req dto.ResidentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resident, err := h.residents.AddResident(middleware.GetPrincipal(c), c.Params("room"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resident)
}

func (h *BuildingHandler) EditResident(c *fiber.Ctx) error {
	index, err := parseIndex(c, "index")
	if err != nil {
		return respondError(c, err)
	}
	var req dto.ResidentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resident, err := h.residents.EditResident(middleware.GetPrincipal(c), c.Params("room"), index, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resident)
}

// RemoveResident answers 200 even when the linked account could not be
// deleted; the warning field says why.
func (h *BuildingHandler) RemoveResident(c *fiber.Ctx) error {
	index, err := parseIndex(c, "index")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.residents.RemoveResident(middleware.GetPrincipal(c), c.Params("room"), index)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RemoveResidentResponse{
		Resident:       result.Resident,
		AccountDeleted: result.AccountDeleted,
		Warning:        result.Warning,
	})
}

func (h *BuildingHandler) UnassignedAccounts(c *fiber.Ctx) error {
	accounts, err := h.residents.UnassignedAccounts(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"accounts": services.ToAccountResponses(accounts), "total": len(accounts)})
}

func (h *BuildingHandler) AssignAccount(c *fiber.Ctx) error {
	var req dto.AssignAccountRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	resident, err := h.residents.AssignAccount(middleware.GetPrincipal(c), c.Params("phone"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resident)
}
