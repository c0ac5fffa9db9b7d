package handlers

import (
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CommunityHandler serves the announcement board and the marketplace.
type CommunityHandler struct {
	announcements *services.AnnouncementService
	market        *services.MarketService
}

func NewCommunityHandler(announcements *services.AnnouncementService, market *services.MarketService) *CommunityHandler {
	return &CommunityHandler{announcements: announcements, market: market}
}

func (h *CommunityHandler) ListAnnouncements(c *fiber.Ctx) error {
	items, err := h.announcements.List(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"announcements": items})
}

func (h *CommunityHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	a, err := h.announcements.Create(middleware.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *CommunityHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.announcements.Delete(middleware.GetPrincipal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Announcement deleted"})
}

func (h *CommunityHandler) ListMarket(c *fiber.Ctx) error {
	items, err := h.market.List(middleware.GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func (h *CommunityHandler) CreateMarketItem(c *fiber.Ctx) error {
	var req dto.CreateMarketItemRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.market.Create(middleware.GetPrincipal(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CommunityHandler) DeleteMarketItem(c *fiber.Ctx) error {
	id, err := parseUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.market.Delete(middleware.GetPrincipal(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}
