package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Building    *handlers.BuildingHandler
	Invoice     *handlers.InvoiceHandler
	Contract    *handlers.ContractHandler
	Maintenance *handlers.MaintenanceHandler
	Community   *handlers.CommunityHandler
	System      *handlers.SystemHandler
}

func Setup(app *fiber.App, cfg *config.Config, resolver middleware.PrincipalResolver, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth: public, stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Everything below needs a valid token and an existing account.
	// Public routes are registered above so this group never runs for them.
	protected := api.Group("", middleware.JWTProtected(cfg), middleware.LoadPrincipal(resolver))
	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/me", h.Auth.Me)

	protected.Get("/building", h.Building.GetBuilding)
	protected.Get("/building/parking", h.Building.GetParking)
	protected.Get("/building/my-room", h.Building.GetMyRoom)
	protected.Get("/building/rooms/:room", h.Building.GetRoom)

	protected.Get("/invoices", h.Invoice.List)
	protected.Patch("/invoices/:id", h.Invoice.Patch)
	protected.Get("/settings/fees", h.Invoice.GetFees)

	protected.Get("/maintenance", h.Maintenance.List)
	protected.Post("/maintenance", h.Maintenance.Create)
	protected.Patch("/maintenance/:id", h.Maintenance.Update)

	protected.Get("/announcements", h.Community.ListAnnouncements)
	protected.Get("/market", h.Community.ListMarket)
	protected.Post("/market", h.Community.CreateMarketItem)
	protected.Delete("/market/:id", h.Community.DeleteMarketItem)

	admin := protected.Group("/admin", middleware.AdminRequired())

	admin.Post("/rooms/:room/residents", h.Building.AddResident)
	admin.Put("/rooms/:room/residents/:index", h.Building.EditResident)
	admin.Delete("/rooms/:room/residents/:index", h.Building.RemoveResident)
	admin.Get("/accounts/unassigned", h.Building.UnassignedAccounts)
	admin.Post("/accounts/:phone/assign", h.Building.AssignAccount)
	admin.Patch("/accounts/:phone/role", h.Auth.SetRole)

	admin.Post("/invoices", h.Invoice.Upsert)
	admin.Delete("/invoices/:id", h.Invoice.Delete)
	admin.Put("/settings/fees", h.Invoice.UpdateFees)

	admin.Get("/contracts", h.Contract.List)
	admin.Post("/contracts", h.Contract.Create)
	admin.Get("/contracts/:id", h.Contract.Get)
	admin.Patch("/contracts/:id", h.Contract.Update)
	admin.Delete("/contracts/:id", h.Contract.Terminate)

	admin.Delete("/maintenance/:id", h.Maintenance.Delete)

	admin.Post("/announcements", h.Community.CreateAnnouncement)
	admin.Delete("/announcements/:id", h.Community.DeleteAnnouncement)

	admin.Post("/system/reset", h.System.Reset)
}
