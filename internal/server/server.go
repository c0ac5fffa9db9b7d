// Package server assembles the services, handlers and middleware into a
// fiber application.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options toggles middleware that is unwanted outside production.
type Options struct {
	AccessLog bool
}

// New builds the application. Fee defaults are seeded into settings.
func New(cfg *config.Config, db *gorm.DB, opts Options) (*fiber.App, error) {
	building := repository.NewBuildingRepository(db)
	accounts := repository.NewAccountRepository(db)

	settingsService := services.NewSettingsService(db, services.FeeSchedule{
		ElectricityPrice:    cfg.PriceElectricity,
		WaterPerResident:    cfg.FeeWater,
		InternetPerResident: cfg.FeeInternet,
		ServicePerResident:  cfg.FeeService,
	})
	if err := settingsService.SeedDefaults(); err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg, accounts)
	residentService := services.NewResidentService(db, building, accounts)
	invoiceService := services.NewInvoiceService(db, building, settingsService)
	contractService := services.NewContractService(db, building)
	maintenanceService := services.NewMaintenanceService(db, building)
	announcementService := services.NewAnnouncementService(db)
	marketService := services.NewMarketService(db, building, services.NewContentFilter())
	systemService := services.NewSystemService(db, building, accounts)

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Health:      handlers.NewHealthHandler(db),
		Building:    handlers.NewBuildingHandler(residentService),
		Invoice:     handlers.NewInvoiceHandler(invoiceService, settingsService),
		Contract:    handlers.NewContractHandler(contractService),
		Maintenance: handlers.NewMaintenanceHandler(maintenanceService),
		Community:   handlers.NewCommunityHandler(announcementService, marketService),
		System:      handlers.NewSystemHandler(systemService),
	})

	return app, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
