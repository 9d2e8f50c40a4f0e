package api

import (
	"time"

	"github.com/bilgisen/haberci/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with the shared error handler. A
// zero timeout disables read and write deadlines.
func NewApp(timeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "haberci",
		ReadTimeout:           timeout,
		WriteTimeout:          timeout,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers, adminKey string) {
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api := app.Group("/api/v1")

	api.Get("/health", h.HealthCheck)
	api.Get("/categories", h.ListCategories)

	admin := api.Group("/admin", middleware.AdminOnly(adminKey))
	{
		admin.Post("/ingest", middleware.ValidateBody[IngestRequest](), h.TriggerIngest)
		admin.Get("/runs/last", h.LastRun)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
