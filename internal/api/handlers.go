package api

import (
	"time"

	"github.com/bilgisen/haberci/internal/feed"
	"github.com/bilgisen/haberci/internal/ingest"
	"github.com/bilgisen/haberci/internal/logger"
	"github.com/bilgisen/haberci/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// IngestRequest is the body of POST /api/v1/admin/ingest. Limit 0 means
// the configured default.
type IngestRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=50"`
}

type Handlers struct {
	runner       *ingest.Runner
	categories   []feed.Category
	defaultLimit int
}

func NewHandlers(runner *ingest.Runner, categories []feed.Category, defaultLimit int) *Handlers {
	return &Handlers{
		runner:       runner,
		categories:   categories,
		defaultLimit: defaultLimit,
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"time":    time.Now().Format(time.RFC3339),
		"running": h.runner.Running(),
	})
}

// ListCategories handles GET /api/v1/categories
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"total": len(h.categories),
		"items": h.categories,
	})
}

// TriggerIngest handles POST /api/v1/admin/ingest
func (h *Handlers) TriggerIngest(c *fiber.Ctx) error {
	log := logger.With("api")

	req := middleware.Validated[IngestRequest](c)
	limit := h.defaultLimit
	if req != nil && req.Limit > 0 {
		limit = req.Limit
	}

	if !h.runner.Start(limit) {
		log.Warn().
			Str("ip", c.IP()).
			Msg("Ingestion requested while a run is in progress")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An ingestion run is already in progress",
		})
	}

	log.Info().
		Str("ip", c.IP()).
		Int("limit", limit).
		Msg("Background ingestion run started")

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status": "started",
		"limit":  limit,
	})
}

// LastRun handles GET /api/v1/admin/runs/last
func (h *Handlers) LastRun(c *fiber.Ctx) error {
	report := h.runner.Last()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "No run has finished yet",
			"running": h.runner.Running(),
		})
	}
	return c.JSON(report)
}
