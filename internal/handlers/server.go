package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AppConfig configures the fiber application
type AppConfig struct {
	// Requests per minute per client IP on /api; zero disables the limiter
	RateLimitPerMinute int
	// AccessLog enables the request logger
	AccessLog bool
}

// NewApp creates the fiber application with middleware, the API routes, health and metrics
func NewApp(h *Handlers, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cybercalc",
		ErrorHandler: h.errorHandler,
	})

	if cfg.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	if cfg.RateLimitPerMinute > 0 {
		app.Use("/api", limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMinute,
			Expiration: 1 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return errorResponse(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
			},
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h.Register(app)
	return app
}

// errorHandler renders unhandled errors as {"message": ...}
func (h *Handlers) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorResponse(c, fe.Code, fe.Message)
	}

	h.log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "error", err)
	return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}
