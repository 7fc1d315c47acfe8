// Package main provides the flowsmith API server.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dukex/flowsmith/pkg/catalog"
	"github.com/dukex/flowsmith/pkg/metrics"
	"github.com/dukex/flowsmith/pkg/services"
	"github.com/dukex/flowsmith/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger     *slog.Logger
	generation *services.Generation
	catalog    *catalog.Catalog
	metrics    *metrics.Collector
	validate   *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	generation *services.Generation,
	metrics *metrics.Collector,
) *API {
	return &API{
		logger:     logger,
		generation: generation,
		catalog:    catalog.Default(),
		metrics:    metrics,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.generation, a.catalog, a.validate, a.logger)

	app := fiber.New(fiber.Config{
		AppName:      "flowsmith",
		ErrorHandler: web.ErrorHandler(a.logger),
	})
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))
	app.Use(a.metrics.Middleware())

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			return a.ready(c.Context())
		},
	}))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("flowsmith API")
	})

	app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))

	web.RegisterRoutes(app, handlers)

	return app
}

func (a *API) ready(ctx context.Context) bool {
	message, healthy := a.generation.HealthCheck(ctx)
	if !healthy {
		a.logger.WarnContext(ctx, "readiness probe failed", "reason", message)
	}

	return healthy
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
