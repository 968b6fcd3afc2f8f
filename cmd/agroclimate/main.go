package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/frnietz/agroclimate/internal/advisory"
	httpapi "github.com/frnietz/agroclimate/internal/api/http"
	"github.com/frnietz/agroclimate/internal/config"
	"github.com/frnietz/agroclimate/internal/fields"
	"github.com/frnietz/agroclimate/internal/meteo"
	"github.com/frnietz/agroclimate/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound Open-Meteo calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Weather source with resilience (backoff + circuit breaker), wrapped in
	// the TTL response cache.
	var source meteo.Source = meteo.NewOpenMeteoSource(httpClient, cfg.ArchiveURL, cfg.ForecastURL)
	if cfg.CacheTTL > 0 {
		source = meteo.NewCachingSource(source, cfg.CacheTTL)
	}

	geocoder := meteo.NewGeocoder(httpClient, cfg.GeocodingURL, cfg.GoogleGeocoderAPIKey)

	// File-backed field polygon store.
	fieldStore := fields.NewStore(cfg.FieldsFile)

	// Core service orchestrating sampling, fetching and aggregation.
	service := advisory.NewService(source, fieldStore, cfg.SunnyCodes, cfg.Timezone, cfg.MaxSamplePoints)

	// Periodic alert re-evaluation over saved fields.
	sched := scheduler.New(service, cfg.AlertInterval, cfg.AlertLookbackDays)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "agroclimate",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "agroclimate",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, geocoder)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
