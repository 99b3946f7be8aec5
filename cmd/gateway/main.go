package main

import (
	"fmt"
	"log"
	"time"

	"venue-market/internal/common/config"
	"venue-market/internal/common/logging"
	"venue-market/internal/common/middleware"
	"venue-market/internal/gateway/handlers"
	"venue-market/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New("gateway", cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]string{
		"auth":   cfg.AuthURL,
		"spaces": cfg.SpacesURL,
	}, 2*time.Second))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Venue Market API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Submits wait on the upstream create call, so the proxy allows for it.
	p := proxy.New(cfg.SubmitTimeout+5*time.Second, logger)

	// Auth Service
	api.All("/auth/*", p.Mount(cfg.AuthURL, ""))

	// Spaces Service
	api.All("/wizards/*", p.Mount(cfg.SpacesURL, "/wizards"))
	api.Get("/venues", p.Mount(cfg.SpacesURL, "/venues"))
	api.Get("/venues/*", p.Mount(cfg.SpacesURL, "/venues"))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting api gateway",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("auth_url", cfg.AuthURL),
		zap.String("spaces_url", cfg.SpacesURL))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
