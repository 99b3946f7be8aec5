package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"venue-market/internal/auth/handlers"
	"venue-market/internal/auth/repository"
	"venue-market/internal/auth/service"
	"venue-market/internal/common/config"
	"venue-market/internal/common/logging"
	"venue-market/internal/common/middleware"
	"venue-market/internal/common/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ============================================================
// Auth Service
// ============================================================

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	logger, err := logging.New("auth", cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := storage.OpenSQLite(cfg.AuthDBPath)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	sessionManager := service.NewSessionManager()
	codes := service.NewOTPStore(cfg.OTPTTL, cfg.OTPMaxAttempts, cfg.OTPCooldown)
	authHandler := handlers.NewAuthHandler(repo, sessionManager, codes, logger, cfg.IsDevelopment())

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Auth Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Auth Routes
	// ============================================================

	authHandler.Routes(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting auth service", zap.String("addr", addr), zap.String("env", cfg.Environment))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
