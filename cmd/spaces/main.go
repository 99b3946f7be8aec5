package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingservice "venue-market/internal/booking/service"
	"venue-market/internal/catalog"
	"venue-market/internal/common/config"
	"venue-market/internal/common/logging"
	"venue-market/internal/common/middleware"
	"venue-market/internal/common/storage"
	"venue-market/internal/spaces/client"
	"venue-market/internal/spaces/handlers"
	"venue-market/internal/spaces/repository"
	spaceservice "venue-market/internal/spaces/service"
	"venue-market/internal/wizard"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// bookingHorizon is how many days ahead a venue can be booked.
const bookingHorizon = 180

// ============================================================
// Spaces Service
// ============================================================

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	logger, err := logging.New("spaces", cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := storage.OpenSQLite(cfg.SpacesDBPath)
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer db.Close()

	store := repository.New(db)
	if err := store.Init(context.Background()); err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	venues := catalog.Sample(time.Now())
	rules := bookingservice.Rules{Availability: venues, Horizon: bookingHorizon}

	// ============================================================
	// Wizard Flows
	// ============================================================

	spaceFlow := spaceservice.Flow()
	spaceSubmitter := spaceservice.NewSubmitter(venueCreator(cfg, logger), cfg.SubmitTimeout, logger)

	bookingFlow := rules.Flow()
	bookingSubmitter := bookingservice.NewSubmitter(rules, bookingCreator(cfg, logger), logger)

	spaceRegistry := newRegistry(spaceFlow, store, spaceSubmitter, logger)
	bookingRegistry := newRegistry(bookingFlow, store, bookingSubmitter, logger)
	defer spaceRegistry.CloseAll()
	defer bookingRegistry.CloseAll()

	wizardHandler := handlers.NewWizardHandler(logger)
	wizardHandler.Register(spaceFlow, spaceRegistry)
	wizardHandler.Register(bookingFlow, bookingRegistry)

	catalogHandler := handlers.NewCatalogHandler(venues, rules)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Spaces Service",
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
	// Wizard & Catalog Routes
	// ============================================================

	wizardHandler.Routes(app)
	catalogHandler.Routes(app)

	// ============================================================
	// Server Start
	// ============================================================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DraftIdleTTL > 0 {
		sweepEvery := max(cfg.DraftIdleTTL/4, time.Second)
		go spaceRegistry.Run(ctx, sweepEvery, cfg.DraftIdleTTL)
		go bookingRegistry.Run(ctx, sweepEvery, cfg.DraftIdleTTL)
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting spaces service",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.Bool("simulated_venue_api", cfg.VenueAPIURL == ""),
		zap.Bool("simulated_booking_api", cfg.BookingAPIURL == ""))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// newRegistry opens one controller per draft key, persisted in the draft
// store under the flow's name.
func newRegistry(flow wizard.Flow, store *repository.DraftStore, submitter wizard.Submitter, logger *zap.Logger) *wizard.Registry {
	flowLogger := logger.With(zap.String("flow", flow.Name))
	return wizard.NewRegistry(func(key string) (*wizard.Controller, error) {
		return wizard.New(wizard.Config{
			Key:       key,
			Steps:     flow.Steps,
			Defaults:  flow.Defaults,
			Repo:      store.Scoped(flow.Name, key),
			Submitter: submitter,
			Logger:    flowLogger.With(zap.String("draft_key", key)),
		})
	})
}

func venueCreator(cfg *config.Config, logger *zap.Logger) spaceservice.Creator {
	if cfg.VenueAPIURL == "" {
		return &spaceservice.SimulatedCreator{Delay: cfg.SimulateDelay}
	}
	return client.NewVenueClient(cfg.VenueAPIURL, cfg.SubmitTimeout, logger)
}

func bookingCreator(cfg *config.Config, logger *zap.Logger) bookingservice.Creator {
	if cfg.BookingAPIURL == "" {
		return &bookingservice.SimulatedCreator{Delay: cfg.SimulateDelay}
	}
	return client.NewBookingClient(cfg.BookingAPIURL, cfg.SubmitTimeout, logger)
}
