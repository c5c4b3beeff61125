// Package main is the entry point for the wallet ledger API server.
package main

import (
	"log"
	"time"

	"ledgerpay/internal/config"
	"ledgerpay/internal/logging"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/routes"
	"ledgerpay/internal/services/processor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	logger := logging.New(config.GetEnv("LOG_LEVEL", "info"))

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("connected to database")

	// Periodic connection pool stats for capacity tuning.
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			stats := sqlDB.Stats()
			logger.Info("db pool stats",
				"open", stats.OpenConnections,
				"idle", stats.Idle,
				"in_use", stats.InUse,
				"wait_count", stats.WaitCount,
				"wait_duration", stats.WaitDuration.String(),
			)
		}
	}()

	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("failed to close database connection", "error", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				logger.Warn("failed to close redis connection", "error", err)
			}
		}
	}()

	// The payment processor: Stripe when a key is configured, otherwise
	// payments settle synchronously.
	var proc processor.Processor
	if stripeKey := config.GetEnv("STRIPE_SECRET_KEY", ""); stripeKey != "" {
		proc = processor.NewStripe(stripeKey, config.GetDurationEnv("PROCESSOR_TIMEOUT", processor.DefaultCallTimeout))
		logger.Info("using stripe payment processor")
	} else {
		proc = processor.NewSelfSettled()
		logger.Info("no processor configured, payments settle synchronously")
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, repositories.DB, repositories.CacheService, proc, logger)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
