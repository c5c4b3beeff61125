// Package routes wires repositories, services and handlers and registers the
// API routes on the fiber app.
package routes

import (
	"log/slog"

	"ledgerpay/internal/handlers"
	"ledgerpay/internal/metrics"
	"ledgerpay/internal/middleware"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/repositories/cache"
	"ledgerpay/internal/services/auth"
	"ledgerpay/internal/services/history"
	"ledgerpay/internal/services/payment"
	"ledgerpay/internal/services/processor"
	"ledgerpay/internal/services/transfer"
	"ledgerpay/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes builds the dependency graph and registers every route.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheSvc *cache.CacheService, proc processor.Processor, logger *slog.Logger) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	userRepo := repositories.NewUserRepository(db, cacheSvc, logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewPrometheusCollector(registry)

	// Services
	authService := auth.NewService(userRepo, logger)
	userService := user.NewService(userRepo, logger)
	paymentService := payment.NewService(ledgerRepo, proc, cacheSvc, collector, logger)
	transferService := transfer.NewService(ledgerRepo, cacheSvc, collector, logger)
	historyService := history.NewService(ledgerRepo, proc, cacheSvc, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	transferHandler := handlers.NewTransferHandler(transferService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	healthHandler := handlers.NewHealthHandler(db, cacheSvc)

	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	// Operational endpoints
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated endpoints
	authed := api.Use(authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)
	authed.Get("/me", userHandler.Me)
	authed.Patch("/me", userHandler.UpdateMe)

	authed.Post("/payments/create", paymentHandler.CreatePayment)
	authed.Post("/payments/verify/:reference", paymentHandler.VerifyPayment)
	authed.Post("/payments/:id/refund", paymentHandler.RefundPayment)
	authed.Post("/payments/transfer", transferHandler.Transfer)

	authed.Get("/payments/history", historyHandler.GetHistory)
	authed.Get("/payments/:id", historyHandler.GetPaymentDetails)
	authed.Get("/balance", historyHandler.GetBalance)
}
