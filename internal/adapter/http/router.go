package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	WalletHandler    *handler.WalletHandler
	DepositHandler   *handler.DepositHandler
	TransferHandler  *handler.TransferHandler
	EntryHandler     *handler.EntryHandler
	WebhookHandler   *handler.WebhookHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Processor webhook; authenticated by signature, not by token
	r.Post("/webhooks/provider", cfg.WebhookHandler.Handle)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(domain.CapabilityRead))
				r.Get("/wallet/balance", cfg.WalletHandler.GetBalance)
				r.Get("/transactions", cfg.EntryHandler.List)
				r.Get("/transactions/{reference}", cfg.EntryHandler.Get)
				r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(domain.CapabilityDeposit))
				r.Post("/deposits", cfg.DepositHandler.Initiate)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCapability(domain.CapabilityTransfer))
				r.Post("/transfers", cfg.TransferHandler.Create)
			})
		})
	})

	return r
}
