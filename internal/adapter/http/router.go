package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nalacredit/depositcore/internal/adapter/http/handler"
	"github.com/nalacredit/depositcore/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/deposits/summary", cfg.AccountHandler.Summary)

		r.Route("/deposits/{accountNumber}", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.Get)
			r.Get("/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/audit", cfg.AccountHandler.ListAudit)

			r.Post("/close/preview", cfg.AccountHandler.PreviewClose)
			r.Post("/close", cfg.AccountHandler.Close)
			r.Post("/renew", cfg.AccountHandler.Renew)
			r.Post("/toggle-status", cfg.AccountHandler.ToggleSuspend)
			r.Delete("/", cfg.AccountHandler.Delete)
		})
	})

	return r
}
