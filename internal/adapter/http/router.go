// Package http exposes the reconciled ledger view on a local HTTP surface.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerview/internal/adapter/http/handler"
	"github.com/iho/ledgerview/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ViewHandler   *handler.ViewHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger

	// Gatherer serves /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// View API
	r.Route("/api/view", func(r chi.Router) {
		r.Get("/transactions", cfg.ViewHandler.ListTransactions)
		r.Get("/account", cfg.ViewHandler.GetAccount)
		r.Post("/transfers", cfg.ViewHandler.SubmitTransfer)
		r.Post("/refresh", cfg.ViewHandler.Refresh)
	})

	return r
}
