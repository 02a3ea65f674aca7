package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/tripsplit/internal/adapter/http/handler"
	"github.com/iho/tripsplit/internal/adapter/http/middleware"
	"github.com/iho/tripsplit/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TripHandler       *handler.TripHandler
	ExpenseHandler    *handler.ExpenseHandler
	SettlementHandler *handler.SettlementHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
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
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Trips
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", cfg.TripHandler.Create)
			r.Get("/", cfg.TripHandler.List)
			r.Get("/{id}", cfg.TripHandler.Get)
			r.Post("/{id}/expenses", cfg.ExpenseHandler.Create)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.ListByTrip)
			r.Get("/{id}/settlement", cfg.SettlementHandler.Get)
			r.Get("/{id}/settlement/breakdown", cfg.SettlementHandler.Breakdown)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/{id}", cfg.ExpenseHandler.Get)
			r.Delete("/{id}", cfg.ExpenseHandler.Delete)
		})
	})

	return r
}
