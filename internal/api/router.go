// Package api provides the HTTP API for FishCast.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fishcast/fishcast/internal/api/handler"
	"github.com/fishcast/fishcast/internal/api/middleware"
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/spots"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	BuildTime       string
	Logger          zerolog.Logger
	ServiceName     string
	Metrics         *middleware.Metrics
	ForecastService handler.ForecastService
	SpotsService    *spots.Service
	Registry        *scoring.Registry
	DB              handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "fishcast-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	forecastHandler := handler.NewForecastHandler(cfg.ForecastService, cfg.SpotsService)
	speciesHandler := handler.NewSpeciesHandler(cfg.Registry)
	spotsHandler := handler.NewSpotsHandler(cfg.SpotsService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Species catalog (public) - standard rate limiting
		r.With(standardRateLimit).Get("/species", speciesHandler.ListSpecies)

		// Forecast endpoints - expensive compute, strict rate limiting
		r.Group(func(r chi.Router) {
			r.Use(expensiveRateLimit) // 30 requests per minute per IP
			r.Get("/forecast", forecastHandler.GetForecast)
			r.Get("/score/current", forecastHandler.GetCurrentScore)
		})

		// Saved fishing spots - standard rate limiting
		r.Route("/spots", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", spotsHandler.ListSpots)
			r.Post("/", spotsHandler.CreateSpot)
			r.Route("/{spotId}", func(r chi.Router) {
				r.Get("/", spotsHandler.GetSpot)
				r.Put("/", spotsHandler.UpdateSpot)
				r.Delete("/", spotsHandler.DeleteSpot)
			})
		})
	})

	return r
}
