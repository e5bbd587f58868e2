// Package main provides the entrypoint for the FishCast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/fishcast/fishcast/internal/api"
	"github.com/fishcast/fishcast/internal/api/handler"
	"github.com/fishcast/fishcast/internal/api/middleware"
	"github.com/fishcast/fishcast/internal/database"
	"github.com/fishcast/fishcast/internal/forecast"
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/spots"
	"github.com/fishcast/fishcast/internal/telemetry"
	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/tide/noaa"
	"github.com/fishcast/fishcast/internal/weather"
	"github.com/fishcast/fishcast/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "fishcast-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FishCast API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database when configured. Without one, spots are kept
	// in memory and lost on restart.
	var pool *pgxpool.Pool
	var dbPinger handler.Pinger
	var spotRepo spots.Repository = spots.NewInMemoryRepository()
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		dbPinger = pool
		spotRepo = spots.NewPostgresRepository(pool)
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
	} else {
		log.Warn().Msg("DB_HOST not set, keeping spots in memory")
	}

	// Initialize weather service with the Open-Meteo provider
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openmeteo.NewClient(openmeteo.ClientConfig{
			BaseURL: os.Getenv("OPENMETEO_BASE_URL"),
			Logger:  log,
		}),
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// Initialize tide service with the NOAA CO-OPS provider
	tideService := tide.NewService(tide.ServiceConfig{
		Provider: noaa.NewClient(noaa.ClientConfig{
			BaseURL: os.Getenv("NOAA_BASE_URL"),
			Logger:  log,
		}),
		Logger: log,
	})
	log.Info().Msg("tide service initialized")

	// Initialize scoring and forecast services
	registry := scoring.NewRegistry()
	forecastService := forecast.NewService(forecast.ServiceConfig{
		Weather:  weatherService,
		Tide:     tideService,
		Registry: registry,
		Logger:   log,
	})
	log.Info().Msg("forecast service initialized")

	// Initialize spots service
	spotsService := spots.NewService(spotRepo)
	log.Info().Msg("spots service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:         Version,
		BuildTime:       BuildTime,
		Logger:          log,
		ServiceName:     serviceName,
		Metrics:         metrics,
		ForecastService: forecastService,
		SpotsService:    spotsService,
		Registry:        registry,
		DB:              dbPinger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
