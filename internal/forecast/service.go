package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fishcast/fishcast/internal/astro"
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

// ErrNoSampleForNow means the weather forecast does not cover the
// requested instant.
var ErrNoSampleForNow = errors.New("no forecast sample covers the current time")

// WeatherSource supplies multi-day sample forecasts.
type WeatherSource interface {
	GetForecast(ctx context.Context, lat, lon float64, days int) (*weather.Forecast, error)
}

// TideSource supplies tide prediction windows. A nil window with a nil
// error means "no tide data, score without it".
type TideSource interface {
	GetWindow(ctx context.Context, station tide.Station, around time.Time) (*tide.StationData, error)
}

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	Weather  WeatherSource
	Tide     TideSource
	Registry *scoring.Registry
	Logger   zerolog.Logger

	// MaxDays caps the daily outlook horizon (default and max: 14).
	MaxDays int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service orchestrates weather, tide and scoring into forecasts.
type Service struct {
	weather    WeatherSource
	tide       TideSource
	aggregator *Aggregator
	registry   *scoring.Registry
	logger     zerolog.Logger
	maxDays    int
	now        func() time.Time
}

// NewService creates a forecast service.
func NewService(cfg ServiceConfig) *Service {
	registry := cfg.Registry
	if registry == nil {
		registry = scoring.NewRegistry()
	}

	maxDays := cfg.MaxDays
	if maxDays <= 0 || maxDays > maxForecastDays {
		maxDays = maxForecastDays
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		weather:    cfg.Weather,
		tide:       cfg.Tide,
		aggregator: NewAggregator(registry),
		registry:   registry,
		logger:     cfg.Logger,
		maxDays:    maxDays,
		now:        now,
	}
}

// GetDaily returns the daily outlook for a location. The station is
// optional; without one (or when tide data is unavailable) scoring runs
// tide-unaware.
func (s *Service) GetDaily(ctx context.Context, lat, lon float64, station *tide.Station, species string) ([]DailyForecast, error) {
	now := s.now()

	// One extra day of raw data covers the skipped remainder of today.
	fc, err := s.weather.GetForecast(ctx, lat, lon, s.maxDays+1)
	if err != nil {
		return nil, err
	}

	tides := s.tideWindow(ctx, station, now)

	days := s.aggregator.Daily(fc, tides, species, now, s.maxDays)

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("species", species).
		Int("days", len(days)).
		Bool("tide_aware", tides != nil).
		Msg("daily forecast built")

	return days, nil
}

// GetCurrent scores the sample covering the current instant.
func (s *Service) GetCurrent(ctx context.Context, lat, lon float64, station *tide.Station, species string) (*CurrentConditions, error) {
	now := s.now()

	fc, err := s.weather.GetForecast(ctx, lat, lon, 1)
	if err != nil {
		return nil, err
	}

	sample, ok := sampleAt(fc, now)
	if !ok {
		return nil, ErrNoSampleForNow
	}

	var snap *tide.Snapshot
	if tides := s.tideWindow(ctx, station, now); tides != nil {
		snap = tide.DeriveSnapshot(tides, now)
	}

	loc, err := time.LoadLocation(fc.Timezone)
	if err != nil || fc.Timezone == "" {
		loc = time.UTC
	}
	date := now.In(loc).Format(dateLayout)
	sunrise, sunset := s.aggregator.sunTimes(date, fc, loc, astro.NewSunCalc(lat, lon))

	profile := scoring.ResolveSpecies(species)
	strategy := s.registry.StrategyFor(profile)
	score := strategy.Score(scoring.Input{
		Sample:   sample,
		Tide:     snap,
		Profile:  profile,
		Sunrise:  sunrise,
		Sunset:   sunset,
		Lat:      lat,
		Lon:      lon,
		Location: loc,
	})

	return &CurrentConditions{
		Timestamp: sample.Timestamp,
		Score:     score,
		Strategy:  strategy.Name(),
		Sample:    sample,
	}, nil
}

// tideWindow fetches the station's prediction window, tolerating absent
// stations and provider failures.
func (s *Service) tideWindow(ctx context.Context, station *tide.Station, now time.Time) *tide.StationData {
	if s.tide == nil || station == nil {
		return nil
	}
	tides, err := s.tide.GetWindow(ctx, *station, now)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("station", station.ID).
			Msg("tide window unavailable")
		return nil
	}
	return tides
}

// sampleAt finds the sample whose 15-minute interval contains t.
func sampleAt(fc *weather.Forecast, t time.Time) (weather.Sample, bool) {
	ts := t.Unix()
	for _, s := range fc.Samples {
		if s.Timestamp <= ts && ts < s.Timestamp+900 {
			return s, true
		}
	}
	return weather.Sample{}, false
}
