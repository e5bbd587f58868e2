package tide

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for tide data providers.
type Provider interface {
	// GetStationData fetches predictions, extremes and water temperature
	// for a station over the given window.
	GetStationData(ctx context.Context, station Station, from, to time.Time) (*StationData, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the tide service.
type ServiceConfig struct {
	// Provider is the tide data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache station data (default: 1 hour).
	// Tide predictions are deterministic tables; they change only when
	// the prediction window rolls forward.
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 12 hours).
	StaleIfErrorTTL time.Duration
}

// Service provides tide snapshots with station-keyed caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedStationData
}

type cachedStationData struct {
	data      *StationData
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new tide service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 12 * time.Hour
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		cache:           make(map[string]*cachedStationData),
	}
}

// GetSnapshot returns tidal conditions for the station at the given
// instant, or nil when no usable data is available. A nil snapshot is not
// an error: scoring falls back to the tide-unaware weight table.
func (s *Service) GetSnapshot(ctx context.Context, station Station, at time.Time) (*Snapshot, error) {
	data, err := s.getStationData(ctx, station, at)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("station", station.ID).
			Msg("tide data unavailable, scoring without tide factors")
		return nil, nil
	}
	return DeriveSnapshot(data, at), nil
}

// GetWindow returns the station's prediction window around the given
// instant, or nil when no usable data is available. Like GetSnapshot, a
// nil window is not an error: callers score without tide factors.
func (s *Service) GetWindow(ctx context.Context, station Station, around time.Time) (*StationData, error) {
	data, err := s.getStationData(ctx, station, around)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("station", station.ID).
			Msg("tide data unavailable, scoring without tide factors")
		return nil, nil
	}
	return data, nil
}

// getStationData returns cached station data, fetching on miss or expiry.
func (s *Service) getStationData(ctx context.Context, station Station, at time.Time) (*StationData, error) {
	s.mu.RLock()
	if cached, ok := s.cache[station.ID]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.data, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring the write lock.
	if cached, ok := s.cache[station.ID]; ok && time.Now().Before(cached.expiresAt) {
		return cached.data, nil
	}

	from := at.Add(-24 * time.Hour)
	to := at.Add(15 * 24 * time.Hour)

	s.logger.Debug().
		Str("station", station.ID).
		Str("provider", s.provider.Name()).
		Msg("fetching tide data from provider")

	data, err := s.provider.GetStationData(ctx, station, from, to)
	if err != nil {
		s.logger.Error().Err(err).
			Str("station", station.ID).
			Msg("failed to fetch tide data")

		if cached, ok := s.cache[station.ID]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Str("station", station.ID).
					Msg("serving stale tide data due to provider error")
				return cached.data, nil
			}
		}

		return nil, ErrProviderUnavailable
	}

	now := time.Now()
	s.cache[station.ID] = &cachedStationData{
		data:      data,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	return data, nil
}

// InvalidateCache clears all cached station data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedStationData)
}
