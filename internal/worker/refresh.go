package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/fishcast/fishcast/internal/spots"
	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

// savedSpotsLimit caps how many saved spots a single refresh run pulls in.
const savedSpotsLimit = 500

// RefreshJob pre-warms the weather and tide caches so interactive
// forecast requests hit warm data.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	// Services (optional, nil if not configured)
	weatherService *weather.Service
	tideService    *tide.Service
	spotRepo       spots.Repository

	// Metrics
	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRefreshes    int64
	SuccessfulRefresh int64
	FailedRefreshes   int64
	WeatherRefresh    int64
	TideRefresh       int64
	SpotPoints        int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	WeatherService *weather.Service
	TideService    *tide.Service
	SpotRepo       spots.Repository
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Targets) == 0 {
		config = DefaultRefreshConfig()
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		weatherService: cfg.WeatherService,
		tideService:    cfg.TideService,
		spotRepo:       cfg.SpotRepo,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh operation.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalPoints int
	Successful  int
	Failed      int
	Stations    int
	Errors      []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Provider string
	Point    Point
	Error    string
}

// refreshTask is one point plus the tide station covering it.
type refreshTask struct {
	point     Point
	stationID string
}

// Run executes the refresh job for all configured targets and, when
// enabled, all saved fishing spots.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()

	tasks := j.buildTasks(ctx)
	result := &RefreshResult{
		StartTime:   startTime,
		TotalPoints: len(tasks),
	}

	j.logger.Info().
		Int("total_points", result.TotalPoints).
		Int("concurrency", j.config.Concurrency).
		Msg("starting forecast refresh job")

	// Create work channels
	tasksChan := make(chan refreshTask, len(tasks))
	resultsChan := make(chan pointResult, len(tasks))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, tasksChan, resultsChan)
		}()
	}

	// Send tasks to workers
	for _, task := range tasks {
		tasksChan <- task
	}
	close(tasksChan)

	// Wait for workers to complete
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results
	for pr := range resultsChan {
		if pr.success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Errors = append(result.Errors, pr.errors...)
	}

	// Tide predictions are cached per station, so warm each station once
	// rather than per point.
	result.Stations = j.refreshStations(ctx, tasks, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	// Update metrics
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("stations", result.Stations).
		Msg("forecast refresh job completed")

	return result
}

// buildTasks flattens the configured targets, then appends saved spots.
func (j *RefreshJob) buildTasks(ctx context.Context) []refreshTask {
	var tasks []refreshTask
	for _, target := range j.config.Targets {
		for _, p := range target.Points {
			tasks = append(tasks, refreshTask{point: p, stationID: target.StationID})
		}
	}

	if !j.config.IncludeSavedSpots || j.spotRepo == nil {
		return tasks
	}

	listed, err := j.spotRepo.List(ctx, spots.ListOptions{Limit: savedSpotsLimit})
	if err != nil {
		j.logger.Warn().Err(err).Msg("failed to list saved spots, refreshing configured targets only")
		return tasks
	}

	for _, spot := range listed.Items {
		task := refreshTask{point: Point{Lat: spot.Location.Lat, Lon: spot.Location.Lon}}
		if spot.StationID != nil {
			task.stationID = *spot.StationID
		}
		tasks = append(tasks, task)
	}
	atomic.AddInt64(&j.metrics.SpotPoints, int64(len(listed.Items)))

	return tasks
}

type pointResult struct {
	point   Point
	success bool
	errors  []RefreshError
}

func (j *RefreshJob) refreshWorker(ctx context.Context, tasks <-chan refreshTask, results chan<- pointResult) {
	for task := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshPoint(ctx, task)
		}
	}
}

func (j *RefreshJob) refreshPoint(ctx context.Context, task refreshTask) pointResult {
	result := pointResult{
		point:   task.point,
		success: true,
	}

	// Create timeout context for this point
	pointCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if j.config.RefreshWeather && j.weatherService != nil {
		if err := j.refreshWeather(pointCtx, task.point); err != nil {
			result.errors = append(result.errors, RefreshError{
				Provider: "weather",
				Point:    task.point,
				Error:    err.Error(),
			})
			result.success = false
		} else {
			atomic.AddInt64(&j.metrics.WeatherRefresh, 1)
		}
	}

	return result
}

// refreshStations warms the tide cache for every distinct station in the
// task set. Returns the number of stations attempted.
func (j *RefreshJob) refreshStations(ctx context.Context, tasks []refreshTask, result *RefreshResult) int {
	if !j.config.RefreshTides || j.tideService == nil {
		return 0
	}

	seen := make(map[string]Point)
	for _, task := range tasks {
		if task.stationID == "" {
			continue
		}
		if _, ok := seen[task.stationID]; !ok {
			seen[task.stationID] = task.point
		}
	}

	for stationID, point := range seen {
		stationCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
		station := tide.Station{ID: stationID, Lat: point.Lat, Lon: point.Lon}
		data, err := j.tideService.GetWindow(stationCtx, station, time.Now())
		cancel()

		// GetWindow reports provider failures as a nil window.
		if err != nil || data == nil {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				Provider: "tide",
				Point:    point,
				Error:    "station " + stationID + " unavailable",
			})
			continue
		}
		result.Successful++
		atomic.AddInt64(&j.metrics.TideRefresh, 1)
	}

	return len(seen)
}

func (j *RefreshJob) refreshWeather(ctx context.Context, point Point) error {
	days := j.config.ForecastDays
	if days <= 0 {
		days = 7
	}
	_, err := j.weatherService.GetForecast(ctx, point.Lat, point.Lon, days)
	return err
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRefresh += int64(result.Successful)
	j.metrics.FailedRefreshes += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRefresh:   j.metrics.SuccessfulRefresh,
		FailedRefreshes:     j.metrics.FailedRefreshes,
		WeatherRefresh:      j.metrics.WeatherRefresh,
		TideRefresh:         j.metrics.TideRefresh,
		SpotPoints:          j.metrics.SpotPoints,
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_refreshes":  m.SuccessfulRefresh,
		"failed_refreshes":      m.FailedRefreshes,
		"weather_refreshes":     m.WeatherRefresh,
		"tide_refreshes":        m.TideRefresh,
		"spot_points":           m.SpotPoints,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
	}
}
