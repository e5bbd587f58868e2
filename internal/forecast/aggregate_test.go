package forecast_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishcast/fishcast/internal/forecast"
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/weather"
)

// calmAt returns mild fishing conditions for one 15-minute interval.
func calmAt(ts int64) weather.Sample {
	return weather.Sample{
		Timestamp:           ts,
		Temperature:         12,
		ApparentTemperature: 12,
		Humidity:            55,
		DewPoint:            6,
		Pressure:            1017,
		CloudCover:          45,
		WindSpeed:           8,
		WindDirection:       270,
		WindGusts:           10,
		Visibility:          20000,
		SunshineDuration:    700,
		LightningPotential:  50,
		CAPE:                100,
	}
}

// stormAt returns rough conditions for one 15-minute interval.
func stormAt(ts int64) weather.Sample {
	s := calmAt(ts)
	s.Pressure = 988
	s.Precipitation = 6
	s.WindSpeed = 45
	s.WindGusts = 70
	s.CloudCover = 100
	s.Visibility = 900
	return s
}

// buildForecast lays down 15-minute samples from start for the given
// duration, via the make function.
func buildForecast(start time.Time, d time.Duration, mk func(ts int64) weather.Sample) *weather.Forecast {
	fc := &weather.Forecast{
		Lat:      49.3,
		Lon:      -123.1,
		Timezone: "UTC",
	}
	for t := start; t.Before(start.Add(d)); t = t.Add(15 * time.Minute) {
		fc.Samples = append(fc.Samples, mk(t.Unix()))

		date := t.UTC().Format("2006-01-02")
		if _, ok := fc.SunForDate(date); !ok {
			midnight := t.Truncate(24 * time.Hour)
			fc.Sun = append(fc.Sun, weather.DaySun{
				Date:    date,
				Sunrise: midnight.Add(6 * time.Hour).Unix(),
				Sunset:  midnight.Add(20 * time.Hour).Unix(),
			})
		}
	}
	return fc
}

func TestDailySkipsTodayAndPast(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	fc := buildForecast(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), 3*24*time.Hour, calmAt)

	days := agg.Daily(fc, nil, "", now, 14)

	require.Len(t, days, 2)
	assert.Equal(t, "2026-05-02", days[0].Date)
	assert.Equal(t, "2026-05-03", days[1].Date)
}

func TestDailyCapsHorizon(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	fc := buildForecast(time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC), 20*24*time.Hour, calmAt)

	assert.Len(t, agg.Daily(fc, nil, "", now, 14), 14)
	assert.Len(t, agg.Daily(fc, nil, "", now, 3), 3)
	assert.Len(t, agg.Daily(fc, nil, "", now, 0), 14, "zero means the cap")
}

func TestDailyFullDayHasTwelvePeriods(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	fc := buildForecast(time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC), 24*time.Hour, calmAt)

	days := agg.Daily(fc, nil, "", now, 14)
	require.Len(t, days, 1)

	day := days[0]
	require.Len(t, day.Periods, 12)
	for i, p := range day.Periods {
		assert.Equal(t, 8, p.SampleCount, "period %d", i)
		assert.Equal(t, p.Start+7200, p.End, "period %d", i)
		if i > 0 {
			assert.Equal(t, day.Periods[i-1].End, p.Start, "period %d contiguous", i)
		}
		assert.GreaterOrEqual(t, p.Score, 0.0)
		assert.LessOrEqual(t, p.Score, 10.0)
		assert.True(t, p.IsSafe)
	}
	assert.Equal(t, day.Sunrise, time.Date(2026, time.May, 2, 6, 0, 0, 0, time.UTC).Unix())
	require.NotNil(t, day.BestWindow)
	assert.Greater(t, day.AverageScore, 0.0)

	// Every 15-minute tick is also scored on its own, in time order.
	require.Len(t, day.Samples, 96)
	for i, s := range day.Samples {
		if i > 0 {
			assert.Equal(t, day.Samples[i-1].Timestamp+900, s.Timestamp, "sample %d", i)
		}
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 10.0)
		assert.Contains(t, s.Breakdown, scoring.FactorPressure)
	}
}

func TestDailySparseWindowOmitted(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	// First sample at 01:15: the 00:00-02:00 window only gets 3 samples.
	fc := buildForecast(time.Date(2026, time.May, 2, 1, 15, 0, 0, time.UTC), 24*time.Hour-75*time.Minute, calmAt)

	days := agg.Daily(fc, nil, "", now, 14)
	require.Len(t, days, 1)
	require.Len(t, days[0].Periods, 11)
	assert.Equal(t, time.Date(2026, time.May, 2, 2, 0, 0, 0, time.UTC).Unix(), days[0].Periods[0].Start)
}

func TestBestWindow(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)

	t.Run("highest scoring window wins", func(t *testing.T) {
		calmStart := time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC)
		calmEnd := calmStart.Add(2 * time.Hour)
		fc := buildForecast(time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC), 24*time.Hour, func(ts int64) weather.Sample {
			if ts >= calmStart.Unix() && ts < calmEnd.Unix() {
				return calmAt(ts)
			}
			return stormAt(ts)
		})

		days := agg.Daily(fc, nil, "", now, 14)
		require.Len(t, days, 1)
		require.NotNil(t, days[0].BestWindow)
		assert.Equal(t, calmStart.Unix(), days[0].BestWindow.Start)
	})

	t.Run("ties go to the earliest window", func(t *testing.T) {
		fc := buildForecast(time.Date(2026, time.May, 2, 12, 0, 0, 0, time.UTC), 8*time.Hour, stormAt)

		days := agg.Daily(fc, nil, "", now, 14)
		require.Len(t, days, 1)
		require.NotNil(t, days[0].BestWindow)

		best := days[0].BestWindow
		for _, p := range days[0].Periods {
			assert.LessOrEqual(t, p.Score, best.Score)
			if p.Score == best.Score {
				assert.GreaterOrEqual(t, p.Start, best.Start)
			}
		}
	})
}

// A window is scored on its averaged conditions, not by averaging the
// per-sample scores. With precipitation bursts inside the window the two
// disagree because the window keeps the burst maximum.
func TestWindowScoreDivergesFromSampleMean(t *testing.T) {
	agg := forecast.NewAggregator(scoring.NewRegistry())
	now := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)

	day := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	burst := 0
	fc := buildForecast(day, 24*time.Hour, func(ts int64) weather.Sample {
		s := calmAt(ts)
		burst++
		if burst%2 == 0 {
			s.Precipitation = 6
			s.WindGusts = 60
		}
		return s
	})

	days := agg.Daily(fc, nil, "", now, 14)
	require.Len(t, days, 1)
	require.NotEmpty(t, days[0].Periods)

	period := days[0].Periods[4] // 08:00-10:00
	sampleMean := 0.0
	count := 0
	for _, s := range days[0].Samples {
		if s.Timestamp >= period.Start && s.Timestamp < period.End {
			sampleMean += s.Score
			count++
		}
	}
	require.Equal(t, 8, count)
	sampleMean /= float64(count)

	assert.Greater(t, math.Abs(period.Score-sampleMean), 0.1)
	assert.Less(t, period.Score, sampleMean, "the window keeps the burst maximum")
}
