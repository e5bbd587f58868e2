package forecast

import (
	"sort"
	"time"

	"github.com/fishcast/fishcast/internal/astro"
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

const (
	// periodLength is the aggregation window.
	periodLength = 2 * time.Hour

	// minSamplesPerPeriod is the floor below which a window is omitted
	// rather than scored on thin data. Half of the nominal eight.
	minSamplesPerPeriod = 4

	// maxForecastDays caps the outlook horizon.
	maxForecastDays = 14

	dateLayout = "2006-01-02"
)

// Aggregator buckets forecast samples into future days and two-hour
// windows and scores each window on its averaged conditions. Aggregators
// are stateless and safe for concurrent use.
type Aggregator struct {
	registry *scoring.Registry
}

// NewAggregator creates an aggregator over the given strategy registry.
func NewAggregator(registry *scoring.Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// Daily builds daily forecasts from a weather forecast and an optional
// tide window. Today and past samples are skipped: a day must be fully
// in the future to be aggregated. At most maxDays days are returned
// (capped at 14; zero or negative means the cap).
func (a *Aggregator) Daily(fc *weather.Forecast, tides *tide.StationData, speciesQuery string, now time.Time, maxDays int) []DailyForecast {
	if fc == nil || len(fc.Samples) == 0 {
		return nil
	}
	if maxDays <= 0 || maxDays > maxForecastDays {
		maxDays = maxForecastDays
	}

	loc, err := time.LoadLocation(fc.Timezone)
	if err != nil || fc.Timezone == "" {
		loc = time.UTC
	}
	today := now.In(loc).Format(dateLayout)

	profile := scoring.ResolveSpecies(speciesQuery)
	strategy := a.registry.StrategyFor(profile)

	byDate := make(map[string][]weather.Sample)
	for _, s := range fc.Samples {
		date := s.Time().In(loc).Format(dateLayout)
		if date <= today {
			continue
		}
		byDate[date] = append(byDate[date], s)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > maxDays {
		dates = dates[:maxDays]
	}

	sc := astro.NewSunCalc(fc.Lat, fc.Lon)

	days := make([]DailyForecast, 0, len(dates))
	for _, date := range dates {
		day := a.aggregateDay(date, byDate[date], fc, tides, profile, strategy, loc, sc)
		if len(day.Periods) == 0 {
			continue
		}
		days = append(days, day)
	}
	return days
}

func (a *Aggregator) aggregateDay(
	date string,
	samples []weather.Sample,
	fc *weather.Forecast,
	tides *tide.StationData,
	profile *scoring.SpeciesProfile,
	strategy scoring.Strategy,
	loc *time.Location,
	sc *astro.SunCalc,
) DailyForecast {
	sunrise, sunset := a.sunTimes(date, fc, loc, sc)

	midnight, _ := time.ParseInLocation(dateLayout, date, loc)

	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp < samples[j].Timestamp
	})

	byPeriod := make(map[int][]weather.Sample)
	for _, s := range samples {
		idx := int(s.Time().In(loc).Sub(midnight) / periodLength)
		byPeriod[idx] = append(byPeriod[idx], s)
	}

	indexes := make([]int, 0, len(byPeriod))
	for idx := range byPeriod {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	day := DailyForecast{Date: date, Sunrise: sunrise, Sunset: sunset}

	// Minute-level pass: every sample scored on its own for full
	// resolution display, independent of the window aggregation below.
	day.Samples = make([]SampleScore, 0, len(samples))
	for _, s := range samples {
		score := strategy.Score(scoring.Input{
			Sample:   s,
			Tide:     tide.DeriveSnapshot(tides, s.Time()),
			Profile:  profile,
			Sunrise:  sunrise,
			Sunset:   sunset,
			Lat:      fc.Lat,
			Lon:      fc.Lon,
			Location: loc,
		})
		day.Samples = append(day.Samples, SampleScore{
			Timestamp:      s.Timestamp,
			Score:          score.Total,
			Breakdown:      score.Breakdown,
			IsSafe:         score.IsSafe,
			SafetyWarnings: score.SafetyWarnings,
		})
	}

	total := 0.0
	for _, idx := range indexes {
		block := byPeriod[idx]
		if len(block) < minSamplesPerPeriod {
			continue
		}

		start := midnight.Add(time.Duration(idx) * periodLength)
		end := start.Add(periodLength)
		merged := mergeSamples(block, start.Add(periodLength/2).Unix())

		score := strategy.Score(scoring.Input{
			Sample:   merged,
			Tide:     tide.DeriveSnapshot(tides, time.Unix(merged.Timestamp, 0)),
			Profile:  profile,
			Sunrise:  sunrise,
			Sunset:   sunset,
			Lat:      fc.Lat,
			Lon:      fc.Lon,
			Location: loc,
		})

		period := PeriodForecast{
			Start:          start.Unix(),
			End:            end.Unix(),
			Score:          score.Total,
			Breakdown:      score.Breakdown,
			IsSafe:         score.IsSafe,
			SafetyWarnings: score.SafetyWarnings,
			SampleCount:    len(block),
		}
		day.Periods = append(day.Periods, period)
		total += period.Score
	}

	if len(day.Periods) > 0 {
		day.AverageScore = total / float64(len(day.Periods))
		best := 0
		for i, p := range day.Periods[1:] {
			if p.Score > day.Periods[best].Score {
				best = i + 1
			}
		}
		day.BestWindow = &day.Periods[best]
	}
	return day
}

// sunTimes resolves sunrise/sunset for a local date, preferring the
// provider's daily block and falling back to computed times.
func (a *Aggregator) sunTimes(date string, fc *weather.Forecast, loc *time.Location, sc *astro.SunCalc) (int64, int64) {
	if sun, ok := fc.SunForDate(date); ok {
		return sun.Sunrise, sun.Sunset
	}

	day, _ := time.ParseInLocation(dateLayout, date, loc)
	if st, err := sc.SunTimesFor(day); err == nil {
		return st.Sunrise.Unix(), st.Sunset.Unix()
	}

	// No provider data and polar-edge computation failed: assume a
	// nominal 6-to-18 day so time-of-day scoring stays sane.
	return day.Add(6 * time.Hour).Unix(), day.Add(18 * time.Hour).Unix()
}

// mergeSamples collapses a window's samples into one synthetic sample at
// the window midpoint. Most fields average; precipitation, gusts and
// lightning take the window maximum so short bursts are not smoothed
// away; wind direction holds the first reading rather than averaging
// across the 0/360 seam.
func mergeSamples(block []weather.Sample, midpoint int64) weather.Sample {
	n := float64(len(block))
	merged := weather.Sample{
		Timestamp:     midpoint,
		WindDirection: block[0].WindDirection,
	}

	var waveSum float64
	var waveCount int
	for _, s := range block {
		merged.Temperature += s.Temperature / n
		merged.ApparentTemperature += s.ApparentTemperature / n
		merged.Humidity += s.Humidity / n
		merged.DewPoint += s.DewPoint / n
		merged.Pressure += s.Pressure / n
		merged.CloudCover += s.CloudCover / n
		merged.WindSpeed += s.WindSpeed / n
		merged.Visibility += s.Visibility / n
		merged.SunshineDuration += s.SunshineDuration / n
		merged.CAPE += s.CAPE / n

		if s.Precipitation > merged.Precipitation {
			merged.Precipitation = s.Precipitation
		}
		if s.WindGusts > merged.WindGusts {
			merged.WindGusts = s.WindGusts
		}
		if s.LightningPotential > merged.LightningPotential {
			merged.LightningPotential = s.LightningPotential
		}
		if s.WaveHeight != nil {
			waveSum += *s.WaveHeight
			waveCount++
		}
	}

	if waveCount > 0 {
		wave := waveSum / float64(waveCount)
		merged.WaveHeight = &wave
	}
	return merged
}
