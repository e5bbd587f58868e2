// Package scoring implements the fishing-condition scoring engine: factor
// scorers, the general weighted model, species-specific models and the
// species profile catalog. Every function here is a pure computation over
// its inputs; the engine never performs I/O and never returns an error —
// missing measurements score at documented neutral defaults and
// out-of-range values ride the same curves to their extremes.
package scoring

import (
	"math"
	"time"

	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

// Factor names used in general-model breakdowns.
const (
	FactorPressure      = "pressure"
	FactorWind          = "wind"
	FactorTemperature   = "temperature"
	FactorWaterTemp     = "waterTemperature"
	FactorPrecipitation = "precipitation"
	FactorTide          = "tide"
	FactorCurrentSpeed  = "currentSpeed"
	FactorCurrentDir    = "currentDirection"
	FactorCloudCover    = "cloudCover"
	FactorVisibility    = "visibility"
	FactorSunshine      = "sunshine"
	FactorLightning     = "lightning"
	FactorStability     = "atmosphericStability"
	FactorComfort       = "comfort"
	FactorTimeOfDay     = "timeOfDay"
	FactorSpecies       = "species"
)

// Factor names used in species-model breakdowns.
const (
	FactorSeasonality = "seasonality"
	FactorCurrentFlow = "currentFlow"
	FactorWeather     = "weather"
	FactorWaterTempSp = "waterTemp"
)

// FactorBreakdown maps factor names to sub-scores in [0, 10]. The general
// model always emits the same 16 keys; species models emit their own
// smaller sets.
type FactorBreakdown map[string]float64

// FishingScore is the scored result for one sample. Total is always
// clamped to [0, 10] and is never zeroed or capped by safety state:
// safety information is advisory so callers can see actual conditions and
// make their own call.
type FishingScore struct {
	Total          float64
	Breakdown      FactorBreakdown
	IsSafe         bool
	SafetyWarnings []string
}

// Input is everything a scoring strategy needs for one sample. Tide and
// Profile are optional; nil values select the tide-unaware weight table
// and the general (species-free) model respectively.
type Input struct {
	Sample  weather.Sample
	Tide    *tide.Snapshot
	Profile *SpeciesProfile

	// Sunrise and Sunset are epoch seconds for the sample's calendar day.
	Sunrise int64
	Sunset  int64

	// Lat and Lon locate the sample for season resolution and solar
	// geometry.
	Lat float64
	Lon float64

	// Location is the forecast's local timezone, used for hour-of-day
	// effects. Nil means UTC.
	Location *time.Location
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 { return clamp(v, 0, 1) }
