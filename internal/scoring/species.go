package scoring

import (
	"fmt"
	"time"

	"github.com/fishcast/fishcast/internal/astro"
	"github.com/fishcast/fishcast/internal/units"
)

// factorResult is one species factor evaluated in [0, 1]. An unsafe
// result zeroes that factor and raises an advisory warning; it never
// alters how the total is computed from the remaining factors.
type factorResult struct {
	score   float64
	unsafe  bool
	warning string
}

// factorEval evaluates one species factor against an input.
type factorEval func(in Input) factorResult

// speciesFactor pairs a named factor with its weight and evaluator.
// Weights within one species sum to 1.0.
type speciesFactor struct {
	name   string
	weight float64
	eval   factorEval
}

// speciesStrategy scores one species with its own factor set, weight
// table and safety cutoffs.
type speciesStrategy struct {
	id      string
	profile *SpeciesProfile
	factors []speciesFactor
}

// Name returns the versioned strategy name.
func (ss *speciesStrategy) Name() string {
	return "species/" + ss.id + "/v2"
}

// Score evaluates all factors and combines them into a [0, 10] total.
// Safety cutoffs zero individual factors and mark the score unsafe, but
// the total is still the weighted sum of whatever remains: the caller
// sees real conditions and makes their own safety call.
func (ss *speciesStrategy) Score(in Input) FishingScore {
	breakdown := make(FactorBreakdown, len(ss.factors))
	total := 0.0
	safe := true
	var warnings []string

	for _, f := range ss.factors {
		r := f.eval(in)
		if r.unsafe {
			r.score = 0
			safe = false
			warnings = append(warnings, r.warning)
		}
		score := clamp01(r.score)
		breakdown[f.name] = score * 10
		total += score * f.weight
	}

	return FishingScore{
		Total:          clamp(total*10, 0, 10),
		Breakdown:      breakdown,
		IsSafe:         safe,
		SafetyWarnings: warnings,
	}
}

// Weights returns the strategy's weight table, for introspection and
// invariant tests.
func (ss *speciesStrategy) Weights() WeightTable {
	w := make(WeightTable, len(ss.factors))
	for _, f := range ss.factors {
		w[f.name] = f.weight
	}
	return w
}

// Shared factor evaluators. All return [0, 1].

func tide01(in Input) factorResult {
	return factorResult{score: TideScore(in.Tide, in.Sample.Time()) / 10}
}

func slack01(in Input) factorResult {
	return factorResult{score: SlackScore(in.Tide) / 10}
}

func (ss *speciesStrategy) timeOfDay01(in Input) factorResult {
	ts := in.Sample.Timestamp
	score := TimeOfDayScore(ts, in.Sunrise, in.Sunset, in.Location) / 10 *
		activityMultiplier(ss.profile, ts, in.Sunrise, in.Sunset)

	at := in.Sample.Time()
	if ts < in.Sunrise || ts > in.Sunset {
		// Moonlight keeps night feeders hunting.
		score += 0.05 * astro.MoonIllumination(at) * ss.profile.NightActivity
	} else if astro.SolarAltitude(at, in.Lat, in.Lon) < 10 {
		// A low sun stretches the bite window for low-light hunters.
		score *= ss.profile.LowLightPreference
	}
	return factorResult{score: clamp01(score)}
}

func (ss *speciesStrategy) waterTemp01(in Input) factorResult {
	if in.Tide == nil || in.Tide.WaterTemperature == nil {
		return factorResult{score: 0.6}
	}
	return factorResult{score: WaterTemperatureScore(*in.Tide.WaterTemperature, ss.profile) / 10}
}

// currentFlow01 scores current speed against the species' preferred band
// and enforces the species' hard current-speed cutoff.
func (ss *speciesStrategy) currentFlow01(maxSafeKnots float64) factorEval {
	return func(in Input) factorResult {
		if in.Tide == nil {
			return factorResult{score: 0.5}
		}
		speed := in.Tide.CurrentSpeed
		if maxSafeKnots > 0 && speed > maxSafeKnots {
			return factorResult{
				unsafe: true,
				warning: fmt.Sprintf("current speed %.1f kn exceeds the safe limit of %.1f kn for %s",
					speed, maxSafeKnots, ss.profile.Name),
			}
		}
		return factorResult{score: CurrentSpeedScore(speed, ss.profile) / 10}
	}
}

// weatherLimits are the hard weather cutoffs a species' weather factor
// enforces. Zero values disable a cutoff.
type weatherLimits struct {
	maxWindKmh  float64
	maxWaveM    float64
	minTempC    float64
	maxPrecipMM float64
}

// weather01 blends wind, precipitation and visibility into one surface
// weather factor and enforces the species' weather cutoffs.
func (ss *speciesStrategy) weather01(limits weatherLimits) factorEval {
	return func(in Input) factorResult {
		s := in.Sample

		if limits.maxWindKmh > 0 && s.WindSpeed > limits.maxWindKmh {
			return factorResult{
				unsafe: true,
				warning: fmt.Sprintf("wind %.0f km/h exceeds the safe limit of %.0f km/h for %s",
					s.WindSpeed, limits.maxWindKmh, ss.profile.Name),
			}
		}
		if limits.maxWaveM > 0 && s.WaveHeight != nil && *s.WaveHeight > limits.maxWaveM {
			return factorResult{
				unsafe: true,
				warning: fmt.Sprintf("wave height %.1f m exceeds the safe limit of %.1f m for %s",
					*s.WaveHeight, limits.maxWaveM, ss.profile.Name),
			}
		}
		if limits.minTempC != 0 && s.Temperature < limits.minTempC {
			return factorResult{
				unsafe: true,
				warning: fmt.Sprintf("temperature %.0f°C is below the safe limit of %.0f°C for %s",
					s.Temperature, limits.minTempC, ss.profile.Name),
			}
		}
		if limits.maxPrecipMM > 0 && s.Precipitation > limits.maxPrecipMM {
			return factorResult{
				unsafe: true,
				warning: fmt.Sprintf("precipitation %.1f mm/h exceeds the safe limit of %.1f mm/h for %s",
					s.Precipitation, limits.maxPrecipMM, ss.profile.Name),
			}
		}

		wind := WindScore(units.KmhToMs(s.WindSpeed), units.KmhToMs(s.WindGusts), s.WindDirection) / 10
		precip := PrecipitationScoreFromMM(s.Precipitation) / 10
		visibility := VisibilityScore(s.Visibility) / 10

		return factorResult{score: clamp01(0.5*wind + 0.3*precip + 0.2*visibility)}
	}
}

func pressure01(in Input) factorResult {
	return factorResult{score: PressureScore(in.Sample.Pressure) / 10}
}

// monthScores maps month (1-12) to a [0, 1] run-strength score.
type monthScores [13]float64

func seasonality01(byMonth monthScores) factorEval {
	return func(in Input) factorResult {
		return factorResult{score: byMonth[int(in.Sample.Time().UTC().Month())]}
	}
}

// pinkSeasonality01 handles the pink salmon run cycle: pinks return to
// most Pacific Northwest rivers only in odd years, so any date in an even
// calendar year scores zero regardless of month.
func pinkSeasonality01(byMonth monthScores) factorEval {
	base := seasonality01(byMonth)
	return func(in Input) factorResult {
		if in.Sample.Time().UTC().Year()%2 == 0 {
			return factorResult{score: 0}
		}
		return base(in)
	}
}

// lingcodSeasonality01 zeroes outside the May through September open
// season (regulatory closure, not a safety condition).
func lingcodSeasonality01(byMonth monthScores) factorEval {
	base := seasonality01(byMonth)
	return func(in Input) factorResult {
		m := in.Sample.Time().UTC().Month()
		if m < time.May || m > time.September {
			return factorResult{score: 0}
		}
		return base(in)
	}
}

// spotPrawnWindLimitKmh is the spot prawn wind cutoff: 15 knots. Prawning
// means tending gear from a small open boat.
var spotPrawnWindLimitKmh = units.KnotsToKmh(15)

// newSpeciesStrategies builds the species-specific strategies keyed by
// catalog id.
func newSpeciesStrategies() map[string]*speciesStrategy {
	strategies := make(map[string]*speciesStrategy, len(Catalog))
	for _, p := range Catalog {
		ss := &speciesStrategy{id: p.ID, profile: p}
		ss.factors = speciesFactors(ss)
		strategies[p.ID] = ss
	}
	return strategies
}

// speciesFactors defines each species' factor set, weights and cutoffs.
func speciesFactors(ss *speciesStrategy) []speciesFactor {
	switch ss.id {
	case "chinook-salmon":
		return []speciesFactor{
			{FactorSeasonality, 0.25, seasonality01(monthScores{0, 0.3, 0.3, 0.4, 0.4, 0.7, 0.9, 1.0, 1.0, 0.8, 0.4, 0.3, 0.3})},
			{FactorTide, 0.20, tide01},
			{FactorCurrentFlow, 0.15, ss.currentFlow01(4.0)},
			{FactorTimeOfDay, 0.15, ss.timeOfDay01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWindKmh: 35, minTempC: -5})},
		}
	case "coho-salmon":
		return []speciesFactor{
			{FactorSeasonality, 0.30, seasonality01(monthScores{0, 0.1, 0.1, 0.1, 0.1, 0.2, 0.3, 0.4, 0.7, 1.0, 1.0, 0.5, 0.1})},
			{FactorTimeOfDay, 0.20, ss.timeOfDay01},
			{FactorTide, 0.15, tide01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorCurrentFlow, 0.10, ss.currentFlow01(4.5)},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWindKmh: 35})},
		}
	case "chum-salmon":
		return []speciesFactor{
			{FactorSeasonality, 0.35, seasonality01(monthScores{0, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.2, 0.3, 0.5, 1.0, 1.0, 0.4})},
			{FactorTide, 0.20, tide01},
			{FactorTimeOfDay, 0.15, ss.timeOfDay01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorWeather, 0.15, ss.weather01(weatherLimits{maxWindKmh: 40})},
		}
	case "pink-salmon":
		return []speciesFactor{
			{FactorSeasonality, 0.40, pinkSeasonality01(monthScores{0, 0.1, 0.1, 0.1, 0.1, 0.1, 0.2, 0.5, 1.0, 1.0, 0.3, 0.1, 0.1})},
			{FactorTide, 0.20, tide01},
			{FactorTimeOfDay, 0.15, ss.timeOfDay01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWindKmh: 35})},
		}
	case "sockeye-salmon":
		return []speciesFactor{
			{FactorSeasonality, 0.35, seasonality01(monthScores{0, 0.1, 0.1, 0.1, 0.1, 0.2, 0.5, 1.0, 1.0, 0.4, 0.1, 0.1, 0.1})},
			{FactorCurrentFlow, 0.20, ss.currentFlow01(4.0)},
			{FactorTide, 0.15, tide01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorTimeOfDay, 0.15, ss.timeOfDay01},
		}
	case "halibut":
		return []speciesFactor{
			{FactorTide, 0.30, slack01}, // halibut are fished on the slack
			{FactorCurrentFlow, 0.25, ss.currentFlow01(3.0)},
			{FactorSeasonality, 0.15, seasonality01(monthScores{0, 0.2, 0.4, 0.9, 1.0, 1.0, 0.9, 0.7, 0.7, 0.7, 0.5, 0.3, 0.2})},
			{FactorWaterTempSp, 0.10, ss.waterTemp01},
			{FactorPressure, 0.10, pressure01},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWindKmh: 30, maxWaveM: 2.0})},
		}
	case "lingcod":
		return []speciesFactor{
			{FactorSeasonality, 0.30, lingcodSeasonality01(monthScores{0, 0, 0, 0, 0, 0.9, 1.0, 0.9, 0.8, 0.7, 0, 0, 0})},
			{FactorCurrentFlow, 0.20, ss.currentFlow01(3.5)},
			{FactorTide, 0.20, slack01},
			{FactorWaterTempSp, 0.10, ss.waterTemp01},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWaveM: 2.0})},
			{FactorTimeOfDay, 0.10, ss.timeOfDay01},
		}
	case "rockfish":
		return []speciesFactor{
			{FactorSeasonality, 0.25, seasonality01(monthScores{0, 0.4, 0.4, 0.6, 0.8, 1.0, 1.0, 1.0, 1.0, 0.8, 0.6, 0.4, 0.4})},
			{FactorCurrentFlow, 0.20, ss.currentFlow01(0)},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorTide, 0.15, tide01},
			{FactorWeather, 0.15, ss.weather01(weatherLimits{maxWaveM: 1.5, maxPrecipMM: 8})},
			{FactorTimeOfDay, 0.10, ss.timeOfDay01},
		}
	case "crab":
		return []speciesFactor{
			{FactorTide, 0.25, tide01},
			{FactorCurrentFlow, 0.25, ss.currentFlow01(3.0)},
			{FactorSeasonality, 0.20, seasonality01(monthScores{0, 0.3, 0.2, 0.2, 0.3, 0.5, 0.8, 1.0, 1.0, 1.0, 0.9, 0.6, 0.4})},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorWeather, 0.15, ss.weather01(weatherLimits{maxWindKmh: 40, minTempC: -5})},
		}
	case "spot-prawn":
		return []speciesFactor{
			{FactorSeasonality, 0.30, seasonality01(monthScores{0, 0.1, 0.1, 0.2, 0.4, 1.0, 1.0, 0.4, 0.2, 0.1, 0.1, 0.1, 0.1})},
			{FactorCurrentFlow, 0.25, ss.currentFlow01(3.0)},
			{FactorTide, 0.20, tide01},
			{FactorWaterTempSp, 0.15, ss.waterTemp01},
			{FactorWeather, 0.10, ss.weather01(weatherLimits{maxWindKmh: spotPrawnWindLimitKmh, maxPrecipMM: 8})},
		}
	default:
		return nil
	}
}
