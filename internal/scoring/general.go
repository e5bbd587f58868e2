package scoring

import (
	"github.com/fishcast/fishcast/internal/astro"
	"github.com/fishcast/fishcast/internal/units"
)

// WeightTable maps factor names to weights. Each table sums to 1.0.
type WeightTable map[string]float64

// tideAwareWeights applies when a populated tide snapshot is available.
var tideAwareWeights = WeightTable{
	FactorPressure:      0.13,
	FactorWind:          0.12,
	FactorTemperature:   0.09,
	FactorWaterTemp:     0.05,
	FactorPrecipitation: 0.10,
	FactorTide:          0.08,
	FactorCurrentSpeed:  0.04,
	FactorCurrentDir:    0.02,
	FactorCloudCover:    0.06,
	FactorVisibility:    0.06,
	FactorSunshine:      0.05,
	FactorLightning:     0.05,
	FactorStability:     0.04,
	FactorComfort:       0.04,
	FactorTimeOfDay:     0.04,
	FactorSpecies:       0.03,
}

// standardWeights applies when no usable tide data exists. The three
// water factors carry zero weight and the freed share moves into the
// atmospheric factors and the species factor.
var standardWeights = WeightTable{
	FactorPressure:      0.14,
	FactorWind:          0.13,
	FactorTemperature:   0.11,
	FactorWaterTemp:     0.00,
	FactorPrecipitation: 0.11,
	FactorTide:          0.11,
	FactorCurrentSpeed:  0.00,
	FactorCurrentDir:    0.00,
	FactorCloudCover:    0.06,
	FactorVisibility:    0.06,
	FactorSunshine:      0.05,
	FactorLightning:     0.05,
	FactorStability:     0.04,
	FactorComfort:       0.04,
	FactorTimeOfDay:     0.04,
	FactorSpecies:       0.06,
}

// adjustedCeiling bounds species-amplified factor scores. Deliberately
// above 10: a species in its element can over-contribute on one factor
// while the final total stays clamped to [0, 10].
const adjustedCeiling = 12.0

// ScoreGeneral runs the general weighted model over one sample. The weight
// table is selected by whether the tide snapshot carries a populated
// water-level series; a species profile, when present, tilts individual
// factor scores before weighting.
func ScoreGeneral(in Input) FishingScore {
	s := in.Sample
	hasTide := in.Tide.HasWaterLevelSeries()

	breakdown := FactorBreakdown{
		FactorPressure:      PressureScore(s.Pressure),
		FactorWind:          WindScore(units.KmhToMs(s.WindSpeed), units.KmhToMs(s.WindGusts), s.WindDirection),
		FactorTemperature:   TemperatureScore(s.Temperature),
		FactorPrecipitation: PrecipitationScoreFromMM(s.Precipitation),
		FactorTide:          TideScore(in.Tide, s.Time()),
		FactorCloudCover:    CloudCoverScore(s.CloudCover),
		FactorVisibility:    VisibilityScore(s.Visibility),
		FactorSunshine:      SunshineScore(s.SunshineDuration),
		FactorLightning:     LightningRiskScore(s.LightningPotential),
		FactorStability:     StabilityScore(s.CAPE),
		FactorComfort:       ComfortScore(s.ApparentTemperature, s.Humidity, s.DewPoint),
		FactorTimeOfDay:     TimeOfDayScore(s.Timestamp, in.Sunrise, in.Sunset, in.Location),
		FactorSpecies:       neutralScore,
	}

	if hasTide {
		breakdown[FactorWaterTemp] = WaterTemperatureScore(
			units.OrDefault(in.Tide.WaterTemperature, 10), in.Profile)
		breakdown[FactorCurrentSpeed] = CurrentSpeedScore(in.Tide.CurrentSpeed, in.Profile)
		breakdown[FactorCurrentDir] = CurrentDirectionScore(in.Tide.IsRising, in.Profile)
	} else {
		breakdown[FactorWaterTemp] = neutralScore
		breakdown[FactorCurrentSpeed] = neutralScore
		breakdown[FactorCurrentDir] = neutralScore
	}

	if in.Profile != nil {
		applySpeciesAdjustments(breakdown, in)
	}

	weights := standardWeights
	if hasTide {
		weights = tideAwareWeights
	}

	total := 0.0
	for factor, weight := range weights {
		total += breakdown[factor] * weight
	}

	return FishingScore{
		Total:     clamp(total, 0, 10),
		Breakdown: breakdown,
		IsSafe:    true,
	}
}

// applySpeciesAdjustments tilts general-model factor scores toward the
// species' preferences. Each adjusted factor is clamped to the amplified
// ceiling, not to 10.
func applySpeciesAdjustments(breakdown FactorBreakdown, in Input) {
	p := in.Profile
	s := in.Sample

	// Air temperature banding: in the optimal band the signal is amplified,
	// outside the tolerable band it is heavily discounted.
	switch {
	case p.OptimalTempRange.Contains(s.Temperature):
		breakdown[FactorTemperature] *= 1.2
	case p.TolerableTempRange.Contains(s.Temperature):
		// tolerable: unchanged
	default:
		breakdown[FactorTemperature] *= 0.6
	}

	breakdown[FactorPressure] *= p.PressureSensitivity
	breakdown[FactorWind] *= p.WindTolerance
	breakdown[FactorTide] *= p.TideImportance
	breakdown[FactorPrecipitation] *= p.PrecipitationTolerance

	breakdown[FactorTimeOfDay] *= activityMultiplier(p, s.Timestamp, in.Sunrise, in.Sunset)

	// Low-light feeders get a bump on dim days.
	if s.CloudCover >= 50 {
		breakdown[FactorCloudCover] *= p.LowLightPreference
		breakdown[FactorSunshine] *= p.LowLightPreference
	}

	season := astro.SeasonOf(s.Time(), in.Lat)
	breakdown[FactorSpecies] = 5.0 * p.SeasonalPeaks[season]

	for _, factor := range []string{
		FactorTemperature, FactorPressure, FactorWind, FactorTide,
		FactorPrecipitation, FactorTimeOfDay, FactorCloudCover,
		FactorSunshine, FactorSpecies,
	} {
		breakdown[factor] = clamp(breakdown[factor], 0, adjustedCeiling)
	}
}

// activityMultiplier picks the profile's period-of-day multiplier: dawn
// and dusk by ±1h proximity to sunrise/sunset, otherwise midday between
// them and night outside.
func activityMultiplier(p *SpeciesProfile, ts, sunrise, sunset int64) float64 {
	const hour = 3600
	switch {
	case ts >= sunrise-hour && ts <= sunrise+hour:
		return p.DawnActivity
	case ts >= sunset-hour && ts <= sunset+hour:
		return p.DuskActivity
	case ts > sunrise && ts < sunset:
		return p.MiddayActivity
	default:
		return p.NightActivity
	}
}
