package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

// mildSample is a pleasant spring morning: near-optimal pressure and
// temperature, light wind, broken cloud.
func mildSample(ts int64) weather.Sample {
	return weather.Sample{
		Timestamp:           ts,
		Temperature:         12,
		ApparentTemperature: 12,
		Humidity:            55,
		DewPoint:            6,
		Pressure:            1017,
		Precipitation:       0,
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

// stormSample is a gale: deep low, driving rain, high CAPE.
func stormSample(ts int64) weather.Sample {
	return weather.Sample{
		Timestamp:           ts,
		Temperature:         4,
		ApparentTemperature: -2,
		Humidity:            95,
		DewPoint:            3,
		Pressure:            985,
		Precipitation:       8,
		CloudCover:          100,
		WindSpeed:           55,
		WindDirection:       135,
		WindGusts:           80,
		Visibility:          800,
		SunshineDuration:    0,
		LightningPotential:  1800,
		CAPE:                2400,
	}
}

func floodSnapshot() *tide.Snapshot {
	wt := 10.0
	return &tide.Snapshot{
		CurrentHeight:    2.1,
		TidalRange:       2.8,
		IsRising:         true,
		ChangeRate:       0.5,
		TimeToNextTide:   120,
		CurrentSpeed:     1.5,
		CurrentDirection: 20,
		WaterTemperature: &wt,
		Predictions: []tide.Prediction{
			{Timestamp: 1000, Height: 1.0},
			{Timestamp: 2000, Height: 1.5},
		},
	}
}

func TestScoreGeneral(t *testing.T) {
	day := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	sunrise := day.Add(6 * time.Hour).Unix()
	sunset := day.Add(20 * time.Hour).Unix()
	ts := sunrise + 600

	t.Run("good conditions beat bad conditions", func(t *testing.T) {
		good := scoring.ScoreGeneral(scoring.Input{
			Sample: mildSample(ts), Tide: floodSnapshot(),
			Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
		})
		bad := scoring.ScoreGeneral(scoring.Input{
			Sample: stormSample(ts), Tide: floodSnapshot(),
			Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
		})

		assert.Greater(t, good.Total, 8.0)
		assert.Less(t, bad.Total, 5.5)
		assert.Greater(t, good.Total, bad.Total+3)
		assert.True(t, good.IsSafe)
		assert.True(t, bad.IsSafe, "general model never flags unsafe")
	})

	t.Run("deterministic", func(t *testing.T) {
		in := scoring.Input{
			Sample: mildSample(ts), Tide: floodSnapshot(),
			Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
		}
		first := scoring.ScoreGeneral(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, scoring.ScoreGeneral(in))
		}
	})

	t.Run("total stays in bounds", func(t *testing.T) {
		for _, s := range []weather.Sample{mildSample(ts), stormSample(ts)} {
			for _, snap := range []*tide.Snapshot{nil, floodSnapshot()} {
				got := scoring.ScoreGeneral(scoring.Input{
					Sample: s, Tide: snap,
					Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
				})
				assert.GreaterOrEqual(t, got.Total, 0.0)
				assert.LessOrEqual(t, got.Total, 10.0)
			}
		}
	})

	t.Run("breakdown always carries the full factor set", func(t *testing.T) {
		got := scoring.ScoreGeneral(scoring.Input{
			Sample: mildSample(ts), Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
		})
		for _, factor := range []string{
			scoring.FactorPressure, scoring.FactorWind, scoring.FactorTemperature,
			scoring.FactorWaterTemp, scoring.FactorPrecipitation, scoring.FactorTide,
			scoring.FactorCurrentSpeed, scoring.FactorCurrentDir, scoring.FactorCloudCover,
			scoring.FactorVisibility, scoring.FactorSunshine, scoring.FactorLightning,
			scoring.FactorStability, scoring.FactorComfort, scoring.FactorTimeOfDay,
			scoring.FactorSpecies,
		} {
			assert.Contains(t, got.Breakdown, factor)
		}
	})
}

func TestScoreGeneralTideSelection(t *testing.T) {
	day := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	sunrise := day.Add(6 * time.Hour).Unix()
	sunset := day.Add(20 * time.Hour).Unix()
	in := scoring.Input{
		Sample: mildSample(sunrise + 600), Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
	}

	t.Run("missing snapshot neutralizes the water factors", func(t *testing.T) {
		got := scoring.ScoreGeneral(in)
		assert.Equal(t, 5.0, got.Breakdown[scoring.FactorWaterTemp])
		assert.Equal(t, 5.0, got.Breakdown[scoring.FactorCurrentSpeed])
		assert.Equal(t, 5.0, got.Breakdown[scoring.FactorCurrentDir])
		assert.Equal(t, 5.0, got.Breakdown[scoring.FactorTide])
	})

	t.Run("empty prediction series behaves like no snapshot", func(t *testing.T) {
		withEmpty := in
		withEmpty.Tide = &tide.Snapshot{CurrentSpeed: 1.5, TidalRange: 2.8}
		assert.Equal(t, scoring.ScoreGeneral(in), scoring.ScoreGeneral(withEmpty))
	})

	t.Run("populated snapshot engages the water factors", func(t *testing.T) {
		withTide := in
		withTide.Tide = floodSnapshot()
		got := scoring.ScoreGeneral(withTide)
		assert.Equal(t, 10.0, got.Breakdown[scoring.FactorWaterTemp])
		assert.Equal(t, 10.0, got.Breakdown[scoring.FactorCurrentSpeed])
		assert.Equal(t, 7.5, got.Breakdown[scoring.FactorCurrentDir])
		assert.Equal(t, 10.0, got.Breakdown[scoring.FactorTide])
	})
}

func TestScoreGeneralSpeciesAdjustments(t *testing.T) {
	day := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	sunrise := day.Add(6 * time.Hour).Unix()
	sunset := day.Add(20 * time.Hour).Unix()

	base := scoring.Input{
		Sample: mildSample(sunrise + 600), Tide: floodSnapshot(),
		Sunrise: sunrise, Sunset: sunset, Lat: 49.3,
	}

	plain := scoring.ScoreGeneral(base)

	withProfile := base
	withProfile.Profile = scoring.ResolveSpecies("chinook-salmon")
	require.NotNil(t, withProfile.Profile)
	adjusted := scoring.ScoreGeneral(withProfile)

	assert.NotEqual(t, plain.Total, adjusted.Total)
	// 12°C is inside chinook's optimal air band at a dawn flood: the
	// profile amplifies rather than discounts.
	assert.Greater(t, adjusted.Breakdown[scoring.FactorTemperature],
		plain.Breakdown[scoring.FactorTemperature])
	assert.Greater(t, adjusted.Breakdown[scoring.FactorTimeOfDay],
		plain.Breakdown[scoring.FactorTimeOfDay])

	// Amplified factors may exceed 10 but never the adjusted ceiling, and
	// the total still lands inside [0, 10].
	for factor, v := range adjusted.Breakdown {
		assert.LessOrEqual(t, v, 12.0, factor)
	}
	assert.LessOrEqual(t, adjusted.Total, 10.0)

	// Spring 2026 off-peak: the species factor reflects the seasonal peak.
	assert.InDelta(t, 5.0*0.8, adjusted.Breakdown[scoring.FactorSpecies], 0.001)
}
