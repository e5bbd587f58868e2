package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fishcast/fishcast/internal/tide"
	"github.com/fishcast/fishcast/internal/weather"
)

func calmInput(t time.Time) Input {
	ts := t.Unix()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	wt := 10.0
	return Input{
		Sample: weather.Sample{
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
		},
		Tide: &tide.Snapshot{
			TidalRange:       2.8,
			IsRising:         true,
			ChangeRate:       0.5,
			TimeToNextTide:   120,
			CurrentSpeed:     1.5,
			WaterTemperature: &wt,
			Predictions: []tide.Prediction{
				{Timestamp: 1000, Height: 1.0},
				{Timestamp: 2000, Height: 1.5},
			},
		},
		Sunrise: day.Add(6 * time.Hour).Unix(),
		Sunset:  day.Add(20 * time.Hour).Unix(),
		Lat:     49.3,
	}
}

func TestWeightTablesSumToOne(t *testing.T) {
	sum := func(w WeightTable) float64 {
		total := 0.0
		for _, v := range w {
			total += v
		}
		return total
	}

	assert.InDelta(t, 1.0, sum(tideAwareWeights), 0.001)
	assert.InDelta(t, 1.0, sum(standardWeights), 0.001)

	for id, ss := range newSpeciesStrategies() {
		assert.InDelta(t, 1.0, sum(ss.Weights()), 0.001, "species %s", id)
	}
}

func TestSpeciesStrategiesCoverCatalog(t *testing.T) {
	strategies := newSpeciesStrategies()
	assert.Len(t, strategies, len(Catalog))
	for _, p := range Catalog {
		ss, ok := strategies[p.ID]
		require.True(t, ok, "no strategy for %s", p.ID)
		assert.NotEmpty(t, ss.factors, "species %s", p.ID)
		assert.Equal(t, "species/"+p.ID+"/v2", ss.Name())
	}
}

func TestSpeciesScoreMatchesBreakdown(t *testing.T) {
	in := calmInput(time.Date(2025, time.August, 12, 6, 30, 0, 0, time.UTC))
	for id, ss := range newSpeciesStrategies() {
		got := ss.Score(in)
		want := 0.0
		for _, f := range ss.factors {
			want += got.Breakdown[f.name] / 10 * f.weight
		}
		assert.InDelta(t, clamp(want*10, 0, 10), got.Total, 0.001, "species %s", id)
		assert.GreaterOrEqual(t, got.Total, 0.0, "species %s", id)
		assert.LessOrEqual(t, got.Total, 10.0, "species %s", id)
	}
}

func TestChinookCurrentCutoff(t *testing.T) {
	ss := newSpeciesStrategies()["chinook-salmon"]
	in := calmInput(time.Date(2025, time.August, 12, 6, 30, 0, 0, time.UTC))
	in.Tide.CurrentSpeed = 5.0

	got := ss.Score(in)

	assert.Zero(t, got.Breakdown[FactorCurrentFlow])
	assert.False(t, got.IsSafe)
	require.Len(t, got.SafetyWarnings, 1)
	assert.Contains(t, got.SafetyWarnings[0], "current speed")
	// Advisory only: the remaining factors still produce a usable score.
	assert.Greater(t, got.Total, 0.0)
}

func TestPinkSalmonRunCycle(t *testing.T) {
	ss := newSpeciesStrategies()["pink-salmon"]

	odd := ss.Score(calmInput(time.Date(2025, time.August, 12, 6, 30, 0, 0, time.UTC)))
	even := ss.Score(calmInput(time.Date(2026, time.August, 12, 6, 30, 0, 0, time.UTC)))

	assert.InDelta(t, 10.0, odd.Breakdown[FactorSeasonality], 0.001)
	assert.Zero(t, even.Breakdown[FactorSeasonality])
	assert.True(t, even.IsSafe, "a closed run is not a safety condition")
	assert.Greater(t, odd.Total, even.Total)
}

func TestLingcodSeasonWindow(t *testing.T) {
	ss := newSpeciesStrategies()["lingcod"]

	open := ss.Score(calmInput(time.Date(2025, time.June, 12, 6, 30, 0, 0, time.UTC)))
	closed := ss.Score(calmInput(time.Date(2025, time.December, 12, 6, 30, 0, 0, time.UTC)))

	assert.InDelta(t, 10.0, open.Breakdown[FactorSeasonality], 0.001)
	assert.Zero(t, closed.Breakdown[FactorSeasonality])
	assert.True(t, closed.IsSafe)
}

func TestSpotPrawnWindCutoff(t *testing.T) {
	ss := newSpeciesStrategies()["spot-prawn"]
	in := calmInput(time.Date(2025, time.May, 12, 6, 30, 0, 0, time.UTC))
	in.Sample.WindSpeed = 30 // km/h, past the 15 kn limit

	got := ss.Score(in)

	assert.Zero(t, got.Breakdown[FactorWeather])
	assert.False(t, got.IsSafe)
	require.NotEmpty(t, got.SafetyWarnings)
	assert.Contains(t, got.SafetyWarnings[0], "wind")
	assert.Greater(t, got.Total, 0.0)
}

func TestRockfishWaveCutoff(t *testing.T) {
	ss := newSpeciesStrategies()["rockfish"]
	in := calmInput(time.Date(2025, time.June, 12, 6, 30, 0, 0, time.UTC))
	wave := 1.8
	in.Sample.WaveHeight = &wave

	got := ss.Score(in)

	assert.Zero(t, got.Breakdown[FactorWeather])
	assert.False(t, got.IsSafe)
	assert.Contains(t, got.SafetyWarnings[0], "wave height")
}

func TestHalibutFishesTheSlack(t *testing.T) {
	ss := newSpeciesStrategies()["halibut"]

	slack := calmInput(time.Date(2025, time.May, 12, 6, 30, 0, 0, time.UTC))
	slack.Tide.ChangeRate = 0.05
	slack.Tide.TimeToNextTide = 15
	slack.Tide.CurrentSpeed = 0.3

	running := calmInput(time.Date(2025, time.May, 12, 6, 30, 0, 0, time.UTC))
	running.Tide.ChangeRate = 0.7
	running.Tide.TimeToNextTide = 150
	running.Tide.CurrentSpeed = 2.5

	assert.Greater(t, ss.Score(slack).Total, ss.Score(running).Total)
}

func TestNightBiteFollowsTheMoon(t *testing.T) {
	ss := newSpeciesStrategies()["chinook-salmon"]

	// Same clock time in the same month: one under a full moon, one two
	// weeks later in the dark.
	full := ss.Score(calmInput(time.Date(2025, time.August, 9, 3, 0, 0, 0, time.UTC)))
	dark := ss.Score(calmInput(time.Date(2025, time.August, 23, 3, 0, 0, 0, time.UTC)))

	assert.Greater(t, full.Breakdown[FactorTimeOfDay], dark.Breakdown[FactorTimeOfDay])
	assert.Equal(t, full.Breakdown[FactorTide], dark.Breakdown[FactorTide])
	assert.Equal(t, full.Breakdown[FactorSeasonality], dark.Breakdown[FactorSeasonality])
}

func TestLowSunStretchesTheBite(t *testing.T) {
	ss := newSpeciesStrategies()["chinook-salmon"]

	// Mid-morning UTC: over the meridian the sun is high, far west it has
	// barely cleared the horizon.
	at := time.Date(2025, time.August, 12, 10, 0, 0, 0, time.UTC)
	high := calmInput(at)
	low := calmInput(at)
	low.Lon = -70

	assert.Greater(t, ss.Score(low).Breakdown[FactorTimeOfDay],
		ss.Score(high).Breakdown[FactorTimeOfDay])
}

func TestSpeciesMissingTideData(t *testing.T) {
	in := calmInput(time.Date(2025, time.August, 12, 6, 30, 0, 0, time.UTC))
	in.Tide = nil

	for id, ss := range newSpeciesStrategies() {
		got := ss.Score(in)
		assert.True(t, got.IsSafe, "species %s", id)
		assert.Greater(t, got.Total, 0.0, "species %s", id)
		assert.LessOrEqual(t, got.Total, 10.0, "species %s", id)
	}
}

func TestRegistrySelection(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "general/v2", r.StrategyFor(nil).Name())
	assert.Equal(t, "species/chinook-salmon/v2",
		r.StrategyFor(ResolveSpecies("chinook")).Name())

	in := calmInput(time.Date(2025, time.August, 12, 6, 30, 0, 0, time.UTC))

	byQuery := r.Score("chinook", in)
	direct := r.StrategyFor(ResolveSpecies("chinook-salmon")).Score(in)
	assert.Equal(t, direct, byQuery)

	// Unknown species falls back to the general model.
	unknown := r.Score("tarpon", in)
	assert.Contains(t, unknown.Breakdown, FactorPressure)
	assert.Contains(t, unknown.Breakdown, FactorComfort)
}
