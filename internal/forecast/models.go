// Package forecast turns scored 15-minute samples into daily outlooks
// with two-hour fishing windows.
package forecast

import (
	"github.com/fishcast/fishcast/internal/scoring"
	"github.com/fishcast/fishcast/internal/weather"
)

// PeriodForecast is one two-hour window of a forecast day, scored on the
// averaged conditions across its samples.
type PeriodForecast struct {
	// Start and End bound the window in epoch seconds, half-open.
	Start int64
	End   int64

	// Score is the window's overall fishing score in [0, 10].
	Score float64

	// Breakdown holds the per-factor sub-scores behind the total.
	Breakdown scoring.FactorBreakdown

	// IsSafe is false when a species safety cutoff tripped anywhere in
	// the window. Advisory: the score is still real.
	IsSafe         bool
	SafetyWarnings []string

	// SampleCount is how many 15-minute samples backed this window.
	SampleCount int
}

// SampleScore is one 15-minute sample of a forecast day scored on its
// own, for chart coloring at full resolution.
type SampleScore struct {
	// Timestamp of the sample, epoch seconds.
	Timestamp int64

	// Score is the sample's fishing score in [0, 10].
	Score float64

	// Breakdown holds the per-factor sub-scores behind the total.
	Breakdown scoring.FactorBreakdown

	// IsSafe is false when a safety cutoff tripped at this instant.
	IsSafe         bool
	SafetyWarnings []string
}

// DailyForecast is one future calendar day of two-hour windows.
type DailyForecast struct {
	// Date is the local calendar day, YYYY-MM-DD.
	Date string

	// Sunrise and Sunset for the day, epoch seconds.
	Sunrise int64
	Sunset  int64

	// Samples are the day's individually scored 15-minute ticks in
	// ascending time order, one per sample the provider delivered.
	Samples []SampleScore

	// Periods are the day's scored windows in chronological order.
	// Windows with too few samples are omitted.
	Periods []PeriodForecast

	// BestWindow is the highest-scoring period; ties go to the earliest
	// start. Nil when the day has no scoreable periods.
	BestWindow *PeriodForecast

	// AverageScore is the mean of the period scores.
	AverageScore float64
}

// CurrentConditions is a single-sample score for "how is it right now".
type CurrentConditions struct {
	// Timestamp of the underlying sample, epoch seconds.
	Timestamp int64

	Score scoring.FishingScore

	// Strategy names the scoring model that produced the score.
	Strategy string

	// Sample is the raw conditions the score was computed from.
	Sample weather.Sample
}
