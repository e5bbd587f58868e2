package models

// PeriodForecast is one two-hour window of a forecast day.
type PeriodForecast struct {
	Start          Timestamp          `json:"start"`
	End            Timestamp          `json:"end"`
	Score          float64            `json:"score"`
	Breakdown      map[string]float64 `json:"breakdown"`
	IsSafe         bool               `json:"isSafe"`
	SafetyWarnings []string           `json:"safetyWarnings,omitempty"`
	SampleCount    int                `json:"sampleCount"`
}

// SampleScore is one individually scored 15-minute sample.
type SampleScore struct {
	Time           Timestamp          `json:"time"`
	Score          float64            `json:"score"`
	Breakdown      map[string]float64 `json:"breakdown"`
	IsSafe         bool               `json:"isSafe"`
	SafetyWarnings []string           `json:"safetyWarnings,omitempty"`
}

// DailyForecast is one future day of scored windows.
type DailyForecast struct {
	Date         string           `json:"date"`
	Sunrise      Timestamp        `json:"sunrise"`
	Sunset       Timestamp        `json:"sunset"`
	Samples      []SampleScore    `json:"samples"`
	Periods      []PeriodForecast `json:"periods"`
	BestWindow   *PeriodForecast  `json:"bestWindow,omitempty"`
	AverageScore float64          `json:"averageScore"`
}

// ForecastResponse is the response body for the daily forecast endpoint.
type ForecastResponse struct {
	Location Point           `json:"location"`
	Species  *string         `json:"species,omitempty"`
	Days     []DailyForecast `json:"days"`
}

// CurrentScoreResponse is the response body for the current-conditions
// score endpoint.
type CurrentScoreResponse struct {
	Location       Point              `json:"location"`
	Species        *string            `json:"species,omitempty"`
	Time           Timestamp          `json:"time"`
	Score          float64            `json:"score"`
	Breakdown      map[string]float64 `json:"breakdown"`
	IsSafe         bool               `json:"isSafe"`
	SafetyWarnings []string           `json:"safetyWarnings,omitempty"`
	Strategy       string             `json:"strategy"`
}
