// Package tide provides tidal conditions for scoring.
package tide

import (
	"errors"
	"time"
)

// Tide errors.
var (
	ErrProviderUnavailable = errors.New("tide provider unavailable")
	ErrNoStationData       = errors.New("no tide data for station")
)

// ExtremeType identifies a high or low tide.
type ExtremeType string

const (
	ExtremeHigh ExtremeType = "H"
	ExtremeLow  ExtremeType = "L"
)

// Prediction is a predicted water level at a specific time.
type Prediction struct {
	Timestamp int64   // epoch seconds
	Height    float64 // meters above datum
}

// Extreme is a predicted high or low tide.
type Extreme struct {
	Timestamp int64
	Height    float64
	Type      ExtremeType
}

// Snapshot represents tidal conditions at one instant. The scoring engine
// treats it as constant across a scoring call; interpolating between
// snapshots is the caller's responsibility.
type Snapshot struct {
	// CurrentHeight is the water level in meters above datum.
	CurrentHeight float64

	// TidalRange is the height difference between the surrounding
	// low and high tides, in meters.
	TidalRange float64

	// IsRising reports whether the tide is flooding.
	IsRising bool

	// ChangeRate is the water-level change rate in m/hr (signed).
	ChangeRate float64

	// TimeToNextTide is minutes until the next high or low.
	TimeToNextTide float64

	// CurrentSpeed is the estimated tidal current speed in knots
	// (magnitude only).
	CurrentSpeed float64

	// CurrentDirection is the current set in degrees true.
	CurrentDirection float64

	// WaterTemperature in Celsius (nil when the station has no sensor).
	WaterTemperature *float64

	// Predictions is the water-level series the snapshot was derived
	// from. Weight-table selection checks this series, not the snapshot
	// reference: a snapshot without predictions counts as "no tide data".
	Predictions []Prediction

	// Extremes are the surrounding highs and lows.
	Extremes []Extreme
}

// HasWaterLevelSeries reports whether the snapshot carries a populated
// water-level series. A nil snapshot or one with no predictions is treated
// as "no tide data" everywhere that selects between tide-aware and
// tide-unaware scoring.
func (s *Snapshot) HasWaterLevelSeries() bool {
	return s != nil && len(s.Predictions) > 0
}

// Station identifies a tide station.
type Station struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64

	// FloodDirection is the typical flood current set in degrees true,
	// used when deriving snapshot current direction.
	FloodDirection float64
}

// StationData is the raw per-station dataset a provider returns.
type StationData struct {
	Station          Station
	Predictions      []Prediction
	Extremes         []Extreme
	WaterTemperature *float64
	FetchedAt        time.Time
}
