// Package spots provides saved fishing spot management.
package spots

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrSpotNotFound = errors.New("spot not found")
)

// Spot represents a saved fishing spot.
type Spot struct {
	ID       string
	Name     string
	Location Point

	// StationID is the NOAA tide station used for tide-aware scoring.
	// Nil means the spot scores without tide factors.
	StationID *string

	// DefaultSpecies pre-selects a species for forecasts at this spot.
	DefaultSpecies *string

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Point represents a geographic point.
type Point struct {
	Lat float64
	Lon float64
}
