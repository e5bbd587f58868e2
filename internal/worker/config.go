// Package worker provides background forecast cache pre-warming for FishCast.
package worker

import (
	"time"
)

// RefreshTarget represents a fishing area to pre-warm.
type RefreshTarget struct {
	// Name is the human-readable name of the area.
	Name string

	// StationID is the NOAA CO-OPS station covering the area, empty when
	// the area has no usable tide station.
	StationID string

	// Points are the lat/lon coordinates to refresh.
	// Typically popular launch points or banks within the area.
	Points []Point

	// Priority determines refresh order (lower = higher priority).
	Priority int
}

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the forecast refresh job.
type RefreshConfig struct {
	// Targets are the fishing areas to refresh.
	// If empty, uses DefaultRefreshTargets.
	Targets []RefreshTarget

	// Concurrency is the number of concurrent refresh operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each refresh operation.
	// Default: 30 seconds
	Timeout time.Duration

	// ForecastDays is the weather horizon to pre-warm.
	// Default: 7
	ForecastDays int

	// RefreshWeather enables weather forecast refresh.
	// Default: true
	RefreshWeather bool

	// RefreshTides enables tide prediction refresh.
	// Default: true
	RefreshTides bool

	// IncludeSavedSpots adds saved fishing spots to the refresh set.
	// Default: true
	IncludeSavedSpots bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Targets:           DefaultRefreshTargets(),
		Concurrency:       3,
		Timeout:           30 * time.Second,
		ForecastDays:      7,
		RefreshWeather:    true,
		RefreshTides:      true,
		IncludeSavedSpots: true,
	}
}

// DefaultRefreshTargets returns the default refresh targets for the
// Pacific Northwest. Focuses on the Salish Sea and the outer coast.
func DefaultRefreshTargets() []RefreshTarget {
	return []RefreshTarget{
		{
			Name:      "Central Puget Sound",
			StationID: "9447130", // Seattle
			Priority:  1,
			Points: []Point{
				{Lat: 47.6026, Lon: -122.3393}, // Elliott Bay
				{Lat: 47.5800, Lon: -122.4560}, // Blakely Rock
				{Lat: 47.7237, Lon: -122.4713}, // Jefferson Head
			},
		},
		{
			Name:      "South Sound",
			StationID: "9446484", // Tacoma
			Priority:  1,
			Points: []Point{
				{Lat: 47.2690, Lon: -122.4138}, // Commencement Bay
				{Lat: 47.3304, Lon: -122.5542}, // Point Defiance
			},
		},
		{
			Name:      "Admiralty Inlet",
			StationID: "9444900", // Port Townsend
			Priority:  1,
			Points: []Point{
				{Lat: 48.1129, Lon: -122.7595}, // Point Wilson
				{Lat: 48.1588, Lon: -122.6722}, // Midchannel Bank
			},
		},
		{
			Name:      "San Juan Islands",
			StationID: "9449880", // Friday Harbor
			Priority:  2,
			Points: []Point{
				{Lat: 48.5453, Lon: -123.0129}, // Friday Harbor
				{Lat: 48.4580, Lon: -122.9620}, // Salmon Bank
			},
		},
		{
			Name:      "Strait of Juan de Fuca",
			StationID: "9443090", // Neah Bay
			Priority:  2,
			Points: []Point{
				{Lat: 48.3683, Lon: -124.6118}, // Neah Bay
				{Lat: 48.1637, Lon: -123.4461}, // Ediz Hook
			},
		},
		{
			Name:      "Westport",
			StationID: "9441102", // Westport
			Priority:  3,
			Points: []Point{
				{Lat: 46.9043, Lon: -124.1051}, // Grays Harbor entrance
			},
		},
		{
			Name:      "Columbia River Mouth",
			StationID: "9439040", // Astoria
			Priority:  3,
			Points: []Point{
				{Lat: 46.2467, Lon: -124.0594}, // Buoy 10
			},
		},
	}
}

// TotalPoints returns the total number of points to refresh,
// not counting saved spots.
func (c RefreshConfig) TotalPoints() int {
	total := 0
	for _, target := range c.Targets {
		total += len(target.Points)
	}
	return total
}
