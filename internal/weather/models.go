// Package weather provides marine weather forecast data for scoring.
package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrNoDataForLocation   = errors.New("no weather data for location")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// Sample represents environmental conditions for one 15-minute interval.
// Fields are in the canonical units the scoring engine expects; provider
// adapters apply unit conversion and neutral defaults before constructing
// a Sample, so a Sample is always fully populated apart from the optional
// marine fields.
type Sample struct {
	// Timestamp is the interval start in epoch seconds.
	Timestamp int64

	// Temperature in Celsius.
	Temperature float64

	// ApparentTemperature ("feels like") in Celsius.
	ApparentTemperature float64

	// Humidity percentage (0-100).
	Humidity float64

	// DewPoint in Celsius.
	DewPoint float64

	// Pressure at mean sea level in hPa.
	Pressure float64

	// Precipitation rate in mm/h.
	Precipitation float64

	// CloudCover percentage (0-100).
	CloudCover float64

	// Wind data in km/h, direction in degrees (0=N, 90=E).
	WindSpeed     float64
	WindDirection float64
	WindGusts     float64

	// Visibility in meters.
	Visibility float64

	// SunshineDuration in seconds within the 15-minute interval (max 900).
	SunshineDuration float64

	// LightningPotential as CAPE-derived J/kg.
	LightningPotential float64

	// CAPE is convective available potential energy in J/kg.
	CAPE float64

	// WaveHeight in meters (nil if no marine data for the location).
	WaveHeight *float64
}

// Time returns the sample timestamp as a time.Time.
func (s *Sample) Time() time.Time {
	return time.Unix(s.Timestamp, 0)
}

// DaySun holds sunrise and sunset for one calendar day, epoch seconds.
type DaySun struct {
	Date    string // YYYY-MM-DD in the forecast's local timezone
	Sunrise int64
	Sunset  int64
}

// Forecast is an ordered series of 15-minute samples plus per-day sun
// times, as returned by a weather provider.
type Forecast struct {
	Lat float64
	Lon float64

	// Timezone is the IANA timezone name the provider resolved for the
	// location. Calendar-day bucketing uses this zone.
	Timezone string

	// Samples are ordered by ascending timestamp at fixed 15-minute cadence.
	Samples []Sample

	// Sun holds sunrise/sunset per forecast day, ordered by date.
	Sun []DaySun

	// FetchedAt is when the forecast was retrieved from the provider.
	FetchedAt time.Time
}

// SunForDate returns sunrise/sunset for the given local date, or false if
// the forecast does not cover it.
func (f *Forecast) SunForDate(date string) (DaySun, bool) {
	for _, d := range f.Sun {
		if d.Date == date {
			return d, true
		}
	}
	return DaySun{}, false
}
