// Package astro provides the astronomical and tidal support math used by
// the scoring engine: moon phase and illumination, season, solar altitude
// and a slack-tide proximity proxy. Everything here is a pure function of
// its inputs.
package astro

import (
	"math"
	"time"
)

// Synodic month length in days.
const synodicMonth = 29.530588853

// Reference new moon: 2000-01-06 18:14 UTC.
var newMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// MoonPhase returns the moon phase as a fraction in [0, 1), where 0 is new
// moon, 0.5 is full moon and 0.25/0.75 are the quarters.
func MoonPhase(t time.Time) float64 {
	days := t.Sub(newMoonEpoch).Hours() / 24.0
	phase := math.Mod(days/synodicMonth, 1.0)
	if phase < 0 {
		phase += 1.0
	}
	return phase
}

// MoonIllumination returns the illuminated fraction of the moon's disc in
// [0, 1]: 0 at new moon, 1 at full moon.
func MoonIllumination(t time.Time) float64 {
	return (1.0 - math.Cos(2.0*math.Pi*MoonPhase(t))) / 2.0
}

// SpringNeapFactor returns a value in [0, 1] indicating how close the date
// is to a spring tide (1, near new or full moon) versus a neap tide (0,
// near the quarters).
func SpringNeapFactor(t time.Time) float64 {
	// Distance from the nearest syzygy, 0 at new/full, 0.25 at quarters.
	phase := MoonPhase(t)
	d := math.Min(math.Abs(phase), math.Min(math.Abs(phase-0.5), math.Abs(phase-1.0)))
	return 1.0 - d/0.25
}

// Season identifies a meteorological season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// SeasonOf returns the meteorological season for the given time and
// latitude. Southern-hemisphere latitudes get the opposite season.
func SeasonOf(t time.Time, lat float64) Season {
	var s Season
	switch t.Month() {
	case time.March, time.April, time.May:
		s = SeasonSpring
	case time.June, time.July, time.August:
		s = SeasonSummer
	case time.September, time.October, time.November:
		s = SeasonFall
	default:
		s = SeasonWinter
	}
	if lat < 0 {
		switch s {
		case SeasonSpring:
			s = SeasonFall
		case SeasonSummer:
			s = SeasonWinter
		case SeasonFall:
			s = SeasonSpring
		case SeasonWinter:
			s = SeasonSummer
		}
	}
	return s
}

// SolarAltitude returns the sun's altitude above the horizon in degrees
// for the given instant and location. Uses the standard low-precision
// solar position approximation (adequate for scoring, not navigation).
func SolarAltitude(t time.Time, lat, lon float64) float64 {
	utc := t.UTC()
	dayOfYear := float64(utc.YearDay())

	// Solar declination.
	decl := -23.44 * math.Cos(2.0*math.Pi/365.0*(dayOfYear+10.0))

	// Equation of time, minutes.
	b := 2.0 * math.Pi * (dayOfYear - 81.0) / 364.0
	eot := 9.87*math.Sin(2.0*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	// True solar time in minutes.
	clockMinutes := float64(utc.Hour())*60.0 + float64(utc.Minute()) + float64(utc.Second())/60.0
	solarMinutes := clockMinutes + 4.0*lon + eot

	// Hour angle: 0 at solar noon, ±180 at midnight.
	hourAngle := solarMinutes/4.0 - 180.0

	latRad := lat * math.Pi / 180.0
	declRad := decl * math.Pi / 180.0
	haRad := hourAngle * math.Pi / 180.0

	sinAlt := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	return math.Asin(math.Max(-1.0, math.Min(1.0, sinAlt))) * 180.0 / math.Pi
}

// SlackProximity returns a value in [0, 1] approximating how close the
// current is to slack water. minutesToTurn is the time until the next tide
// direction change; changeRate is the water-level change rate in m/hr.
// Slack occurs around tide turns, so proximity is highest when the turn is
// near and the level is barely moving.
func SlackProximity(minutesToTurn, changeRate float64) float64 {
	m := math.Abs(minutesToTurn)
	var timeFactor float64
	switch {
	case m <= 30:
		timeFactor = 1.0
	case m <= 90:
		timeFactor = 1.0 - (m-30.0)/60.0
	default:
		timeFactor = 0.0
	}

	rateFactor := 1.0 - math.Min(math.Abs(changeRate)/0.5, 1.0)

	// Weight the timing signal over the rate signal.
	return 0.7*timeFactor + 0.3*rateFactor
}
