// Package units provides unit conversions and neutral defaults for
// environmental measurements. Conversions are pure and never fail;
// missing inputs are substituted with documented "moderate" constants
// rather than zeros so that downstream scorers see plausible values.
package units

// Conversion factors between the units providers report and the
// canonical units the scoring engine expects.
const (
	kmhPerMs     = 3.6
	knotsPerMs   = 1.9438444924406046
	feetPerMeter = 3.280839895013123
)

// Neutral defaults applied when a provider omits a field. These mirror
// "unknown means moderate" semantics: a missing wind reading scores as a
// light breeze, not a dead calm.
const (
	DefaultWindSpeedKmh    = 10.0
	DefaultPressureHpa     = 1013.0
	DefaultCloudCoverPct   = 50.0
	DefaultHumidityPct     = 60.0
	DefaultVisibilityM     = 10000.0
	DefaultTemperatureC    = 12.0
	DefaultPrecipitationMM = 0.0
	DefaultCAPE            = 0.0
)

// KmhToMs converts kilometers per hour to meters per second.
func KmhToMs(kmh float64) float64 { return kmh / kmhPerMs }

// MsToKmh converts meters per second to kilometers per hour.
func MsToKmh(ms float64) float64 { return ms * kmhPerMs }

// MsToKnots converts meters per second to knots.
func MsToKnots(ms float64) float64 { return ms * knotsPerMs }

// KnotsToMs converts knots to meters per second.
func KnotsToMs(kn float64) float64 { return kn / knotsPerMs }

// KmhToKnots converts kilometers per hour to knots.
func KmhToKnots(kmh float64) float64 { return MsToKnots(KmhToMs(kmh)) }

// KnotsToKmh converts knots to kilometers per hour.
func KnotsToKmh(kn float64) float64 { return MsToKmh(KnotsToMs(kn)) }

// MetersToFeet converts meters to feet.
func MetersToFeet(m float64) float64 { return m * feetPerMeter }

// FeetToMeters converts feet to meters.
func FeetToMeters(ft float64) float64 { return ft / feetPerMeter }

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9.0/5.0 + 32.0 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32.0) * 5.0 / 9.0 }

// OrDefault returns v if it is non-nil, otherwise the given default.
func OrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
