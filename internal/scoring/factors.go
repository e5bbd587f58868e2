package scoring

import (
	"math"
	"time"

	"github.com/fishcast/fishcast/internal/astro"
	"github.com/fishcast/fishcast/internal/tide"
)

// neutralScore is the sub-score used when a measurement is unavailable.
const neutralScore = 5.0

// optimalPressure is the barometric sweet spot in hPa.
const optimalPressure = 1017.5

// PressureScore maps barometric pressure (hPa) to [0, 10]. Stable
// pressure near 1017.5 scores best; deep lows and strong highs both put
// fish off the bite.
func PressureScore(hPa float64) float64 {
	dev := math.Abs(hPa - optimalPressure)
	switch {
	case dev <= 2.5:
		return 10
	case dev <= 5:
		return 10 - (dev-2.5)*1.6
	case dev <= 10:
		return 8 - (dev-5)*1.2
	case dev <= 20:
		return 2 - (dev-10)*0.1
	default:
		return 1
	}
}

// WindScore maps wind speed, gusts (both m/s) and direction (degrees) to
// [0, 10]. Effective wind is the greater of sustained speed and 70% of
// gusts; gusty conditions take an extra penalty, and direction nudges the
// score by up to 5%.
func WindScore(speedMs, gustsMs, directionDeg float64) float64 {
	effective := math.Max(speedMs, 0.7*gustsMs)
	if effective <= 0 {
		return 10
	}

	var base float64
	switch {
	case effective < 2:
		base = 10
	case effective < 5:
		base = 8.5
	case effective < 8:
		base = 7
	case effective < 12:
		base = 5
	case effective < 16:
		base = 3
	case effective < 20:
		base = 1.5
	default:
		base = 0.5
	}

	// Gust-ratio penalty: unstable wind is worse than steady wind of the
	// same strength.
	if speedMs > 0 {
		ratio := gustsMs / speedMs
		switch {
		case ratio > 3:
			base *= 0.7
		case ratio > 2:
			base *= 0.8
		case ratio > 1.5:
			base *= 0.9
		}
	}

	// Small direction adjustment: westerly winds get a bonus, easterly a
	// penalty ("wind from the east, fish bite the least").
	if directionDeg >= 225 && directionDeg <= 315 {
		base *= 1.05
	} else if directionDeg >= 45 && directionDeg <= 135 {
		base *= 0.95
	}

	return clamp(base, 0, 10)
}

// TemperatureScore maps air temperature (°C) to [0, 10]: 10-14°C is the
// optimal band with symmetric falloff to near zero by -2°C and +30°C.
func TemperatureScore(c float64) float64 {
	const optLo, optHi = 10.0, 14.0
	switch {
	case c >= optLo && c <= optHi:
		return 10
	case c < optLo:
		return clamp(10-(optLo-c)*(9.5/12.0), 0.5, 10)
	default:
		return clamp(10-(c-optHi)*(9.5/16.0), 0.5, 10)
	}
}

// PrecipitationScoreFromMM maps precipitation rate (mm/h) to [0, 10].
// Light drizzle barely matters; heavy rain shuts things down.
func PrecipitationScoreFromMM(p float64) float64 {
	switch {
	case p <= 0.1:
		return 10
	case p <= 0.5:
		return 10 - (p-0.1)*5
	case p <= 1:
		return 8 - (p-0.5)*2
	case p <= 2.5:
		return 7 - (p-1)*1.33
	case p <= 5:
		return 5 - (p-2.5)*1.2
	case p <= 10:
		return 2 - (p-5)*0.2
	default:
		return math.Max(0.2, 1-(p-10)*0.05)
	}
}

// CloudCoverScore maps cloud cover (%) to [0, 10]. Broken cloud (30-60%)
// is ideal; clear skies fall off faster than overcast.
func CloudCoverScore(pct float64) float64 {
	switch {
	case pct >= 30 && pct <= 60:
		return 10
	case pct < 30:
		return clamp(10-(30-pct)*0.1, 0, 10)
	default:
		return clamp(10-(pct-60)*0.125, 0, 10)
	}
}

// VisibilityScore maps visibility (meters) to [0, 10].
func VisibilityScore(m float64) float64 {
	switch {
	case m >= 10000:
		return 10
	case m >= 5000:
		return 9
	case m >= 2000:
		return 7
	case m >= 1000:
		return 5
	case m >= 500:
		return 3
	default:
		return 1
	}
}

// SunshineScore maps sunshine duration within a 15-minute sample (seconds,
// max 900) to [0, 10] by percent of the period.
func SunshineScore(seconds float64) float64 {
	pct := seconds / 900.0 * 100.0
	switch {
	case pct >= 75:
		return 10
	case pct >= 50:
		return 9
	case pct >= 25:
		return 7
	case pct >= 10:
		return 6
	default:
		return 5
	}
}

// LightningRiskScore maps lightning potential (CAPE-derived, J/kg) to
// [0, 10]. High CAPE means thunderstorm risk on open water.
func LightningRiskScore(cape float64) float64 {
	switch {
	case cape <= 100:
		return 10
	case cape <= 500:
		return 8
	case cape <= 1000:
		return 6
	case cape <= 2000:
		return 3
	default:
		return 1
	}
}

// StabilityScore maps CAPE (J/kg) to an atmospheric stability score in
// [0, 10]. Gentler bands than lightning risk: instability unsettles fish
// before it makes storms.
func StabilityScore(cape float64) float64 {
	switch {
	case cape <= 500:
		return 10
	case cape <= 1000:
		return 8
	case cape <= 2000:
		return 6
	case cape <= 3000:
		return 4
	default:
		return 2
	}
}

// ComfortScore maps apparent temperature (°C), humidity (%) and dew point
// (°C) to an angler-comfort score in [0, 10].
func ComfortScore(apparentC, humidityPct, dewPointC float64) float64 {
	devFeels := math.Abs(apparentC - 12)
	var base float64
	switch {
	case devFeels <= 3:
		base = 10
	case devFeels <= 6:
		base = 8
	case devFeels <= 10:
		base = 6
	case devFeels <= 15:
		base = 4
	default:
		base = 2
	}

	humidityFactor := 1.0
	switch {
	case humidityPct > 85:
		humidityFactor = 0.7
	case humidityPct > 70:
		humidityFactor = 0.9
	}

	dewFactor := 1.0
	switch {
	case dewPointC > 18:
		dewFactor = 0.6
	case dewPointC > 14:
		dewFactor = 0.8
	case dewPointC > 10:
		dewFactor = 0.9
	}

	return clamp(math.Round(base*humidityFactor*dewFactor), 0, 10)
}

// TimeOfDayScore maps a sample time against sunrise/sunset (all epoch
// seconds) to [0, 10]. The half hour around sunrise and sunset scores 10,
// tapering through ±1.5h; morning (6-9h) and evening (17-20h) carry
// secondary bumps; midday and night are shaped low with cosine falloff,
// never flat. The hour-of-day bumps are evaluated in loc, the forecast
// location's timezone; nil means UTC.
func TimeOfDayScore(ts, sunrise, sunset int64, loc *time.Location) float64 {
	hoursFromSunrise := math.Abs(float64(ts-sunrise)) / 3600.0
	hoursFromSunset := math.Abs(float64(ts-sunset)) / 3600.0
	d := math.Min(hoursFromSunrise, hoursFromSunset)

	if d <= 0.5 {
		return 10
	}
	if d <= 1.5 {
		return 10 - (d-0.5)*2 // 10 → 8 across the taper
	}

	var score float64
	if ts > sunrise && ts < sunset {
		// Daytime trough: lowest at the midpoint of the day.
		progress := float64(ts-sunrise) / float64(sunset-sunrise)
		score = clamp(7-4*math.Cos(math.Pi*(2*progress-1)), 0, 10)
	} else {
		// Night: fades from dusk activity toward the small hours.
		n := math.Min(d, 6)
		score = 1.5 + 2.5*math.Pow(math.Cos(n/6*math.Pi/2), 2)
	}

	// Secondary morning and evening bumps by local hour.
	if loc == nil {
		loc = time.UTC
	}
	lt := time.Unix(ts, 0).In(loc)
	h := float64(lt.Hour()) + float64(lt.Minute())/60.0
	if h >= 6 && h < 9 {
		score += 1.5 * math.Sin(math.Pi*(h-6)/3)
	} else if h >= 17 && h < 20 {
		score += 1.5 * math.Sin(math.Pi*(h-17)/3)
	}

	return clamp(score, 0, 10)
}

// WaterTemperatureScore maps water temperature (°C) to [0, 10]. With no
// species profile a broad coldwater default band applies; a profile
// substitutes the species' own optimal and tolerable ranges.
func WaterTemperatureScore(c float64, profile *SpeciesProfile) float64 {
	opt := Range{Min: 9, Max: 15}
	tol := Range{Min: 5, Max: 19}
	if profile != nil {
		opt = profile.OptimalWaterTempRange
		tol = profile.TolerableWaterTempRange
	}
	return rangeCurve(c, opt, tol)
}

// CurrentSpeedScore maps tidal current speed (knots) to [0, 10]. Some
// moving water beats dead slack, but fast current is hard to fish.
func CurrentSpeedScore(knots float64, profile *SpeciesProfile) float64 {
	opt := Range{Min: 0.5, Max: 2.5}
	if profile != nil {
		opt = profile.OptimalCurrentSpeed
	}

	switch {
	case knots >= opt.Min && knots <= opt.Max:
		return 10
	case knots < opt.Min:
		if opt.Min <= 0 {
			return 10
		}
		return clamp(6+4*(knots/opt.Min), 0, 10)
	default:
		return clamp(10-(knots-opt.Max)*2.5, 0.5, 10)
	}
}

// CurrentDirectionScore maps the current set to [0, 10]. Flood sets score
// higher than ebb: flooding water pushes bait onto structure. Species
// that hunt in strong flow widen the spread.
func CurrentDirectionScore(isRising bool, profile *SpeciesProfile) float64 {
	flood, ebb := 7.5, 6.0
	if profile != nil && profile.CurrentSpeedPreference >= 1.0 {
		flood, ebb = 8.5, 5.5
	}
	if isRising {
		return flood
	}
	return ebb
}

// TideScore maps a tide snapshot to [0, 10] from water movement and tidal
// range. The range component is scaled by the lunar spring/neap cycle at
// the sample instant: spring tides move more water and bait with it. Nil
// snapshots score neutral.
func TideScore(snap *tide.Snapshot, at time.Time) float64 {
	if !snap.HasWaterLevelSeries() {
		return neutralScore
	}

	rate := math.Abs(snap.ChangeRate)
	var movement float64
	switch {
	case rate >= 0.2 && rate <= 0.8:
		movement = 10
	case rate < 0.2:
		movement = 6 + rate*20 // dead slack 6, ramping to 10 at 0.2
	default:
		movement = clamp(10-(rate-0.8)*5, 4, 10)
	}

	var rangeScore float64
	switch {
	case snap.TidalRange <= 0.5:
		rangeScore = 4
	case snap.TidalRange <= 1:
		rangeScore = 7
	case snap.TidalRange <= 3.5:
		rangeScore = 10
	default:
		rangeScore = 8
	}
	rangeScore *= 0.85 + 0.3*astro.SpringNeapFactor(at)

	return clamp(0.6*movement+0.4*rangeScore, 0, 10)
}

// SlackScore maps slack-water proximity to [0, 10] for species fished on
// the change.
func SlackScore(snap *tide.Snapshot) float64 {
	if !snap.HasWaterLevelSeries() {
		return neutralScore
	}
	return clamp(astro.SlackProximity(snap.TimeToNextTide, snap.ChangeRate)*10, 0, 10)
}
