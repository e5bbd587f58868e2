package scoring

import (
	"strings"

	"github.com/fishcast/fishcast/internal/astro"
)

// Range is an inclusive numeric band.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SpeciesProfile is a static record of one species' environmental
// preferences and sensitivity multipliers. Profiles are immutable and
// keyed by a closed catalog of ids.
type SpeciesProfile struct {
	ID   string
	Name string

	OptimalTempRange   Range
	TolerableTempRange Range

	OptimalWaterTempRange   Range
	TolerableWaterTempRange Range

	// Multipliers applied to the matching general-model factor scores.
	PressureSensitivity    float64
	WindTolerance          float64
	TideImportance         float64
	PrecipitationTolerance float64

	// CurrentSpeedPreference scales with how actively the species hunts
	// in moving water (0 = avoids current, 1.5 = seeks strong flow).
	CurrentSpeedPreference float64
	OptimalCurrentSpeed    Range // knots

	// Activity multipliers by period of day.
	DawnActivity   float64
	DuskActivity   float64
	MiddayActivity float64
	NightActivity  float64

	// LowLightPreference scales cloud and sunshine scores under heavy
	// cloud: >1 for species that feed up when the light drops.
	LowLightPreference float64

	// SeasonalPeaks multiply the species factor by season.
	SeasonalPeaks map[astro.Season]float64

	// Aliases are additional accepted ids beyond the catalog key.
	Aliases []string
}

// Catalog is the closed, ordered set of supported species profiles.
// Iteration order matters: fuzzy resolution is first-match-wins.
var Catalog = []*SpeciesProfile{
	{
		ID:   "chinook-salmon",
		Name: "Chinook Salmon",

		OptimalTempRange:        Range{8, 14},
		TolerableTempRange:      Range{4, 18},
		OptimalWaterTempRange:   Range{8, 12},
		TolerableWaterTempRange: Range{5, 16},

		PressureSensitivity:    1.2,
		WindTolerance:          0.9,
		TideImportance:         1.3,
		PrecipitationTolerance: 1.1,
		CurrentSpeedPreference: 1.2,
		OptimalCurrentSpeed:    Range{1.0, 2.5},

		DawnActivity:   1.4,
		DuskActivity:   1.3,
		MiddayActivity: 0.7,
		NightActivity:  0.8,

		LowLightPreference: 1.2,
		SeasonalPeaks:      peaks(0.8, 1.2, 1.0, 0.6),
	},
	{
		ID:   "coho-salmon",
		Name: "Coho Salmon",

		OptimalTempRange:        Range{9, 15},
		TolerableTempRange:      Range{5, 19},
		OptimalWaterTempRange:   Range{9, 13},
		TolerableWaterTempRange: Range{6, 17},

		PressureSensitivity:    1.1,
		WindTolerance:          1.0,
		TideImportance:         1.1,
		PrecipitationTolerance: 1.1,
		CurrentSpeedPreference: 1.0,
		OptimalCurrentSpeed:    Range{0.8, 2.2},

		DawnActivity:   1.4,
		DuskActivity:   1.2,
		MiddayActivity: 0.8,
		NightActivity:  0.7,

		LowLightPreference: 1.2,
		SeasonalPeaks:      peaks(0.5, 0.9, 1.3, 0.4),
	},
	{
		ID:   "chum-salmon",
		Name: "Chum Salmon",

		OptimalTempRange:        Range{7, 13},
		TolerableTempRange:      Range{3, 17},
		OptimalWaterTempRange:   Range{7, 12},
		TolerableWaterTempRange: Range{4, 15},

		PressureSensitivity:    1.0,
		WindTolerance:          1.0,
		TideImportance:         1.2,
		PrecipitationTolerance: 1.2,
		CurrentSpeedPreference: 0.9,
		OptimalCurrentSpeed:    Range{0.5, 2.0},

		DawnActivity:   1.3,
		DuskActivity:   1.2,
		MiddayActivity: 0.8,
		NightActivity:  0.7,

		LowLightPreference: 1.1,
		SeasonalPeaks:      peaks(0.3, 0.5, 1.4, 0.4),
	},
	{
		ID:   "pink-salmon",
		Name: "Pink Salmon",

		OptimalTempRange:        Range{9, 15},
		TolerableTempRange:      Range{5, 19},
		OptimalWaterTempRange:   Range{9, 14},
		TolerableWaterTempRange: Range{6, 17},

		PressureSensitivity:    0.9,
		WindTolerance:          1.0,
		TideImportance:         1.0,
		PrecipitationTolerance: 1.0,
		CurrentSpeedPreference: 0.8,
		OptimalCurrentSpeed:    Range{0.5, 1.8},

		DawnActivity:   1.3,
		DuskActivity:   1.2,
		MiddayActivity: 0.9,
		NightActivity:  0.6,

		LowLightPreference: 1.0,
		SeasonalPeaks:      peaks(0.3, 1.3, 0.8, 0.2),
	},
	{
		ID:   "sockeye-salmon",
		Name: "Sockeye Salmon",

		OptimalTempRange:        Range{8, 14},
		TolerableTempRange:      Range{4, 18},
		OptimalWaterTempRange:   Range{7, 12},
		TolerableWaterTempRange: Range{4, 15},

		PressureSensitivity:    1.0,
		WindTolerance:          0.9,
		TideImportance:         1.1,
		PrecipitationTolerance: 1.0,
		CurrentSpeedPreference: 1.3,
		OptimalCurrentSpeed:    Range{1.2, 2.8},

		DawnActivity:   1.4,
		DuskActivity:   1.2,
		MiddayActivity: 0.7,
		NightActivity:  0.6,

		LowLightPreference: 1.1,
		SeasonalPeaks:      peaks(0.4, 1.4, 0.6, 0.2),
	},
	{
		ID:   "halibut",
		Name: "Pacific Halibut",

		OptimalTempRange:        Range{6, 16},
		TolerableTempRange:      Range{2, 22},
		OptimalWaterTempRange:   Range{5, 11},
		TolerableWaterTempRange: Range{3, 14},

		PressureSensitivity:    1.3,
		WindTolerance:          0.8,
		TideImportance:         1.5,
		PrecipitationTolerance: 1.2,
		CurrentSpeedPreference: 0.6,
		OptimalCurrentSpeed:    Range{0.2, 1.2},

		DawnActivity:   1.1,
		DuskActivity:   1.1,
		MiddayActivity: 1.0,
		NightActivity:  0.8,

		LowLightPreference: 1.0,
		SeasonalPeaks:      peaks(1.3, 1.0, 0.8, 0.4),
	},
	{
		ID:   "lingcod",
		Name: "Lingcod",

		OptimalTempRange:        Range{6, 16},
		TolerableTempRange:      Range{2, 22},
		OptimalWaterTempRange:   Range{6, 12},
		TolerableWaterTempRange: Range{4, 15},

		PressureSensitivity:    1.0,
		WindTolerance:          0.8,
		TideImportance:         1.4,
		PrecipitationTolerance: 1.1,
		CurrentSpeedPreference: 0.7,
		OptimalCurrentSpeed:    Range{0.3, 1.5},

		DawnActivity:   1.2,
		DuskActivity:   1.1,
		MiddayActivity: 1.0,
		NightActivity:  0.7,

		LowLightPreference: 1.0,
		SeasonalPeaks:      peaks(1.2, 1.1, 0.9, 0.0),
	},
	{
		ID:   "rockfish",
		Name: "Rockfish",

		OptimalTempRange:        Range{7, 17},
		TolerableTempRange:      Range{3, 23},
		OptimalWaterTempRange:   Range{7, 13},
		TolerableWaterTempRange: Range{5, 16},

		PressureSensitivity:    0.9,
		WindTolerance:          0.7,
		TideImportance:         1.1,
		PrecipitationTolerance: 1.0,
		CurrentSpeedPreference: 0.6,
		OptimalCurrentSpeed:    Range{0.2, 1.3},

		DawnActivity:   1.2,
		DuskActivity:   1.2,
		MiddayActivity: 0.9,
		NightActivity:  0.7,

		LowLightPreference: 1.1,
		SeasonalPeaks:      peaks(1.0, 1.2, 1.0, 0.6),
	},
	{
		ID:   "crab",
		Name: "Dungeness Crab",

		OptimalTempRange:        Range{5, 20},
		TolerableTempRange:      Range{0, 26},
		OptimalWaterTempRange:   Range{8, 14},
		TolerableWaterTempRange: Range{5, 18},

		PressureSensitivity:    0.7,
		WindTolerance:          0.9,
		TideImportance:         1.3,
		PrecipitationTolerance: 1.3,
		CurrentSpeedPreference: 0.5,
		OptimalCurrentSpeed:    Range{0.1, 1.0},

		DawnActivity:   1.0,
		DuskActivity:   1.1,
		MiddayActivity: 1.0,
		NightActivity:  1.2,

		LowLightPreference: 1.0,
		SeasonalPeaks:      peaks(0.7, 1.3, 1.1, 0.5),
	},
	{
		ID:   "spot-prawn",
		Name: "Spot Prawn",

		OptimalTempRange:        Range{5, 18},
		TolerableTempRange:      Range{0, 24},
		OptimalWaterTempRange:   Range{7, 12},
		TolerableWaterTempRange: Range{4, 15},

		PressureSensitivity:    0.6,
		WindTolerance:          0.6,
		TideImportance:         1.2,
		PrecipitationTolerance: 1.2,
		CurrentSpeedPreference: 0.4,
		OptimalCurrentSpeed:    Range{0.1, 0.8},

		DawnActivity:   1.1,
		DuskActivity:   1.1,
		MiddayActivity: 1.0,
		NightActivity:  1.1,

		LowLightPreference: 1.0,
		SeasonalPeaks:      peaks(1.4, 0.7, 0.4, 0.3),
		Aliases:            []string{"prawn", "spot-shrimp", "shrimp"},
	},
}

// peaks builds a seasonal-peak map in spring, summer, fall, winter order.
func peaks(spring, summer, fall, winter float64) map[astro.Season]float64 {
	return map[astro.Season]float64{
		astro.SeasonSpring: spring,
		astro.SeasonSummer: summer,
		astro.SeasonFall:   fall,
		astro.SeasonWinter: winter,
	}
}

// ResolveSpecies maps a raw species string to a profile, or nil when
// nothing matches (which selects the general model). Resolution tries, in
// order: exact catalog key, normalized key or alias, then fuzzy matching
// (substring containment against display names either direction, or a
// 6-character key prefix overlap). First match in catalog order wins.
func ResolveSpecies(query string) *SpeciesProfile {
	if query == "" {
		return nil
	}

	for _, p := range Catalog {
		if p.ID == query {
			return p
		}
	}

	normalized := normalizeSpecies(query)
	for _, p := range Catalog {
		if p.ID == normalized {
			return p
		}
		for _, alias := range p.Aliases {
			if alias == normalized {
				return p
			}
		}
	}

	lowerQuery := strings.ToLower(query)
	for _, p := range Catalog {
		lowerName := strings.ToLower(p.Name)
		if strings.Contains(lowerName, lowerQuery) || strings.Contains(lowerQuery, lowerName) {
			return p
		}
		if len(normalized) >= 6 && len(p.ID) >= 6 && normalized[:6] == p.ID[:6] {
			return p
		}
	}

	return nil
}

// normalizeSpecies lowercases, converts spaces to hyphens and strips
// everything outside [a-z-].
func normalizeSpecies(query string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// rangeCurve maps v to [0, 10]: 10 inside the optimal band, 6 at the edge
// of the tolerable band with linear interpolation between, then decaying
// toward 0.5 beyond tolerable.
func rangeCurve(v float64, opt, tol Range) float64 {
	if opt.Contains(v) {
		return 10
	}
	if tol.Contains(v) {
		var span, dist float64
		if v < opt.Min {
			span = opt.Min - tol.Min
			dist = opt.Min - v
		} else {
			span = tol.Max - opt.Max
			dist = v - opt.Max
		}
		if span <= 0 {
			return 6
		}
		return 10 - 4*(dist/span)
	}

	var overshoot float64
	if v < tol.Min {
		overshoot = tol.Min - v
	} else {
		overshoot = v - tol.Max
	}
	return clamp(6-overshoot*1.1, 0.5, 6)
}
