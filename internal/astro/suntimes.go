package astro

import (
	"fmt"
	"sync"
	"time"

	"github.com/sj14/astral/pkg/astral"
)

// SunTimes holds the sun event times for one calendar day.
type SunTimes struct {
	Dawn    time.Time
	Sunrise time.Time
	Sunset  time.Time
	Dusk    time.Time
}

// SunCalc computes and caches sun event times for a fixed location.
// Safe for concurrent use.
type SunCalc struct {
	observer astral.Observer

	mu    sync.RWMutex
	cache map[string]SunTimes
}

// NewSunCalc creates a SunCalc for the given location.
func NewSunCalc(lat, lon float64) *SunCalc {
	return &SunCalc{
		observer: astral.Observer{Latitude: lat, Longitude: lon},
		cache:    make(map[string]SunTimes),
	}
}

// SunTimesFor returns dawn, sunrise, sunset and dusk for the calendar day
// of the given date. Results are cached per date.
func (sc *SunCalc) SunTimesFor(date time.Time) (SunTimes, error) {
	key := date.Format("2006-01-02")

	sc.mu.RLock()
	cached, ok := sc.cache[key]
	sc.mu.RUnlock()
	if ok {
		return cached, nil
	}

	times, err := sc.calculate(date)
	if err != nil {
		return SunTimes{}, err
	}

	sc.mu.Lock()
	sc.cache[key] = times
	sc.mu.Unlock()

	return times, nil
}

func (sc *SunCalc) calculate(date time.Time) (SunTimes, error) {
	dawn, err := astral.Dawn(sc.observer, date, astral.DepressionCivil)
	if err != nil {
		return SunTimes{}, fmt.Errorf("calculating civil dawn: %w", err)
	}

	sunrise, err := astral.Sunrise(sc.observer, date)
	if err != nil {
		return SunTimes{}, fmt.Errorf("calculating sunrise: %w", err)
	}

	sunset, err := astral.Sunset(sc.observer, date)
	if err != nil {
		return SunTimes{}, fmt.Errorf("calculating sunset: %w", err)
	}

	dusk, err := astral.Dusk(sc.observer, date, astral.DepressionCivil)
	if err != nil {
		return SunTimes{}, fmt.Errorf("calculating civil dusk: %w", err)
	}

	return SunTimes{Dawn: dawn, Sunrise: sunrise, Sunset: sunset, Dusk: dusk}, nil
}
