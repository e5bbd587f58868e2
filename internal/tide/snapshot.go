package tide

import (
	"math"
	"time"
)

// Ebb currents set roughly opposite the flood direction.
const ebbOffsetDegrees = 180.0

// DeriveSnapshot computes tidal conditions at the given instant from a
// station dataset. Returns nil when the dataset has no water-level series,
// which downstream scoring treats as "no tide data".
func DeriveSnapshot(data *StationData, at time.Time) *Snapshot {
	if data == nil || len(data.Predictions) < 2 {
		return nil
	}

	ts := at.Unix()
	preds := data.Predictions

	// Locate the interval containing ts. Clamp to the series edges.
	idx := 0
	for i := 0; i < len(preds)-1; i++ {
		if preds[i].Timestamp <= ts && ts <= preds[i+1].Timestamp {
			idx = i
			break
		}
		if preds[i+1].Timestamp < ts {
			idx = i
		}
	}

	before, after := preds[idx], preds[idx+1]
	span := float64(after.Timestamp - before.Timestamp)

	var height, rate float64
	if span > 0 {
		frac := float64(ts-before.Timestamp) / span
		frac = math.Max(0, math.Min(1, frac))
		height = before.Height + (after.Height-before.Height)*frac
		rate = (after.Height - before.Height) / (span / 3600.0)
	} else {
		height = before.Height
	}

	rising := rate > 0

	snapshot := &Snapshot{
		CurrentHeight: height,
		IsRising:      rising,
		ChangeRate:    rate,
		// Rough current-speed proxy: a 0.5 m/hr level change in a typical
		// strait corresponds to about one knot of flow.
		CurrentSpeed:     math.Abs(rate) * 2.0,
		CurrentDirection: currentDirection(data.Station.FloodDirection, rising),
		WaterTemperature: data.WaterTemperature,
		Predictions:      preds,
		Extremes:         data.Extremes,
	}

	snapshot.TidalRange, snapshot.TimeToNextTide = rangeAndNextTurn(data.Extremes, ts)

	return snapshot
}

// rangeAndNextTurn returns the tidal range between the extremes bracketing
// ts and the minutes until the next extreme. Zero values when the extremes
// series does not cover ts.
func rangeAndNextTurn(extremes []Extreme, ts int64) (tidalRange, minutesToNext float64) {
	var prev, next *Extreme
	for i := range extremes {
		e := &extremes[i]
		if e.Timestamp <= ts {
			prev = e
		} else {
			next = e
			break
		}
	}

	if next != nil {
		minutesToNext = float64(next.Timestamp-ts) / 60.0
	}
	if prev != nil && next != nil {
		tidalRange = math.Abs(next.Height - prev.Height)
	}
	return tidalRange, minutesToNext
}

func currentDirection(floodDirection float64, rising bool) float64 {
	if rising {
		return floodDirection
	}
	return math.Mod(floodDirection+ebbOffsetDegrees, 360.0)
}
