package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fishcast/fishcast/internal/api/models"
	"github.com/fishcast/fishcast/internal/api/response"
	"github.com/fishcast/fishcast/internal/forecast"
	"github.com/fishcast/fishcast/internal/spots"
	"github.com/fishcast/fishcast/internal/tide"
)

// ForecastService is the forecast surface the handler depends on.
type ForecastService interface {
	GetDaily(ctx context.Context, lat, lon float64, station *tide.Station, species string) ([]forecast.DailyForecast, error)
	GetCurrent(ctx context.Context, lat, lon float64, station *tide.Station, species string) (*forecast.CurrentConditions, error)
}

// SpotResolver loads saved spots for spot-based forecast requests.
type SpotResolver interface {
	GetDomain(ctx context.Context, spotID string) (*spots.Spot, error)
}

// ForecastHandler handles forecast and current-score endpoints.
type ForecastHandler struct {
	forecasts ForecastService
	spots     SpotResolver
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecasts ForecastService, spotResolver SpotResolver) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts, spots: spotResolver}
}

// forecastQuery is the resolved request: either lat/lon given directly,
// or taken from a saved spot.
type forecastQuery struct {
	lat     float64
	lon     float64
	station *tide.Station
	species string
}

// GetForecast handles GET /v1/forecast - daily fishing outlook.
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	q, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}

	days, err := h.forecasts.GetDaily(r.Context(), q.lat, q.lon, q.station, q.species)
	if err != nil {
		response.ServiceUnavailable(w, r, "forecast data is temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.ForecastResponse{
		Location: models.Point{Lat: q.lat, Lon: q.lon},
		Species:  optional(q.species),
		Days:     toAPIDays(days),
	})
}

// GetCurrentScore handles GET /v1/score/current - conditions right now.
func (h *ForecastHandler) GetCurrentScore(w http.ResponseWriter, r *http.Request) {
	q, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}

	current, err := h.forecasts.GetCurrent(r.Context(), q.lat, q.lon, q.station, q.species)
	if err != nil {
		if errors.Is(err, forecast.ErrNoSampleForNow) {
			response.NotFound(w, r, "no forecast data covers the current time")
			return
		}
		response.ServiceUnavailable(w, r, "forecast data is temporarily unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.CurrentScoreResponse{
		Location:       models.Point{Lat: q.lat, Lon: q.lon},
		Species:        optional(q.species),
		Time:           models.Timestamp(time.Unix(current.Timestamp, 0)),
		Score:          current.Score.Total,
		Breakdown:      current.Score.Breakdown,
		IsSafe:         current.Score.IsSafe,
		SafetyWarnings: current.Score.SafetyWarnings,
		Strategy:       current.Strategy,
	})
}

// resolveQuery parses lat/lon/species/station query parameters, or loads
// them from a saved spot when spotId is given. Explicit parameters
// override the spot's stored values.
func (h *ForecastHandler) resolveQuery(w http.ResponseWriter, r *http.Request) (forecastQuery, bool) {
	var q forecastQuery
	params := r.URL.Query()

	q.species = params.Get("species")
	if stationID := params.Get("station"); stationID != "" {
		q.station = &tide.Station{ID: stationID}
	}

	if spotID := params.Get("spotId"); spotID != "" {
		spot, err := h.spots.GetDomain(r.Context(), spotID)
		if err != nil {
			if spots.IsNotFound(err) {
				response.NotFound(w, r, "spot not found")
			} else {
				response.InternalError(w, r, "failed to load spot")
			}
			return q, false
		}

		q.lat = spot.Location.Lat
		q.lon = spot.Location.Lon
		if q.station == nil && spot.StationID != nil {
			q.station = &tide.Station{ID: *spot.StationID, Lat: spot.Location.Lat, Lon: spot.Location.Lon}
		}
		if q.species == "" && spot.DefaultSpecies != nil {
			q.species = *spot.DefaultSpecies
		}
		return q, true
	}

	lat, latErr := strconv.ParseFloat(params.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(params.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		response.BadRequest(w, r, "lat and lon are required", []models.FieldError{
			{Field: "lat", Message: "must be a number between -90 and 90"},
			{Field: "lon", Message: "must be a number between -180 and 180"},
		})
		return q, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		response.BadRequest(w, r, "coordinates out of range", nil)
		return q, false
	}

	q.lat = lat
	q.lon = lon
	return q, true
}

func toAPIDays(days []forecast.DailyForecast) []models.DailyForecast {
	out := make([]models.DailyForecast, 0, len(days))
	for _, d := range days {
		day := models.DailyForecast{
			Date:         d.Date,
			Sunrise:      models.Timestamp(time.Unix(d.Sunrise, 0)),
			Sunset:       models.Timestamp(time.Unix(d.Sunset, 0)),
			Samples:      make([]models.SampleScore, 0, len(d.Samples)),
			Periods:      make([]models.PeriodForecast, 0, len(d.Periods)),
			AverageScore: d.AverageScore,
		}
		for _, s := range d.Samples {
			day.Samples = append(day.Samples, models.SampleScore{
				Time:           models.Timestamp(time.Unix(s.Timestamp, 0)),
				Score:          s.Score,
				Breakdown:      s.Breakdown,
				IsSafe:         s.IsSafe,
				SafetyWarnings: s.SafetyWarnings,
			})
		}
		for _, p := range d.Periods {
			day.Periods = append(day.Periods, toAPIPeriod(p))
		}
		if d.BestWindow != nil {
			best := toAPIPeriod(*d.BestWindow)
			day.BestWindow = &best
		}
		out = append(out, day)
	}
	return out
}

func toAPIPeriod(p forecast.PeriodForecast) models.PeriodForecast {
	return models.PeriodForecast{
		Start:          models.Timestamp(time.Unix(p.Start, 0)),
		End:            models.Timestamp(time.Unix(p.End, 0)),
		Score:          p.Score,
		Breakdown:      p.Breakdown,
		IsSafe:         p.IsSafe,
		SafetyWarnings: p.SafetyWarnings,
		SampleCount:    p.SampleCount,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
