// Package openmeteo implements the weather.Provider interface against the
// Open-Meteo forecast API at 15-minute resolution.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fishcast/fishcast/internal/provider/resilience"
	"github.com/fishcast/fishcast/internal/units"
	"github.com/fishcast/fishcast/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// minutely15Fields are the 15-minute series requested from the API.
	minutely15Fields = "temperature_2m,apparent_temperature,relative_humidity_2m," +
		"dew_point_2m,pressure_msl,precipitation,cloud_cover,wind_speed_10m," +
		"wind_direction_10m,wind_gusts_10m,visibility,sunshine_duration," +
		"lightning_potential,cape"
)

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetForecast fetches a 15-minute-resolution forecast for a location.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64, days int) (*weather.Forecast, error) {
	if days <= 0 {
		days = 1
	}
	if days > 16 {
		days = 16
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%.6f", lat))
	values.Set("longitude", fmt.Sprintf("%.6f", lon))
	values.Set("minutely_15", minutely15Fields)
	values.Set("daily", "sunrise,sunset")
	values.Set("forecast_days", strconv.Itoa(days))
	values.Set("timeformat", "unixtime")
	values.Set("timezone", "auto")

	reqURL := c.baseURL + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var omResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&omResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toForecast(&omResp)
}

// toForecast converts an Open-Meteo response to the domain model, applying
// neutral defaults for any series the API reported as null.
func (c *Client) toForecast(resp *forecastResponse) (*weather.Forecast, error) {
	m := resp.Minutely15
	if len(m.Time) == 0 {
		return nil, weather.ErrNoDataForLocation
	}

	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		c.logger.Warn().
			Str("timezone", resp.Timezone).
			Msg("unknown provider timezone, falling back to UTC")
		loc = time.UTC
	}

	samples := make([]weather.Sample, 0, len(m.Time))
	for i, ts := range m.Time {
		samples = append(samples, weather.Sample{
			Timestamp:           ts,
			Temperature:         seriesAt(m.Temperature2m, i, units.DefaultTemperatureC),
			ApparentTemperature: seriesAt(m.ApparentTemperature, i, units.DefaultTemperatureC),
			Humidity:            seriesAt(m.RelativeHumidity2m, i, units.DefaultHumidityPct),
			DewPoint:            seriesAt(m.DewPoint2m, i, units.DefaultTemperatureC-4),
			Pressure:            seriesAt(m.PressureMsl, i, units.DefaultPressureHpa),
			Precipitation:       seriesAt(m.Precipitation, i, units.DefaultPrecipitationMM),
			CloudCover:          seriesAt(m.CloudCover, i, units.DefaultCloudCoverPct),
			WindSpeed:           seriesAt(m.WindSpeed10m, i, units.DefaultWindSpeedKmh),
			WindDirection:       seriesAt(m.WindDirection10m, i, 0),
			WindGusts:           seriesAt(m.WindGusts10m, i, units.DefaultWindSpeedKmh),
			Visibility:          seriesAt(m.Visibility, i, units.DefaultVisibilityM),
			SunshineDuration:    seriesAt(m.SunshineDuration, i, 0),
			LightningPotential:  seriesAt(m.LightningPotential, i, units.DefaultCAPE),
			CAPE:                seriesAt(m.CAPE, i, units.DefaultCAPE),
		})
	}

	sun := make([]weather.DaySun, 0, len(resp.Daily.Time))
	for i, dayTS := range resp.Daily.Time {
		if i >= len(resp.Daily.Sunrise) || i >= len(resp.Daily.Sunset) {
			break
		}
		sun = append(sun, weather.DaySun{
			Date:    time.Unix(dayTS, 0).In(loc).Format("2006-01-02"),
			Sunrise: resp.Daily.Sunrise[i],
			Sunset:  resp.Daily.Sunset[i],
		})
	}

	return &weather.Forecast{
		Lat:       resp.Latitude,
		Lon:       resp.Longitude,
		Timezone:  resp.Timezone,
		Samples:   samples,
		Sun:       sun,
		FetchedAt: time.Now(),
	}, nil
}

// seriesAt returns series[i] or the default when the series is missing,
// short, or null at that index.
func seriesAt(series []*float64, i int, def float64) float64 {
	if i >= len(series) {
		return def
	}
	return units.OrDefault(series[i], def)
}
