// Package noaa implements the tide.Provider interface against the NOAA
// CO-OPS data API.
package noaa

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
	"github.com/fishcast/fishcast/internal/tide"
)

const (
	// ProviderName identifies this tide provider.
	ProviderName = "noaa-coops"

	// DefaultBaseURL is the NOAA CO-OPS data API base URL.
	DefaultBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"

	noaaTimeLayout = "2006-01-02 15:04"
)

// ClientConfig holds configuration for the NOAA client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a NOAA CO-OPS API client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new NOAA CO-OPS client.
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

// predictionsResponse is the NOAA predictions payload. Heights and times
// arrive as strings.
type predictionsResponse struct {
	Predictions []noaaPrediction `json:"predictions"`
}

type noaaPrediction struct {
	Time   string  `json:"t"`
	Height string  `json:"v"`
	Type   *string `json:"type,omitempty"` // H or L, hilo interval only
}

// waterTempResponse is the NOAA water_temperature payload.
type waterTempResponse struct {
	Data []struct {
		Time  string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
}

// GetStationData fetches predictions, extremes and water temperature for a
// station. Water temperature is best-effort: many stations carry no sensor
// and its absence is not an error.
func (c *Client) GetStationData(ctx context.Context, station tide.Station, from, to time.Time) (*tide.StationData, error) {
	predictions, err := c.getPredictions(ctx, station.ID, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("fetching predictions: %w", err)
	}
	if len(predictions) == 0 {
		return nil, tide.ErrNoStationData
	}

	extremeRows, err := c.getPredictions(ctx, station.ID, from, to, "hilo")
	if err != nil {
		return nil, fmt.Errorf("fetching extremes: %w", err)
	}

	extremes := make([]tide.Extreme, 0, len(extremeRows))
	for _, row := range extremeRows {
		if row.kind == "" {
			continue
		}
		extremes = append(extremes, tide.Extreme{
			Timestamp: row.timestamp,
			Height:    row.height,
			Type:      tide.ExtremeType(row.kind),
		})
	}

	preds := make([]tide.Prediction, 0, len(predictions))
	for _, row := range predictions {
		preds = append(preds, tide.Prediction{Timestamp: row.timestamp, Height: row.height})
	}

	waterTemp := c.getWaterTemperature(ctx, station.ID)

	return &tide.StationData{
		Station:          station,
		Predictions:      preds,
		Extremes:         extremes,
		WaterTemperature: waterTemp,
		FetchedAt:        time.Now(),
	}, nil
}

// parsedRow is a prediction row with its fields parsed.
type parsedRow struct {
	timestamp int64
	height    float64
	kind      string
}

// getPredictions fetches the predictions product, optionally at hilo
// interval for tide extremes.
func (c *Client) getPredictions(ctx context.Context, stationID string, from, to time.Time, interval string) ([]parsedRow, error) {
	values := url.Values{}
	values.Set("product", "predictions")
	values.Set("station", stationID)
	values.Set("begin_date", from.UTC().Format("20060102"))
	values.Set("end_date", to.UTC().Format("20060102"))
	values.Set("datum", "MLLW")
	values.Set("units", "metric")
	values.Set("time_zone", "gmt")
	values.Set("format", "json")
	if interval != "" {
		values.Set("interval", interval)
	}

	var resp predictionsResponse
	if err := c.getJSON(ctx, values, &resp); err != nil {
		return nil, err
	}

	rows := make([]parsedRow, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		ts, err := time.ParseInLocation(noaaTimeLayout, p.Time, time.UTC)
		if err != nil {
			c.logger.Warn().Str("time", p.Time).Msg("skipping unparseable prediction time")
			continue
		}
		height, err := strconv.ParseFloat(p.Height, 64)
		if err != nil {
			c.logger.Warn().Str("height", p.Height).Msg("skipping unparseable prediction height")
			continue
		}
		row := parsedRow{timestamp: ts.Unix(), height: height}
		if p.Type != nil {
			row.kind = *p.Type
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// getWaterTemperature fetches the latest water temperature reading.
// Returns nil when the station has no sensor or the call fails.
func (c *Client) getWaterTemperature(ctx context.Context, stationID string) *float64 {
	values := url.Values{}
	values.Set("product", "water_temperature")
	values.Set("station", stationID)
	values.Set("date", "latest")
	values.Set("units", "metric")
	values.Set("time_zone", "gmt")
	values.Set("format", "json")

	var resp waterTempResponse
	if err := c.getJSON(ctx, values, &resp); err != nil {
		c.logger.Debug().Err(err).
			Str("station", stationID).
			Msg("no water temperature for station")
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}

	temp, err := strconv.ParseFloat(resp.Data[len(resp.Data)-1].Value, 64)
	if err != nil {
		return nil
	}
	return &temp
}

func (c *Client) getJSON(ctx context.Context, values url.Values, out interface{}) error {
	reqURL := c.baseURL + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
