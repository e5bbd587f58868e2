package openmeteo

// forecastResponse is the subset of the Open-Meteo forecast response this
// client consumes. Numeric series use pointers because the API reports
// null for values its models do not cover at a given location.
type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`

	Minutely15 minutely15Block `json:"minutely_15"`
	Daily      dailyBlock      `json:"daily"`
}

type minutely15Block struct {
	Time                []int64    `json:"time"`
	Temperature2m       []*float64 `json:"temperature_2m"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	RelativeHumidity2m  []*float64 `json:"relative_humidity_2m"`
	DewPoint2m          []*float64 `json:"dew_point_2m"`
	PressureMsl         []*float64 `json:"pressure_msl"`
	Precipitation       []*float64 `json:"precipitation"`
	CloudCover          []*float64 `json:"cloud_cover"`
	WindSpeed10m        []*float64 `json:"wind_speed_10m"`
	WindDirection10m    []*float64 `json:"wind_direction_10m"`
	WindGusts10m        []*float64 `json:"wind_gusts_10m"`
	Visibility          []*float64 `json:"visibility"`
	SunshineDuration    []*float64 `json:"sunshine_duration"`
	LightningPotential  []*float64 `json:"lightning_potential"`
	CAPE                []*float64 `json:"cape"`
}

type dailyBlock struct {
	Time    []int64 `json:"time"`
	Sunrise []int64 `json:"sunrise"`
	Sunset  []int64 `json:"sunset"`
}
