package model

// WeatherSnapshot is a point-in-time weather reading for a coordinate pair.
// It is built fresh per request and never persisted. Fields the provider did
// not report stay nil and serialize as null.
type WeatherSnapshot struct {
	Temperature        *float64 `json:"temperature"`
	HumidityPercentage *float64 `json:"humidityPercentage"`
	WeatherCondition   *float64 `json:"weatherCondition"`
	WindSpeed          *float64 `json:"windSpeed"`
}
