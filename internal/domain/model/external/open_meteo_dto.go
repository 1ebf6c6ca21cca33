package external

// ForecastResponse represents the response from the Open-Meteo forecast API.
// Only the `current` block is consumed; the hourly/daily series the provider
// also returns are ignored on unmarshal.
type ForecastResponse struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Timezone  string             `json:"timezone"`
	Current   *CurrentConditions `json:"current"`
}

// CurrentConditions represents the current weather block. All measurement
// fields are pointers so an absent metric stays nil instead of collapsing
// to zero.
type CurrentConditions struct {
	Time             string   `json:"time"`
	Temperature      *float64 `json:"temperature_2m"`
	RelativeHumidity *float64 `json:"relative_humidity_2m"`
	WeatherCode      *float64 `json:"weather_code"`
	WindSpeed        *float64 `json:"wind_speed_10m"`
}

// APIErrorResponse represents an error payload from the Open-Meteo API.
type APIErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
