package api

import (
	"context"

	"city-weather-api/internal/domain/model"
)

// WeatherGateway fetches current weather conditions from the forecast provider.
type WeatherGateway interface {
	CurrentWeather(ctx context.Context, latitude float64, longitude float64) (*model.WeatherSnapshot, error)
}
