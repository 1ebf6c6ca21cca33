package weather

import (
	"context"

	"city-weather-api/internal/domain/model"
)

type UseCase interface {
	// GetCityWeather fetches the current weather for a stored city. The city
	// lookup happens before any provider call, so an unknown city is a
	// not-found error, never a weather error.
	GetCityWeather(ctx context.Context, cityID uint) (*model.WeatherSnapshot, error)

	// SubmitCityWeatherJob enqueues an asynchronous weather fetch for a
	// stored city and returns the job id to poll.
	SubmitCityWeatherJob(ctx context.Context, cityID uint) (*model.SubmittedJobDTO, error)

	// GetWeatherJob returns the current state of a submitted job
	GetWeatherJob(ctx context.Context, jobID string) (*model.WeatherJob, error)

	// ProcessWeatherJob runs one queued job to a terminal state
	ProcessWeatherJob(ctx context.Context, message model.WeatherJobMessage) error

	// RefreshAllCitiesWeather enqueues a weather refresh for every stored
	// city in batches using key-set pagination
	RefreshAllCitiesWeather(ctx context.Context, requestID string) error
}
