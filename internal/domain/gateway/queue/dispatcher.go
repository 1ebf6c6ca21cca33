package queue

import (
	"context"

	"city-weather-api/internal/domain/model"
)

// Dispatcher submits asynchronous weather fetch jobs and answers polls for
// their outcome.
type Dispatcher interface {
	Submit(ctx context.Context, latitude float64, longitude float64) (*model.SubmittedJobDTO, error)
	Poll(ctx context.Context, jobID string) (*model.WeatherJob, error)
}
