package queue

import (
	"context"
	"errors"
	"time"

	"city-weather-api/internal/domain/model"
)

// ErrJobTransition is returned when a status change is rejected because the
// job is not in the expected state. Terminal jobs never transition again.
var ErrJobTransition = errors.New("job status transition rejected")

// JobStore persists weather jobs and enforces their status lifecycle:
// pending -> running -> complete|failed, with at most one terminal
// transition per job.
type JobStore interface {
	Create(ctx context.Context, job model.WeatherJob) error
	Get(ctx context.Context, jobID string) (*model.WeatherJob, error)

	MarkRunning(ctx context.Context, jobID string) error
	Complete(ctx context.Context, jobID string, result *model.WeatherSnapshot) error
	Fail(ctx context.Context, jobID string, reason string) error

	// ReapStalled fails every running job whose last transition is older
	// than the deadline and returns how many were reaped.
	ReapStalled(ctx context.Context, deadline time.Duration) (int, error)
}
