package queue

import (
	"context"
	"fmt"
	"time"

	"city-weather-api/internal/domain/model"

	"github.com/google/uuid"
)

type dispatcherImpl struct {
	queueName string
	sender    Sender
	store     JobStore
}

// NewDispatcher creates a Dispatcher that records jobs in the store and hands
// them to the queue for a worker to pick up.
func NewDispatcher(queueName string, sender Sender, store JobStore) Dispatcher {
	return &dispatcherImpl{
		queueName: queueName,
		sender:    sender,
		store:     store,
	}
}

// Submit records a pending job and enqueues it. The job record is written
// before the enqueue so a poll for the returned id always finds the job; if
// the enqueue fails, the job is failed in place.
func (d *dispatcherImpl) Submit(ctx context.Context, latitude float64, longitude float64) (*model.SubmittedJobDTO, error) {
	jobID := uuid.New().String()
	now := time.Now().UTC()

	job := model.WeatherJob{
		ID:        jobID,
		Status:    model.JobStatusPending,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.store.Create(ctx, job); err != nil {
		return nil, err
	}

	message := model.WeatherJobMessage{
		JobID:     jobID,
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := d.sender.SendMessage(ctx, d.queueName, message); err != nil {
		_ = d.store.Fail(ctx, jobID, fmt.Sprintf("failed to enqueue job: %v", err))
		return nil, err
	}

	return &model.SubmittedJobDTO{JobID: jobID}, nil
}

func (d *dispatcherImpl) Poll(ctx context.Context, jobID string) (*model.WeatherJob, error) {
	return d.store.Get(ctx, jobID)
}
