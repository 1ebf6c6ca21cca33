package schedule

import (
	"context"
	"time"

	"city-weather-api/internal/domain/gateway/queue"
	"city-weather-api/pkg/log"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// JobJanitor force-fails weather jobs stuck in running state so their polls
// terminate even when a worker dies mid-job.
type JobJanitor struct {
	scheduler     gocron.Scheduler
	jobStore      queue.JobStore
	interval      time.Duration
	stallDeadline time.Duration
}

func NewJobJanitor(jobStore queue.JobStore, interval time.Duration, stallDeadline time.Duration) (*JobJanitor, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = 1 * time.Minute
	}
	if stallDeadline <= 0 {
		stallDeadline = 10 * time.Minute
	}

	return &JobJanitor{
		scheduler:     scheduler,
		jobStore:      jobStore,
		interval:      interval,
		stallDeadline: stallDeadline,
	}, nil
}

// Start schedules the reap task and begins running it
func (j *JobJanitor) Start() error {
	_, err := j.scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.reapStalledJobs),
	)
	if err != nil {
		return err
	}

	j.scheduler.Start()
	log.Infof("Job janitor started, reaping jobs stalled for more than %s every %s", j.stallDeadline, j.interval)
	return nil
}

// Stop shuts the scheduler down
func (j *JobJanitor) Stop() error {
	return j.scheduler.Shutdown()
}

func (j *JobJanitor) reapStalledJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reaped, err := j.jobStore.ReapStalled(ctx, j.stallDeadline)
	if err != nil {
		log.Error("Failed to reap stalled weather jobs", zap.Error(err))
		return
	}

	if reaped > 0 {
		log.Info("Reaped stalled weather jobs", zap.Int("count", reaped))
	}
}
