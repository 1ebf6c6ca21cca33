package queue

import (
	"context"
	"testing"
	"time"

	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJobStore(t *testing.T) *RedisJobStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClientFromExisting(
		goredis.NewClient(&goredis.Options{Addr: mr.Addr()}),
		redis.NewRedisConfig(),
	)
	return NewRedisJobStore(client, time.Hour)
}

func newPendingJob(t *testing.T, store *RedisJobStore, id string) model.WeatherJob {
	t.Helper()

	job := model.WeatherJob{
		ID:        id,
		Status:    model.JobStatusPending,
		Latitude:  -12.0464,
		Longitude: -77.0428,
	}
	require.NoError(t, store.Create(context.Background(), job))
	return job
}

func TestJobStoreCreateAndGet(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")

	job, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.InDelta(t, -12.0464, job.Latitude, 1e-9)
	assert.InDelta(t, -77.0428, job.Longitude, 1e-9)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Nil(t, job.Result)
	assert.Empty(t, job.Error)
}

func TestJobStoreGetUnknownJob(t *testing.T) {
	store := newTestJobStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.True(t, model.IsNotFound(err))
}

func TestJobStoreHappyLifecycle(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")

	require.NoError(t, store.MarkRunning(ctx, "job-1"))
	job, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRunning, job.Status)

	temperature := 19.3
	require.NoError(t, store.Complete(ctx, "job-1", &model.WeatherSnapshot{Temperature: &temperature}))

	job, err = store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusComplete, job.Status)
	require.NotNil(t, job.Result)
	require.NotNil(t, job.Result.Temperature)
	assert.InDelta(t, 19.3, *job.Result.Temperature, 1e-9)
}

func TestJobStoreFailFromPending(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")

	require.NoError(t, store.Fail(ctx, "job-1", "queue rejected the message"))

	job, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Equal(t, "queue rejected the message", job.Error)
	assert.Nil(t, job.Result)
}

func TestJobStoreTerminalStatesAreFinal(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")
	require.NoError(t, store.MarkRunning(ctx, "job-1"))
	require.NoError(t, store.Complete(ctx, "job-1", nil))

	assert.ErrorIs(t, store.Fail(ctx, "job-1", "too late"), ErrJobTransition)
	assert.ErrorIs(t, store.MarkRunning(ctx, "job-1"), ErrJobTransition)

	job, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusComplete, job.Status)
	assert.Empty(t, job.Error)
}

func TestJobStoreCompleteRequiresRunning(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")

	assert.ErrorIs(t, store.Complete(ctx, "job-1", nil), ErrJobTransition)
}

func TestJobStoreTransitionUnknownJob(t *testing.T) {
	store := newTestJobStore(t)

	err := store.MarkRunning(context.Background(), "missing")
	assert.True(t, model.IsNotFound(err))
}

func TestJobStoreReapStalled(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "stalled")
	newPendingJob(t, store, "fresh")
	require.NoError(t, store.MarkRunning(ctx, "stalled"))
	require.NoError(t, store.MarkRunning(ctx, "fresh"))

	// Backdate the stalled job's start time past the deadline.
	stale := float64(time.Now().UTC().Add(-time.Hour).Unix())
	require.NoError(t, store.client.GetClient().ZAdd(ctx, runningIndexKey, goredis.Z{
		Score:  stale,
		Member: "stalled",
	}).Err())

	reaped, err := store.ReapStalled(ctx, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, reaped)

	job, err := store.Get(ctx, "stalled")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "worker timed out")

	job, err = store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusRunning, job.Status)
}

func TestJobStoreReapDropsFinishedJobsFromIndex(t *testing.T) {
	store := newTestJobStore(t)
	ctx := context.Background()

	newPendingJob(t, store, "job-1")
	require.NoError(t, store.MarkRunning(ctx, "job-1"))
	require.NoError(t, store.Complete(ctx, "job-1", nil))

	// Simulate an index entry left behind for an already finished job.
	require.NoError(t, store.client.GetClient().ZAdd(ctx, runningIndexKey, goredis.Z{
		Score:  float64(time.Now().UTC().Add(-time.Hour).Unix()),
		Member: "job-1",
	}).Err())

	reaped, err := store.ReapStalled(ctx, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, reaped)

	members, err := store.client.GetClient().ZRange(ctx, runningIndexKey, 0, -1).Result()
	require.NoError(t, err)
	assert.Empty(t, members)
}
