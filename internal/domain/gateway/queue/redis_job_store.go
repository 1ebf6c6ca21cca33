package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

const (
	jobKeyPrefix    = "weather-jobs::job::"
	runningIndexKey = "weather-jobs::running"

	jobTimeLayout = time.RFC3339Nano
)

// transitionScript applies a status change only when the job is in one of the
// two expected states, so a terminal job can never transition again. It also
// maintains the running-jobs index used by the stalled-job reaper.
//
// KEYS[1] job hash, KEYS[2] running index.
// ARGV: expectedA, expectedB, newStatus, updatedAt, result, error, score,
// jobID, retentionSeconds.
var transitionScript = goredis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'status')
if current == false then
	return -1
end
if current ~= ARGV[1] and current ~= ARGV[2] then
	return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[3], 'updatedAt', ARGV[4])
if ARGV[5] ~= '' then
	redis.call('HSET', KEYS[1], 'result', ARGV[5])
end
if ARGV[6] ~= '' then
	redis.call('HSET', KEYS[1], 'error', ARGV[6])
end
if ARGV[3] == 'running' then
	redis.call('ZADD', KEYS[2], ARGV[7], ARGV[8])
else
	redis.call('ZREM', KEYS[2], ARGV[8])
end
redis.call('EXPIRE', KEYS[1], ARGV[9])
return 1
`)

// RedisJobStore keeps each job in its own hash with a retention TTL, plus a
// sorted set of running jobs scored by the time they started running.
type RedisJobStore struct {
	client    *redis.Client
	retention time.Duration
}

var _ JobStore = (*RedisJobStore)(nil)

func NewRedisJobStore(client *redis.Client, retention time.Duration) *RedisJobStore {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RedisJobStore{
		client:    client,
		retention: retention,
	}
}

func jobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

func (store *RedisJobStore) Create(ctx context.Context, job model.WeatherJob) error {
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = now
	}

	rdb := store.client.GetClient()
	key := jobKey(job.ID)

	fields := map[string]interface{}{
		"id":        job.ID,
		"status":    string(job.Status),
		"latitude":  strconv.FormatFloat(job.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(job.Longitude, 'f', -1, 64),
		"createdAt": job.CreatedAt.Format(jobTimeLayout),
		"updatedAt": job.UpdatedAt.Format(jobTimeLayout),
	}

	pipe := rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, store.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create job %s: %w", job.ID, err)
	}
	return nil
}

func (store *RedisJobStore) Get(ctx context.Context, jobID string) (*model.WeatherJob, error) {
	fields, err := store.client.GetClient().HGetAll(ctx, jobKey(jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read job %s: %w", jobID, err)
	}
	if len(fields) == 0 {
		return nil, model.NewNotFoundError("job", jobID)
	}

	job := &model.WeatherJob{
		ID:     fields["id"],
		Status: model.JobStatus(fields["status"]),
		Error:  fields["error"],
	}
	job.Latitude, _ = strconv.ParseFloat(fields["latitude"], 64)
	job.Longitude, _ = strconv.ParseFloat(fields["longitude"], 64)
	job.CreatedAt, _ = time.Parse(jobTimeLayout, fields["createdAt"])
	job.UpdatedAt, _ = time.Parse(jobTimeLayout, fields["updatedAt"])

	if raw, ok := fields["result"]; ok && raw != "" {
		var snapshot model.WeatherSnapshot
		if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode result of job %s: %w", jobID, err)
		}
		job.Result = &snapshot
	}

	return job, nil
}

func (store *RedisJobStore) MarkRunning(ctx context.Context, jobID string) error {
	return store.transition(ctx, jobID, model.JobStatusPending, "", model.JobStatusRunning, nil, "")
}

func (store *RedisJobStore) Complete(ctx context.Context, jobID string, result *model.WeatherSnapshot) error {
	return store.transition(ctx, jobID, model.JobStatusRunning, "", model.JobStatusComplete, result, "")
}

func (store *RedisJobStore) Fail(ctx context.Context, jobID string, reason string) error {
	return store.transition(ctx, jobID, model.JobStatusPending, model.JobStatusRunning, model.JobStatusFailed, nil, reason)
}

func (store *RedisJobStore) transition(ctx context.Context, jobID string, expectedA, expectedB, next model.JobStatus, result *model.WeatherSnapshot, reason string) error {
	resultJSON := ""
	if result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode result of job %s: %w", jobID, err)
		}
		resultJSON = string(data)
	}

	now := time.Now().UTC()
	outcome, err := transitionScript.Run(ctx, store.client.GetClient(),
		[]string{jobKey(jobID), runningIndexKey},
		string(expectedA),
		string(expectedB),
		string(next),
		now.Format(jobTimeLayout),
		resultJSON,
		reason,
		now.Unix(),
		jobID,
		int(store.retention.Seconds()),
	).Int64()
	if err != nil {
		return fmt.Errorf("failed to transition job %s to %s: %w", jobID, next, err)
	}

	switch outcome {
	case 1:
		return nil
	case 0:
		return ErrJobTransition
	default:
		return model.NewNotFoundError("job", jobID)
	}
}

// ReapStalled fails every running job whose running transition is older than
// the deadline. Jobs that reached a terminal state in the meantime are
// skipped by the transition script and dropped from the index.
func (store *RedisJobStore) ReapStalled(ctx context.Context, deadline time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-deadline).Unix()

	jobIDs, err := store.client.GetClient().ZRangeByScore(ctx, runningIndexKey, &goredis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list stalled jobs: %w", err)
	}

	reaped := 0
	for _, jobID := range jobIDs {
		err := store.Fail(ctx, jobID, fmt.Sprintf("worker timed out: no progress within %s", deadline))
		if err != nil {
			// A job that disappeared or already finished just leaves
			// the index.
			store.client.GetClient().ZRem(ctx, runningIndexKey, jobID)
			continue
		}
		reaped++
	}

	return reaped, nil
}
