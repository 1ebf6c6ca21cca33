package cache

import (
	"context"
	"time"

	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/redis"
)

type HealthGateway interface {
	Health() model.ComponentHealthStatus
}

// RedisCacheHealthGateway reports the health of the Redis backend shared by
// the weather cache and the job store.
type RedisCacheHealthGateway struct {
	checker *redis.HealthChecker
}

var _ HealthGateway = (*RedisCacheHealthGateway)(nil)

func NewRedisCacheHealthGateway(client *redis.Client) *RedisCacheHealthGateway {
	return &RedisCacheHealthGateway{
		checker: redis.NewHealthChecker(client),
	}
}

func (gateway *RedisCacheHealthGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := gateway.checker.HealthCheck(ctx)

	status := model.StatusDown
	if result.Status == redis.StatusUp {
		status = model.StatusUp
	}

	return model.ComponentHealthStatus{
		Status:  status,
		Details: result.Details,
	}
}
