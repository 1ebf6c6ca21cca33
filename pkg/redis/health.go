package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// HealthStatus represents the possible health states of the Redis connection.
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// HealthCheckResult represents the health check response for Redis.
type HealthCheckResult struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker verifies Redis connectivity and basic operations.
type HealthChecker struct {
	client *Client
}

// NewHealthChecker creates a new Redis health checker.
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// HealthCheck pings Redis and performs a set/get/delete round trip.
func (h *HealthChecker) HealthCheck(ctx context.Context) HealthCheckResult {
	details := map[string]string{
		"host":       h.client.config.Host,
		"port":       strconv.Itoa(h.client.config.Port),
		"database":   strconv.Itoa(h.client.config.Database),
		"last_check": time.Now().Format(time.RFC3339),
	}

	if err := h.client.Ping(ctx); err != nil {
		details["message"] = fmt.Sprintf("ping failed: %v", err)
		return HealthCheckResult{Status: StatusDown, Details: details}
	}

	probeKey := "health::probe::" + uuid.New().String()
	if err := h.client.Set(ctx, probeKey, "ok", 10*time.Second); err != nil {
		details["message"] = fmt.Sprintf("set failed: %v", err)
		return HealthCheckResult{Status: StatusDown, Details: details}
	}
	if _, err := h.client.Get(ctx, probeKey); err != nil {
		details["message"] = fmt.Sprintf("get failed: %v", err)
		return HealthCheckResult{Status: StatusDown, Details: details}
	}
	_ = h.client.Delete(ctx, probeKey)

	details["message"] = string(StatusUp)
	return HealthCheckResult{Status: StatusUp, Details: details}
}
