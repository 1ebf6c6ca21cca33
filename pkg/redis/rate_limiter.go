package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiterOptions configures a fixed-window rate limiter.
type RateLimiterOptions struct {
	// Limit is the maximum number of allowed requests per window.
	Limit int64
	// Window is the length of the counting window.
	Window time.Duration
	// Namespace prefixes the counter keys.
	Namespace string
}

// NewRateLimiterOptions creates rate limiter options with default values.
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		Limit:     60,
		Window:    1 * time.Minute,
		Namespace: "rate-limit",
	}
}

// RateLimitResult describes the outcome of a single Allow call.
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	RetryIn   time.Duration
}

// RateLimiter implements a fixed-window counter shared across processes.
// The counter key carries the window TTL, so the window resets on expiry.
type RateLimiter struct {
	client *Client
	opts   *RateLimiterOptions
}

// NewRateLimiter creates a new fixed-window rate limiter.
func NewRateLimiter(client *Client, opts *RateLimiterOptions) *RateLimiter {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	return &RateLimiter{client: client, opts: opts}
}

// incrScript bumps the counter and stamps the window TTL on first increment
// in a single round trip.
const incrScript = `
	local count = redis.call("INCR", KEYS[1])
	if count == 1 then
		redis.call("PEXPIRE", KEYS[1], ARGV[1])
	end
	return count
`

// Allow counts one request against the key's current window and reports
// whether it fits within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (*RateLimitResult, error) {
	fullKey := fmt.Sprintf("%s::%s", rl.opts.Namespace, key)

	result, err := rl.client.GetClient().Eval(ctx, incrScript, []string{fullKey}, rl.opts.Window.Milliseconds()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := result.(int64)
	if count <= rl.opts.Limit {
		return &RateLimitResult{Allowed: true, Remaining: rl.opts.Limit - count}, nil
	}

	retryIn, err := rl.client.TTL(ctx, fullKey)
	if err != nil {
		retryIn = rl.opts.Window
	}
	return &RateLimitResult{Allowed: false, Remaining: 0, RetryIn: retryIn}, nil
}
