package http

import (
	"context"
	"net/http"
	"time"
)

// BackoffConfig controls the retry behaviour of a request. A request is
// retried on transport errors and on retryable status codes (429 and 5xx)
// until MaxRetries is exhausted, sleeping between attempts with exponential
// growth: InitialInterval, InitialInterval*Multiplier, and so on, capped at
// MaxInterval when set.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// NewBackoffConfig returns a backoff configuration with the given retry count
// and initial interval, doubling between attempts.
func NewBackoffConfig(maxRetries int, initialInterval time.Duration) *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      maxRetries,
		InitialInterval: initialInterval,
		Multiplier:      2.0,
	}
}

// delayFor returns the sleep duration before retry number attempt (0-based).
func (b *BackoffConfig) delayFor(attempt int) time.Duration {
	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	delay := b.InitialInterval
	for i := 0; i < attempt; i++ {
		delay = time.Duration(float64(delay) * multiplier)
	}
	if b.MaxInterval > 0 && delay > b.MaxInterval {
		delay = b.MaxInterval
	}
	return delay
}

// isRetryable reports whether a request outcome is worth retrying. A zero
// status means the transport itself failed before a response arrived.
func isRetryable(status int, err error) bool {
	if err == nil {
		return false
	}
	return status == 0 || status == http.StatusTooManyRequests || status >= 500
}

// doRequestWithBackoff executes the request, retrying transient failures
// according to the backoff configuration. A nil backoff falls back to the
// client default; with no default either, the request runs exactly once.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil {
		backoff = hc.defaultBackoff
	}
	if backoff == nil || backoff.MaxRetries <= 0 || backoff.InitialInterval <= 0 {
		return hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
	}

	fullURL := hc.BuildRequestURL(path, queryParams)

	var successOut, errorOut any
	var status int
	var err error

	for attempt := 0; ; attempt++ {
		if hc.logger != nil && attempt == 0 {
			hc.logger.LogRequest(method, fullURL, headers, "")
		}

		start := time.Now()
		successOut, errorOut, status, err = hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		latency := time.Since(start).Milliseconds()

		if err == nil {
			if hc.logger != nil {
				hc.logger.LogResponseSuccess(method, fullURL, headers, "", status, "", latency)
			}
			return successOut, errorOut, status, nil
		}

		if ctx.Err() != nil {
			return nil, nil, status, ctx.Err()
		}

		if !isRetryable(status, err) || attempt >= backoff.MaxRetries {
			if hc.logger != nil {
				hc.logger.LogResponseError(method, fullURL, headers, "", status, "", latency, err)
			}
			return successOut, errorOut, status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, fullURL, headers, "", status, "", latency, err, attempt+1, backoff.MaxRetries)
		}

		timer := time.NewTimer(backoff.delayFor(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, status, ctx.Err()
		case <-timer.C:
		}
	}
}
