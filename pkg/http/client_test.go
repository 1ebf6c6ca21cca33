package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestURLSortsQueryKeys(t *testing.T) {
	client := NewHttpClient("https://api.example.com", ClientOptions{})

	url := client.BuildRequestURL("/v1/forecast", map[string]string{
		"timezone":  "auto",
		"latitude":  "-12.0464",
		"longitude": "-77.0428",
	})

	assert.Equal(t, "https://api.example.com/v1/forecast?latitude=-12.0464&longitude=-77.0428&timezone=auto", url)
}

func TestBuildRequestURLIsStable(t *testing.T) {
	client := NewHttpClient("https://api.example.com", ClientOptions{})
	params := map[string]string{"b": "2", "a": "1", "c": "3"}

	first := client.BuildRequestURL("/path", params)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, client.BuildRequestURL("/path", params))
	}
}

func TestBuildRequestURLEscapesValues(t *testing.T) {
	client := NewHttpClient("https://api.example.com", ClientOptions{})

	url := client.BuildRequestURL("/search", map[string]string{"q": "a b&c"})
	assert.Equal(t, "https://api.example.com/search?q=a+b%26c", url)
}

func TestRequestBuilderRetriesOnServerError(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		DefaultBackoff: NewBackoffConfig(3, time.Millisecond),
	})

	var errorBody string
	_, _, _, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithErrorResp(&errorBody).
		Execute()

	require.Error(t, err)
	assert.Equal(t, int64(4), hits.Load())
}

func TestRequestDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"bad coordinates"}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		DefaultBackoff: NewBackoffConfig(3, time.Millisecond),
	})

	errorBody := map[string]any{}
	_, errResp, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithErrorResp(&errorBody).
		Execute()

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int64(1), hits.Load())
	require.NotNil(t, errResp)
	assert.Equal(t, "bad coordinates", errorBody["reason"])
}

func TestRequestStopsRetryingOnSuccess(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		DefaultBackoff: NewBackoffConfig(5, time.Millisecond),
	})

	body := map[string]any{}
	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithSuccessResp(&body).
		Execute()

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), hits.Load())
	assert.Equal(t, true, body["ok"])
}

func TestRequestRespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{
		DefaultBackoff: NewBackoffConfig(10, 50*time.Millisecond),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, _, err := client.Request().
		WithContext(ctx).
		WithMethod(GET).
		WithPath("/").
		Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMaxAttempts(t *testing.T) {
	assert.Equal(t, 1, NewHttpClient("http://x", ClientOptions{}).MaxAttempts())
	assert.Equal(t, 6, NewHttpClient("http://x", ClientOptions{
		DefaultBackoff: NewBackoffConfig(5, time.Millisecond),
	}).MaxAttempts())
}

func TestBackoffDelayGrowsExponentially(t *testing.T) {
	backoff := NewBackoffConfig(5, 200*time.Millisecond)

	assert.Equal(t, 200*time.Millisecond, backoff.delayFor(0))
	assert.Equal(t, 400*time.Millisecond, backoff.delayFor(1))
	assert.Equal(t, 800*time.Millisecond, backoff.delayFor(2))
}

func TestBackoffDelayIsCapped(t *testing.T) {
	backoff := NewBackoffConfig(10, 200*time.Millisecond)
	backoff.MaxInterval = 500 * time.Millisecond

	assert.Equal(t, 500*time.Millisecond, backoff.delayFor(5))
}
