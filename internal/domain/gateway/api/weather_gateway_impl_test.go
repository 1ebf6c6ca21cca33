package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"city-weather-api/internal/domain/model"
	pkghttp "city-weather-api/pkg/http"
	"city-weather-api/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"latitude": -12.0,
	"longitude": -77.0,
	"timezone": "America/Lima",
	"current": {
		"time": "2024-05-01T12:00",
		"temperature_2m": 19.3,
		"relative_humidity_2m": 83,
		"weather_code": 3,
		"wind_speed_10m": 7.4
	}
}`

func newTestCache(t *testing.T) *redis.Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClientFromExisting(
		goredis.NewClient(&goredis.Options{Addr: mr.Addr()}),
		redis.NewRedisConfig(),
	)
	return redis.NewCache(client, redis.NewCacheOptions().WithCacheName("weather"))
}

func testClientOptions(maxRetries int) pkghttp.ClientOptions {
	return pkghttp.ClientOptions{
		DefaultBackoff: pkghttp.NewBackoffConfig(maxRetries, time.Millisecond),
	}
}

func TestCurrentWeatherSendsProviderParams(t *testing.T) {
	var query atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), nil)

	_, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)

	params := query.Load().(url.Values)
	assert.Equal(t, "-12.0464", params.Get("latitude"))
	assert.Equal(t, "-77.0428", params.Get("longitude"))
	assert.Equal(t, "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m", params.Get("current"))
	assert.Equal(t, "auto", params.Get("timezone"))
	assert.Equal(t, "92", params.Get("past_days"))
}

func TestCurrentWeatherMapsSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), nil)

	snapshot, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Temperature)
	assert.InDelta(t, 19.3, *snapshot.Temperature, 1e-9)
	require.NotNil(t, snapshot.HumidityPercentage)
	assert.InDelta(t, 83, *snapshot.HumidityPercentage, 1e-9)
	require.NotNil(t, snapshot.WeatherCondition)
	assert.InDelta(t, 3, *snapshot.WeatherCondition, 1e-9)
	require.NotNil(t, snapshot.WindSpeed)
	assert.InDelta(t, 7.4, *snapshot.WindSpeed, 1e-9)
}

func TestCurrentWeatherMissingFieldStaysNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current": {"temperature_2m": 19.3}}`))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), nil)

	snapshot, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Temperature)
	assert.Nil(t, snapshot.HumidityPercentage)
	assert.Nil(t, snapshot.WeatherCondition)
	assert.Nil(t, snapshot.WindSpeed)
}

func TestCurrentWeatherMissingCurrentBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": -12.0, "longitude": -77.0}`))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), nil)

	_, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.Error(t, err)

	var malformed *model.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "current", malformed.Missing)
}

func TestCurrentWeatherRetriesThenFails(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(2), nil)

	_, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.Error(t, err)

	var network *model.NetworkFailureError
	require.ErrorAs(t, err, &network)
	assert.Equal(t, int64(3), hits.Load())
}

func TestCurrentWeatherRecoversWithinRetryBudget(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(5), nil)

	snapshot, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Temperature)
	assert.Equal(t, int64(3), hits.Load())
}

func TestCurrentWeatherCacheHitSkipsProvider(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), newTestCache(t))

	first, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	second, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, *first.Temperature, *second.Temperature)
}

func TestCurrentWeatherDifferentCoordinatesMissCache(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), newTestCache(t))

	_, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	_, err = gateway.CurrentWeather(context.Background(), 52.52, 13.405)
	require.NoError(t, err)

	assert.Equal(t, int64(2), hits.Load())
}

func TestCurrentWeatherRejectsInvalidCoordinates(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), nil)

	for _, coords := range [][2]float64{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	} {
		_, err := gateway.CurrentWeather(context.Background(), coords[0], coords[1])
		assert.True(t, model.IsValidation(err), "coords %v should be rejected", coords)
	}

	assert.Equal(t, int64(0), hits.Load())
}

func TestCurrentWeatherSurvivesCacheOutage(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClientFromExisting(
		goredis.NewClient(&goredis.Options{Addr: mr.Addr()}),
		redis.NewRedisConfig(),
	)
	cache := redis.NewCache(client, redis.NewCacheOptions().WithCacheName("weather"))
	mr.Close()

	gateway := NewWeatherGateway(server.URL, testClientOptions(1), cache)

	// Both reads and writes against the dead backend degrade to a fetch.
	first, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	assert.InDelta(t, 19.3, *first.Temperature, 1e-9)

	second, err := gateway.CurrentWeather(context.Background(), -12.0464, -77.0428)
	require.NoError(t, err)
	assert.InDelta(t, 19.3, *second.Temperature, 1e-9)

	assert.Equal(t, int64(2), hits.Load())
}
