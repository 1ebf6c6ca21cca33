package api

import (
	"context"
	"errors"
	"math"
	"strconv"

	"city-weather-api/internal/domain/model"
	"city-weather-api/internal/domain/model/external"
	"city-weather-api/pkg/http"
	"city-weather-api/pkg/log"
	"city-weather-api/pkg/redis"

	"go.uber.org/zap"
)

const (
	forecastPath = "/v1/forecast"

	// currentMetrics lists the metrics requested from the provider's
	// `current` block, in the provider's own field naming.
	currentMetrics = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
	cache      *redis.Cache
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client.
// A nil cache disables response caching.
func NewWeatherGateway(baseUrl string, clientOptions http.ClientOptions, cache *redis.Cache) WeatherGateway {
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &weatherGatewayImpl{
		httpClient: httpClient,
		cache:      cache,
	}
}

// CurrentWeather fetches the current conditions for a coordinate pair. The
// cache is consulted first, keyed by the full request URL, so two calls for
// the same coordinates within the TTL hit the provider only once.
func (w *weatherGatewayImpl) CurrentWeather(ctx context.Context, latitude float64, longitude float64) (*model.WeatherSnapshot, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}

	request := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(forecastPath).
		WithQueryParams(map[string]string{
			"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
			"current":   currentMetrics,
			"timezone":  "auto",
			"past_days": "92",
		}).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{})

	cacheKey := request.URL()

	if w.cache != nil {
		var cached model.WeatherSnapshot
		err := w.cache.Get(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			log.Warn("Weather cache read failed, fetching from provider", zap.Error(err))
		}
	}

	successResp, errResp, status, err := request.Execute()
	if err != nil {
		if errResp != nil {
			errorResponse := errResp.(*external.APIErrorResponse)
			if errorResponse.Reason != "" && status >= 400 && status < 500 {
				return nil, &model.ValidationError{Field: "coordinates", Reason: errorResponse.Reason}
			}
		}
		return nil, &model.NetworkFailureError{Attempts: w.httpClient.MaxAttempts(), Err: err}
	}

	response := successResp.(*external.ForecastResponse)
	if response.Current == nil {
		return nil, &model.MalformedResponseError{Missing: "current"}
	}

	snapshot := &model.WeatherSnapshot{
		Temperature:        response.Current.Temperature,
		HumidityPercentage: response.Current.RelativeHumidity,
		WeatherCondition:   response.Current.WeatherCode,
		WindSpeed:          response.Current.WindSpeed,
	}

	if w.cache != nil {
		if err := w.cache.Set(ctx, cacheKey, snapshot); err != nil {
			log.Warn("Weather cache write failed", zap.Error(err))
		}
	}

	return snapshot, nil
}

func validateCoordinates(latitude float64, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return &model.ValidationError{Field: "latitude", Reason: "must be a finite value between -90 and 90"}
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return &model.ValidationError{Field: "longitude", Reason: "must be a finite value between -180 and 180"}
	}
	return nil
}
