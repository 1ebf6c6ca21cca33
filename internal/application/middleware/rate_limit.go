package middleware

import (
	"net/http"
	"strconv"

	"city-weather-api/pkg/log"
	"city-weather-api/pkg/redis"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// WeatherRateLimiter limits requests per client IP on the weather routes so a
// single caller cannot drain the forecast provider budget. A Redis failure
// lets the request through.
func WeatherRateLimiter(limiter *redis.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn("Rate limiter unavailable, allowing request", zap.Error(err))
				return next(c)
			}

			if !result.Allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(result.RetryIn.Seconds())))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			}

			return next(c)
		}
	}
}
