package controller

import (
	"net/http"

	"city-weather-api/internal/domain/usecase/weather"

	"github.com/labstack/echo/v4"
)

type WeatherController struct {
	api         *echo.Group
	useCase     weather.UseCase
	rateLimiter echo.MiddlewareFunc
}

// NewWeatherController creates the weather controller. The rate limiter
// middleware shields the forecast provider and may be nil.
func NewWeatherController(api *echo.Group, useCase weather.UseCase, rateLimiter echo.MiddlewareFunc) *WeatherController {
	return &WeatherController{api: api, useCase: useCase, rateLimiter: rateLimiter}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	middlewares := []echo.MiddlewareFunc{}
	if controller.rateLimiter != nil {
		middlewares = append(middlewares, controller.rateLimiter)
	}

	controller.api.GET("/cities/:id/weather", controller.GetCityWeather, middlewares...)
	controller.api.POST("/cities/:id/weather-async", controller.SubmitCityWeatherJob, middlewares...)
	controller.api.GET("/weather-jobs/:jobId", controller.GetWeatherJob)
}

// GetCityWeather godoc
// @Summary Get current weather for a city
// @Description Fetch the current weather snapshot for a stored city from the forecast provider
// @Tags weather
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Success 200 {object} model.WeatherSnapshot "Current weather snapshot"
// @Failure 404 {object} map[string]string "City not found"
// @Failure 503 {object} map[string]string "Forecast provider unavailable"
// @Router /cities/{id}/weather [get]
func (controller *WeatherController) GetCityWeather(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	snapshot, err := controller.useCase.GetCityWeather(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// SubmitCityWeatherJob godoc
// @Summary Submit an asynchronous weather fetch
// @Description Enqueue a weather fetch for a stored city and return the job id to poll
// @Tags weather
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Success 202 {object} model.SubmittedJobDTO "Submitted job id"
// @Failure 404 {object} map[string]string "City not found"
// @Router /cities/{id}/weather-async [post]
func (controller *WeatherController) SubmitCityWeatherJob(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	submitted, err := controller.useCase.SubmitCityWeatherJob(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, submitted)
}

// GetWeatherJob godoc
// @Summary Poll a weather job
// @Description Return the job's status and, once complete, its weather snapshot. A failed job is a 200 with status "failed" and the failure reason.
// @Tags weather
// @Accept json
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} model.WeatherJob "Job state"
// @Failure 404 {object} map[string]string "Job not found"
// @Router /weather-jobs/{jobId} [get]
func (controller *WeatherController) GetWeatherJob(c echo.Context) error {
	job, err := controller.useCase.GetWeatherJob(c.Request().Context(), c.Param("jobId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}
