package controller

import (
	"net/http"

	"city-weather-api/internal/domain/model"
	"city-weather-api/internal/domain/usecase/city"
	"city-weather-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type CityController struct {
	api     *echo.Group
	useCase city.UseCase
}

func NewCityController(api *echo.Group, useCase city.UseCase) *CityController {
	return &CityController{api: api, useCase: useCase}
}

// InitCityRoutes initializes city CRUD routes
func (controller *CityController) InitCityRoutes() {
	controller.api.GET("/cities", controller.FindAll)
	controller.api.GET("/cities/:id", controller.FindByID)
	controller.api.POST("/cities", controller.Create)
	controller.api.PUT("/cities/:id", controller.UpdateByID)
	controller.api.DELETE("/cities/:id", controller.DeleteByID)
}

// FindAll godoc
// @Summary List cities
// @Description Retrieve cities with pagination, case-insensitive name/country filters and whitelisted sorting
// @Tags cities
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Param name query string false "City name substring to filter by"
// @Param country query string false "Country to filter by"
// @Param sortBy query string false "Sort column" default(id)
// @Param order query string false "Sort order (asc|desc)" default(asc)
// @Success 200 {object} model.Page[entity.City] "Paginated list of cities"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cities [get]
func (controller *CityController) FindAll(c echo.Context) error {
	page := numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	size := numberutils.ToIntWithDefault(c.QueryParam("size"), 10)
	filter := model.CityFilter{
		Name:    c.QueryParam("name"),
		Country: c.QueryParam("country"),
		SortBy:  c.QueryParam("sortBy"),
		Order:   c.QueryParam("order"),
	}

	cities, err := controller.useCase.FindAll(page, size, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// FindByID godoc
// @Summary Get city by id
// @Tags cities
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Success 200 {object} entity.City "City data"
// @Failure 404 {object} map[string]string "City not found"
// @Failure 422 {object} map[string]string "Invalid city id"
// @Router /cities/{id} [get]
func (controller *CityController) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cityData, err := controller.useCase.FindByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cityData)
}

// Create godoc
// @Summary Create a city
// @Tags cities
// @Accept json
// @Produce json
// @Param city body model.CityParamsDTO true "City data"
// @Success 201 {object} entity.City "Created city"
// @Failure 422 {object} map[string]string "Missing or invalid fields"
// @Router /cities [post]
func (controller *CityController) Create(c echo.Context) error {
	var dto model.CityParamsDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	created, err := controller.useCase.Create(dto)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateByID godoc
// @Summary Update a city
// @Description Full replace of the city's mutable fields
// @Tags cities
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Param city body model.CityParamsDTO true "City data"
// @Success 200 {object} entity.City "Updated city"
// @Failure 404 {object} map[string]string "City not found"
// @Failure 422 {object} map[string]string "Missing or invalid fields"
// @Router /cities/{id} [put]
func (controller *CityController) UpdateByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var dto model.CityParamsDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updated, err := controller.useCase.UpdateByID(id, dto)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteByID godoc
// @Summary Delete a city
// @Tags cities
// @Accept json
// @Produce json
// @Param id path int true "City ID"
// @Success 204 "City deleted"
// @Failure 404 {object} map[string]string "City not found"
// @Router /cities/{id} [delete]
func (controller *CityController) DeleteByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := controller.useCase.DeleteByID(id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
