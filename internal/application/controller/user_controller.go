package controller

import (
	"net/http"

	"city-weather-api/internal/domain/model"
	"city-weather-api/internal/domain/usecase/user"
	"city-weather-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	api     *echo.Group
	useCase user.UseCase
}

func NewUserController(api *echo.Group, useCase user.UseCase) *UserController {
	return &UserController{api: api, useCase: useCase}
}

// InitUserRoutes initializes user and visited-cities routes
func (controller *UserController) InitUserRoutes() {
	controller.api.POST("/users", controller.Create)
	controller.api.GET("/users", controller.FindAll)
	controller.api.GET("/users/:id", controller.FindByID)
	controller.api.GET("/users/:id/visited-cities", controller.FindVisitedCities)
	controller.api.PUT("/users/:id/visited-cities/:cityId", controller.AddVisitedCity)
	controller.api.DELETE("/users/:id/visited-cities/:cityId", controller.RemoveVisitedCity)
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.CreateUserDTO true "User data"
// @Success 201 {object} entity.User "Created user"
// @Failure 422 {object} map[string]string "Missing required fields"
// @Router /users [post]
func (controller *UserController) Create(c echo.Context) error {
	var dto model.CreateUserDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	created, err := controller.useCase.Create(dto)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// FindAll godoc
// @Summary List users
// @Description Retrieve users with their posts and visited cities
// @Tags users
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.User] "Paginated list of users"
// @Router /users [get]
func (controller *UserController) FindAll(c echo.Context) error {
	page := numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	size := numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	users, err := controller.useCase.FindAll(page, size)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// FindByID godoc
// @Summary Get user by id
// @Description Retrieve a user with posts and visited cities materialized
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} entity.User "User data"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (controller *UserController) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	userData, err := controller.useCase.FindByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userData)
}

// FindVisitedCities godoc
// @Summary List a user's visited cities
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} entity.City "Visited cities"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id}/visited-cities [get]
func (controller *UserController) FindVisitedCities(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cities, err := controller.useCase.FindVisitedCities(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}

// AddVisitedCity godoc
// @Summary Mark a city as visited
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param cityId path int true "City ID"
// @Success 204 "City linked"
// @Failure 404 {object} map[string]string "User or city not found"
// @Router /users/{id}/visited-cities/{cityId} [put]
func (controller *UserController) AddVisitedCity(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	cityID, err := parseIDParam(c, "cityId")
	if err != nil {
		return writeError(c, err)
	}

	if err := controller.useCase.AddVisitedCity(userID, cityID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveVisitedCity godoc
// @Summary Unmark a visited city
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param cityId path int true "City ID"
// @Success 204 "City unlinked"
// @Failure 404 {object} map[string]string "User or city not found"
// @Router /users/{id}/visited-cities/{cityId} [delete]
func (controller *UserController) RemoveVisitedCity(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	cityID, err := parseIDParam(c, "cityId")
	if err != nil {
		return writeError(c, err)
	}

	if err := controller.useCase.RemoveVisitedCity(userID, cityID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
