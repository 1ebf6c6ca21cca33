package controller

import (
	"net/http"

	"city-weather-api/internal/domain/model"
	"city-weather-api/internal/domain/usecase/post"
	"city-weather-api/pkg/util/numberutils"

	"github.com/labstack/echo/v4"
)

type PostController struct {
	api     *echo.Group
	useCase post.UseCase
}

func NewPostController(api *echo.Group, useCase post.UseCase) *PostController {
	return &PostController{api: api, useCase: useCase}
}

// InitPostRoutes initializes post CRUD routes
func (controller *PostController) InitPostRoutes() {
	controller.api.POST("/posts", controller.Create)
	controller.api.GET("/posts", controller.FindAll)
	controller.api.GET("/posts/:id", controller.FindByID)
	controller.api.PUT("/posts/:id", controller.UpdateByID)
	controller.api.DELETE("/posts/:id", controller.DeleteByID)
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body model.CreatePostDTO true "Post data"
// @Success 201 {object} entity.Post "Created post"
// @Failure 404 {object} map[string]string "Owner not found"
// @Failure 422 {object} map[string]string "Missing required fields"
// @Router /posts [post]
func (controller *PostController) Create(c echo.Context) error {
	var dto model.CreatePostDTO
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
// @Summary List posts
// @Tags posts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Param ownerId query int false "Filter by owner"
// @Success 200 {object} model.Page[entity.Post] "Paginated list of posts"
// @Router /posts [get]
func (controller *PostController) FindAll(c echo.Context) error {
	page := numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	size := numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	var ownerID *uint
	if raw := c.QueryParam("ownerId"); raw != "" {
		id, err := numberutils.ToUintWithError(raw)
		if err != nil {
			return writeError(c, &model.ValidationError{Field: "ownerId", Reason: "must be a positive integer"})
		}
		ownerID = &id
	}

	posts, err := controller.useCase.FindAll(page, size, ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// FindByID godoc
// @Summary Get post by id
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} entity.Post "Post data"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [get]
func (controller *PostController) FindByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	postData, err := controller.useCase.FindByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, postData)
}

// UpdateByID godoc
// @Summary Update a post
// @Description Full replace of the post's title and content
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body model.UpdatePostDTO true "Post data"
// @Success 200 {object} entity.Post "Updated post"
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 422 {object} map[string]string "Missing required fields"
// @Router /posts/{id} [put]
func (controller *PostController) UpdateByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var dto model.UpdatePostDTO
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
// @Summary Delete a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [delete]
func (controller *PostController) DeleteByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := controller.useCase.DeleteByID(id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
