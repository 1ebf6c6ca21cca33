package post

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type UseCase interface {
	// Create validates the params, checks the owner exists and stores a
	// new post
	Create(params model.CreatePostDTO) (*entity.Post, error)

	// FindAll returns a paginated list of posts, optionally filtered by
	// owner
	FindAll(page int, size int, ownerID *uint) (*model.Page[entity.Post], error)

	// FindByID returns a single post
	FindByID(id uint) (*entity.Post, error)

	// UpdateByID replaces the mutable fields of an existing post
	UpdateByID(id uint, params model.UpdatePostDTO) (*entity.Post, error)

	// DeleteByID removes a post
	DeleteByID(id uint) error
}
