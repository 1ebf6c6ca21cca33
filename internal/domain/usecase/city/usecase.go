package city

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type UseCase interface {
	// FindAll returns a paginated list of cities with optional filters
	FindAll(page int, size int, filter model.CityFilter) (*model.Page[entity.City], error)

	// FindByID returns a single city
	FindByID(id uint) (*entity.City, error)

	// Create validates the params and stores a new city
	Create(params model.CityParamsDTO) (*entity.City, error)

	// UpdateByID replaces the mutable fields of an existing city
	UpdateByID(id uint, params model.CityParamsDTO) (*entity.City, error)

	// DeleteByID removes a city
	DeleteByID(id uint) error
}
