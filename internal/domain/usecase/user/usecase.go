package user

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type UseCase interface {
	// Create validates the params and stores a new user
	Create(params model.CreateUserDTO) (*entity.User, error)

	// FindAll returns a paginated list of users with posts and visited
	// cities materialized
	FindAll(page int, size int) (*model.Page[entity.User], error)

	// FindByID returns a single user with posts and visited cities
	FindByID(id uint) (*entity.User, error)

	// AddVisitedCity links a city to the user's visited set
	AddVisitedCity(userID uint, cityID uint) error

	// RemoveVisitedCity unlinks a city from the user's visited set
	RemoveVisitedCity(userID uint, cityID uint) error

	// FindVisitedCities returns the cities a user has visited
	FindVisitedCities(userID uint) ([]entity.City, error)
}
