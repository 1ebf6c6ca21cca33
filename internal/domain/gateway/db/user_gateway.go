package db

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type UserGateway interface {
	FindAll(page int, size int) (*model.Page[entity.User], error)
	FindByID(id uint) (*entity.User, error)

	Create(user entity.User) (*entity.User, error)

	// Visited cities association
	AddVisitedCity(userID uint, cityID uint) (*entity.User, error)
	RemoveVisitedCity(userID uint, cityID uint) (*entity.User, error)
	FindVisitedCities(userID uint) ([]entity.City, error)
}
