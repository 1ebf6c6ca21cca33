package db

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type CityGateway interface {
	FindAll(page int, size int, filter model.CityFilter) (*model.Page[entity.City], error)
	FindAllWithKeysetPagination(lastID uint, size int) ([]entity.City, error)
	FindByID(id uint) (*entity.City, error)

	Create(city entity.City) (*entity.City, error)
	UpdateByID(id uint, updated entity.City) (*entity.City, error)
	DeleteByID(id uint) error
}
