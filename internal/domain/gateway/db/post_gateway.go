package db

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"
)

type PostGateway interface {
	FindAll(page int, size int, ownerID *uint) (*model.Page[entity.Post], error)
	FindByID(id uint) (*entity.Post, error)

	Create(post entity.Post) (*entity.Post, error)
	UpdateByID(id uint, updated entity.Post) (*entity.Post, error)
	DeleteByID(id uint) error
}
