package db

import (
	"errors"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"

	"gorm.io/gorm"
)

type GormUserGateway struct {
	DB *gorm.DB
}

var _ UserGateway = (*GormUserGateway)(nil)

func NewGormUserGateway(db *gorm.DB) *GormUserGateway {
	return &GormUserGateway{DB: db}
}

func (gateway *GormUserGateway) FindAll(page int, size int) (*model.Page[entity.User], error) {
	if page < 0 {
		page = 0
	}

	var total int64
	if err := gateway.DB.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	users := make([]entity.User, 0)
	err := gateway.DB.
		Preload("Posts").
		Preload("VisitedCities").
		Order("id ASC").
		Offset(page * size).
		Limit(size).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return model.NewPage(users, page, size, total), nil
}

func (gateway *GormUserGateway) FindByID(id uint) (*entity.User, error) {
	var user entity.User

	err := gateway.DB.
		Preload("Posts").
		Preload("VisitedCities").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("user", id)
		}
		return nil, err
	}

	return &user, nil
}

func (gateway *GormUserGateway) Create(user entity.User) (*entity.User, error) {
	if err := gateway.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddVisitedCity links a city to the user's visited set. Linking the same
// city twice is a no-op on the association table.
func (gateway *GormUserGateway) AddVisitedCity(userID uint, cityID uint) (*entity.User, error) {
	user, err := gateway.FindByID(userID)
	if err != nil {
		return nil, err
	}

	var city entity.City
	if err := gateway.DB.First(&city, cityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("city", cityID)
		}
		return nil, err
	}

	if err := gateway.DB.Model(user).Association("VisitedCities").Append(&city); err != nil {
		return nil, err
	}

	return gateway.FindByID(userID)
}

func (gateway *GormUserGateway) RemoveVisitedCity(userID uint, cityID uint) (*entity.User, error) {
	user, err := gateway.FindByID(userID)
	if err != nil {
		return nil, err
	}

	var city entity.City
	if err := gateway.DB.First(&city, cityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("city", cityID)
		}
		return nil, err
	}

	if err := gateway.DB.Model(user).Association("VisitedCities").Delete(&city); err != nil {
		return nil, err
	}

	return gateway.FindByID(userID)
}

func (gateway *GormUserGateway) FindVisitedCities(userID uint) ([]entity.City, error) {
	user, err := gateway.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user.VisitedCities, nil
}
