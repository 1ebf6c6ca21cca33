package db

import (
	"errors"
	"fmt"
	"strings"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/model"

	"gorm.io/gorm"
)

// citySortColumns whitelists the columns a caller may sort by. Anything
// outside the whitelist falls back to id so raw query params never reach
// the ORDER BY clause.
var citySortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"country":    "country",
	"latitude":   "latitude",
	"longitude":  "longitude",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type GormCityGateway struct {
	DB *gorm.DB
}

var _ CityGateway = (*GormCityGateway)(nil)

func NewGormCityGateway(db *gorm.DB) *GormCityGateway {
	return &GormCityGateway{DB: db}
}

// FindAll retrieves cities with pagination and optional filters. Name and
// country matching is case-insensitive; LOWER(column) LIKE keeps the query
// portable between postgres and sqlite.
func (gateway *GormCityGateway) FindAll(page int, size int, filter model.CityFilter) (*model.Page[entity.City], error) {
	if page < 0 {
		page = 0
	}

	query := gateway.DB.Model(&entity.City{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Country != "" {
		query = query.Where("LOWER(country) LIKE ?", "%"+strings.ToLower(filter.Country)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := citySortColumns[strings.ToLower(filter.SortBy)]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		direction = "DESC"
	}

	cities := make([]entity.City, 0)
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(page * size).
		Limit(size).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}

	return model.NewPage(cities, page, size, total), nil
}

// FindAllWithKeysetPagination retrieves cities using key-set pagination by ID
func (gateway *GormCityGateway) FindAllWithKeysetPagination(lastID uint, size int) ([]entity.City, error) {
	cities := make([]entity.City, 0)

	query := gateway.DB.Model(&entity.City{})
	if lastID > 0 {
		query = query.Where("id > ?", lastID)
	}

	err := query.Order("id ASC").Limit(size).Find(&cities).Error
	if err != nil {
		return nil, err
	}

	return cities, nil
}

func (gateway *GormCityGateway) FindByID(id uint) (*entity.City, error) {
	var city entity.City

	err := gateway.DB.First(&city, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("city", id)
		}
		return nil, err
	}

	return &city, nil
}

func (gateway *GormCityGateway) Create(city entity.City) (*entity.City, error) {
	if err := gateway.DB.Create(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// UpdateByID replaces the mutable fields of an existing city. The update is
// a full replace, not a patch.
func (gateway *GormCityGateway) UpdateByID(id uint, updated entity.City) (*entity.City, error) {
	city, err := gateway.FindByID(id)
	if err != nil {
		return nil, err
	}

	city.Name = updated.Name
	city.Country = updated.Country
	city.Latitude = updated.Latitude
	city.Longitude = updated.Longitude

	if err := gateway.DB.Save(city).Error; err != nil {
		return nil, err
	}

	return city, nil
}

func (gateway *GormCityGateway) DeleteByID(id uint) error {
	result := gateway.DB.Delete(&entity.City{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.NewNotFoundError("city", id)
	}
	return nil
}
