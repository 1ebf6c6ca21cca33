package city

import (
	"math"

	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/log"

	"go.uber.org/zap"
)

type cityUseCase struct {
	cityGateway db.CityGateway
}

func NewCityUseCase(cityGateway db.CityGateway) UseCase {
	return &cityUseCase{
		cityGateway: cityGateway,
	}
}

func (uc *cityUseCase) FindAll(page int, size int, filter model.CityFilter) (*model.Page[entity.City], error) {
	return uc.cityGateway.FindAll(page, size, filter)
}

func (uc *cityUseCase) FindByID(id uint) (*entity.City, error) {
	return uc.cityGateway.FindByID(id)
}

func (uc *cityUseCase) Create(params model.CityParamsDTO) (*entity.City, error) {
	if err := validateCityParams(params); err != nil {
		return nil, err
	}

	created, err := uc.cityGateway.Create(entity.City{
		Name:      params.Name,
		Country:   params.Country,
		Latitude:  *params.Latitude,
		Longitude: *params.Longitude,
	})
	if err != nil {
		return nil, err
	}

	log.Info("City created", zap.Uint("city_id", created.ID), zap.String("city_name", created.Name))
	return created, nil
}

func (uc *cityUseCase) UpdateByID(id uint, params model.CityParamsDTO) (*entity.City, error) {
	if err := validateCityParams(params); err != nil {
		return nil, err
	}

	return uc.cityGateway.UpdateByID(id, entity.City{
		Name:      params.Name,
		Country:   params.Country,
		Latitude:  *params.Latitude,
		Longitude: *params.Longitude,
	})
}

func (uc *cityUseCase) DeleteByID(id uint) error {
	return uc.cityGateway.DeleteByID(id)
}

// validateCityParams checks the required fields and coordinate ranges before
// anything reaches the database.
func validateCityParams(params model.CityParamsDTO) error {
	if params.Name == "" {
		return &model.ValidationError{Field: "name", Reason: "is required"}
	}
	if params.Latitude == nil {
		return &model.ValidationError{Field: "latitude", Reason: "is required"}
	}
	if params.Longitude == nil {
		return &model.ValidationError{Field: "longitude", Reason: "is required"}
	}

	latitude, longitude := *params.Latitude, *params.Longitude
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return &model.ValidationError{Field: "latitude", Reason: "must be a finite value between -90 and 90"}
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return &model.ValidationError{Field: "longitude", Reason: "must be a finite value between -180 and 180"}
	}

	return nil
}
