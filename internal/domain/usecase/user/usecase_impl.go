package user

import (
	"city-weather-api/internal/domain/entity"
	"city-weather-api/internal/domain/gateway/db"
	"city-weather-api/internal/domain/model"
	"city-weather-api/pkg/log"

	"go.uber.org/zap"
)

type userUseCase struct {
	userGateway db.UserGateway
}

func NewUserUseCase(userGateway db.UserGateway) UseCase {
	return &userUseCase{
		userGateway: userGateway,
	}
}

func (uc *userUseCase) Create(params model.CreateUserDTO) (*entity.User, error) {
	if params.Name == "" {
		return nil, &model.ValidationError{Field: "name", Reason: "is required"}
	}

	created, err := uc.userGateway.Create(entity.User{Name: params.Name})
	if err != nil {
		return nil, err
	}

	log.Info("User created", zap.Uint("user_id", created.ID))
	return created, nil
}

func (uc *userUseCase) FindAll(page int, size int) (*model.Page[entity.User], error) {
	return uc.userGateway.FindAll(page, size)
}

func (uc *userUseCase) FindByID(id uint) (*entity.User, error) {
	return uc.userGateway.FindByID(id)
}

func (uc *userUseCase) AddVisitedCity(userID uint, cityID uint) error {
	_, err := uc.userGateway.AddVisitedCity(userID, cityID)
	return err
}

func (uc *userUseCase) RemoveVisitedCity(userID uint, cityID uint) error {
	_, err := uc.userGateway.RemoveVisitedCity(userID, cityID)
	return err
}

func (uc *userUseCase) FindVisitedCities(userID uint) ([]entity.City, error) {
	return uc.userGateway.FindVisitedCities(userID)
}
