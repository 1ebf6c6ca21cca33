package health

import "city-weather-api/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}
