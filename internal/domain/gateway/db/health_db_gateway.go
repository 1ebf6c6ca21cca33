package db

import "city-weather-api/internal/domain/model"

type HealthDBGateway interface {
	Health() model.ComponentHealthStatus
}
