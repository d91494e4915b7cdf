package get_user_vehicles_health

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type HealthService interface {
	GetUserVehiclesHealth(ctx context.Context, userID uuid.UUID) ([]domain.HealthRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
