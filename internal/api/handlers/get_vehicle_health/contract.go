package get_vehicle_health

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type HealthService interface {
	GetVehicleHealth(ctx context.Context, vehicleID uuid.UUID) *domain.HealthRecord
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
