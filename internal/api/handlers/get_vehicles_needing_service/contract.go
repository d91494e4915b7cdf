package get_vehicles_needing_service

import (
	"context"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type HealthService interface {
	GetVehiclesNeedingService(ctx context.Context) ([]domain.ServiceDueVehicle, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
