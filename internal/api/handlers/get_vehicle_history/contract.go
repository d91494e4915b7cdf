package get_vehicle_history

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/service/bookings/models"
)

type BookingService interface {
	GetVehicleHistory(ctx context.Context, vehicleID uuid.UUID) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
