package complete_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/service/bookings/models"
)

type BookingService interface {
	CompleteBooking(ctx context.Context, bookingID uuid.UUID, completedAt *time.Time) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
