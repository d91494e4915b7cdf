package health

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetLastCompletedByVehicle возвращает ErrBookingNotFound, если завершённых бронирований нет
	GetLastCompletedByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.Booking, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error)
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
