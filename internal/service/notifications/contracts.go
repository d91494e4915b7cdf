package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

// HealthResolver рассчитывает состояние автомобиля
// Ошибка означает сбой чтения истории, а не её отсутствие
type HealthResolver interface {
	ResolveVehicleHealth(ctx context.Context, vehicleID uuid.UUID) (*domain.HealthRecord, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)
}

// SMSSender отправляет SMS и сообщает только об успехе
type SMSSender interface {
	Send(ctx context.Context, to string, body string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
