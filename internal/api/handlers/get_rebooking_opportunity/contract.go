package get_rebooking_opportunity

import (
	"context"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type HealthService interface {
	CalculateRebookingOpportunity(ctx context.Context) (*domain.RebookingOpportunity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
