package run_health_checks

import (
	"context"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type NotificationService interface {
	ProcessDailyHealthChecks(ctx context.Context) domain.HealthCheckSummary
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
