package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

// DailyChecker запускает одну ежедневную проверку
type DailyChecker interface {
	ProcessDailyHealthChecks(ctx context.Context) domain.HealthCheckSummary
}

// Scheduler периодически запускает ежедневную проверку внутри процесса
type Scheduler struct {
	checker  DailyChecker
	interval time.Duration
	logger   Logger
}

// NewScheduler создает планировщик с указанным периодом
func NewScheduler(checker DailyChecker, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		checker:  checker,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены ctx
// Первая проверка выполняется через interval после запуска
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler: daily health checks every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			summary := s.checker.ProcessDailyHealthChecks(ctx)
			s.logger.Info("Scheduler: run finished, checked=%d, notified=%d, errors=%d",
				summary.Checked, summary.Notified, summary.Errors)
		}
	}
}
