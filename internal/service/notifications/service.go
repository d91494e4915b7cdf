package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/metrics"
)

// Options параметры ежедневной проверки
type Options struct {
	Workers       int
	LookupTimeout time.Duration
	SiteURL       string
}

// Service рассылка напоминаний о повторном обслуживании
type Service struct {
	health   HealthResolver
	vehicles VehicleRepository
	sms      SMSSender
	model    domain.DecayModel
	opts     Options
	metrics  *metrics.Metrics
	logger   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
// collector может быть nil, если сбор метрик выключен
func NewService(
	health HealthResolver,
	vehicles VehicleRepository,
	sms SMSSender,
	model domain.DecayModel,
	opts Options,
	collector *metrics.Metrics,
	logger Logger,
) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Service{
		health:   health,
		vehicles: vehicles,
		sms:      sms,
		model:    model,
		opts:     opts,
		metrics:  collector,
		logger:   logger,
	}
}

// SendReminder отправляет владельцу напоминание о записи на обслуживание
// Возвращает false, если у владельца нет телефона или отправка не удалась
func (s *Service) SendReminder(ctx context.Context, vehicle *domain.Vehicle, record *domain.HealthRecord) bool {
	if !vehicle.HasReachableOwner() {
		s.logger.Warn("SendReminder: vehicle=%s owner=%s has no phone on file", vehicle.ID, vehicle.UserID)
		return false
	}

	message := HealthReminder(
		vehicle.Owner.FirstName,
		vehicle.DisplayName(),
		ProtectionPercent(record.DaysSinceService, s.model.OptimalProtectionDays),
		s.opts.SiteURL,
	)

	sent := s.sms.Send(ctx, vehicle.Owner.Phone, message)
	s.metrics.RecordSMS(sent)

	if sent {
		s.logger.Info("SendReminder: reminder sent for vehicle=%s, days_since_service=%d",
			vehicle.ID, record.DaysSinceService)
	}
	return sent
}

// ProcessDailyHealthChecks проверяет все автомобили и рассылает напоминания попавшим в окно записи
//
// Ошибка по одному автомобилю учитывается в Errors и не прерывает обработку остальных.
// Если список автомобилей получить не удалось, возвращается {0, 0, 1}.
// После отмены ctx новые автомобили не берутся в работу, начатые доводятся до конца или таймаута.
func (s *Service) ProcessDailyHealthChecks(ctx context.Context) domain.HealthCheckSummary {
	startedAt := time.Now()

	vehicles, err := s.vehicles.GetAll(ctx)
	if err != nil {
		s.logger.Error("ProcessDailyHealthChecks: failed to list vehicles: %v", err)
		s.metrics.RecordHealthCheck(metrics.OutcomeError)
		return domain.HealthCheckSummary{Errors: 1}
	}

	s.logger.Info("ProcessDailyHealthChecks: checking %d vehicles with %d workers", len(vehicles), s.opts.Workers)

	var checked, notified, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)

	for _, vehicle := range vehicles {
		if ctx.Err() != nil {
			s.logger.Warn("ProcessDailyHealthChecks: stopped before vehicle=%s: %v", vehicle.ID, ctx.Err())
			break
		}

		g.Go(func() error {
			// g.Go мог ждать свободного воркера дольше, чем жил ctx
			if ctx.Err() != nil {
				return nil
			}

			checked.Add(1)
			s.metrics.RecordHealthCheck(metrics.OutcomeChecked)

			sent, err := s.checkVehicle(ctx, vehicle)
			if err != nil {
				failed.Add(1)
				s.metrics.RecordHealthCheck(metrics.OutcomeError)
				s.logger.Error("ProcessDailyHealthChecks: vehicle=%s: %v", vehicle.ID, err)
				return nil
			}
			if sent {
				notified.Add(1)
				s.metrics.RecordHealthCheck(metrics.OutcomeNotified)
			}
			return nil
		})
	}

	_ = g.Wait()

	summary := domain.HealthCheckSummary{
		Checked:  int(checked.Load()),
		Notified: int(notified.Load()),
		Errors:   int(failed.Load()),
	}

	s.logger.Info("ProcessDailyHealthChecks: done in %s, checked=%d, notified=%d, errors=%d",
		time.Since(startedAt).Round(time.Millisecond), summary.Checked, summary.Notified, summary.Errors)
	return summary
}

// checkVehicle рассчитывает состояние одного автомобиля и при необходимости шлёт напоминание
// Начатая проверка не прерывается отменой ctx, её ограничивает только LookupTimeout
func (s *Service) checkVehicle(ctx context.Context, vehicle *domain.Vehicle) (bool, error) {
	workCtx := context.WithoutCancel(ctx)
	if s.opts.LookupTimeout > 0 {
		var cancel context.CancelFunc
		workCtx, cancel = context.WithTimeout(workCtx, s.opts.LookupTimeout)
		defer cancel()
	}

	record, err := s.resolve(workCtx, vehicle)
	if err != nil {
		return false, err
	}

	if !record.ShouldNotify {
		return false, nil
	}

	return s.SendReminder(workCtx, vehicle, record), nil
}

var errEmptyRecord = errors.New("resolver returned no health record")

type resolveResult struct {
	record *domain.HealthRecord
	err    error
}

// resolve рассчитывает состояние автомобиля в пределах дедлайна ctx
// Не дожидается резолвера, который игнорирует отмену контекста
func (s *Service) resolve(ctx context.Context, vehicle *domain.Vehicle) (*domain.HealthRecord, error) {
	done := make(chan resolveResult, 1)
	go func() {
		record, err := s.health.ResolveVehicleHealth(ctx, vehicle.ID)
		done <- resolveResult{record: record, err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && res.record == nil {
			return nil, errEmptyRecord
		}
		return res.record, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("health lookup aborted: %w", ctx.Err())
	}
}
