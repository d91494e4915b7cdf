package health

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VehicleHealthService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/metrics"
)

// Options параметры отчётов, не относящиеся к модели износа
type Options struct {
	NeedsServiceBelow   int
	AverageBookingValue float64
}

// DefaultOptions значения отчётов по умолчанию
func DefaultOptions() Options {
	return Options{
		NeedsServiceBelow:   domain.DefaultNeedsServiceBelow,
		AverageBookingValue: domain.DefaultAverageBookingValue,
	}
}

// Service сервис расчёта состояния защитного покрытия автомобилей
type Service struct {
	bookingRepo  BookingRepository
	vehicleRepo  VehicleRepository
	model        domain.DecayModel
	opts         Options
	timeProvider TimeProvider
	metrics      *metrics.Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса
// collector может быть nil, если сбор метрик выключен
func NewService(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	model domain.DecayModel,
	opts Options,
	timeProvider TimeProvider,
	collector *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		model:        model,
		opts:         opts,
		timeProvider: timeProvider,
		metrics:      collector,
		logger:       logger,
	}
}

// ResolveVehicleHealth рассчитывает состояние автомобиля по последнему завершённому бронированию
// Отсутствие истории обслуживания не ошибка: возвращается запись с 999 днями и нулевым баллом
func (s *Service) ResolveVehicleHealth(ctx context.Context, vehicleID uuid.UUID) (*domain.HealthRecord, error) {
	var lastService *domain.Booking

	booking, err := s.bookingRepo.GetLastCompletedByVehicle(ctx, vehicleID)
	switch {
	case err == nil:
		lastService = booking
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		// Автомобиль ещё не обслуживался
	default:
		return nil, fmt.Errorf("%w: ResolveVehicleHealth - last completed booking for vehicle=%s: %v",
			ErrInternal, vehicleID, err)
	}

	record := s.evaluate(vehicleID, lastService)
	s.metrics.ObserveHealthScore(string(record.Status), record.HealthScore)

	return &record, nil
}

// GetVehicleHealth возвращает состояние автомобиля или nil, если историю не удалось прочитать
// Ошибка хранилища логируется и не передаётся вызывающему
func (s *Service) GetVehicleHealth(ctx context.Context, vehicleID uuid.UUID) *domain.HealthRecord {
	record, err := s.ResolveVehicleHealth(ctx, vehicleID)
	if err != nil {
		s.logger.Error("GetVehicleHealth: failed to resolve health for vehicle=%s: %v", vehicleID, err)
		return nil
	}

	return record
}

// GetUserVehiclesHealth возвращает состояние всех автомобилей пользователя
// Автомобили, для которых расчёт не удался, пропускаются
func (s *Service) GetUserVehiclesHealth(ctx context.Context, userID uuid.UUID) ([]domain.HealthRecord, error) {
	s.logger.Info("GetUserVehiclesHealth: fetching vehicles for user=%s", userID)

	vehicles, err := s.vehicleRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserVehiclesHealth: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserVehiclesHealth - repository error: %v", ErrInternal, err)
	}

	records := make([]domain.HealthRecord, 0, len(vehicles))
	for _, v := range vehicles {
		record := s.GetVehicleHealth(ctx, v.ID)
		if record == nil {
			continue
		}
		records = append(records, *record)
	}

	s.logger.Info("GetUserVehiclesHealth: resolved %d of %d vehicles for user=%s",
		len(records), len(vehicles), userID)
	return records, nil
}

// GetVehiclesNeedingService возвращает автомобили с баллом в интервале (0, NeedsServiceBelow),
// самые срочные первыми
// Автомобили без истории (балл 0) и с ошибкой расчёта в отчёт не попадают
func (s *Service) GetVehiclesNeedingService(ctx context.Context) ([]domain.ServiceDueVehicle, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetVehiclesNeedingService: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetVehiclesNeedingService - repository error: %v", ErrInternal, err)
	}

	due := make([]domain.ServiceDueVehicle, 0)
	for _, v := range vehicles {
		record := s.GetVehicleHealth(ctx, v.ID)
		if record == nil || !record.NeedsService(s.opts.NeedsServiceBelow) {
			continue
		}

		item := domain.ServiceDueVehicle{
			Vehicle:          v,
			HealthScore:      record.HealthScore,
			DaysSinceService: record.DaysSinceService,
		}
		if v.Owner != nil {
			item.Owner = *v.Owner
		}
		due = append(due, item)
	}

	// Порядок при равных баллах совпадает с порядком выборки
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].HealthScore < due[j].HealthScore
	})

	s.logger.Info("GetVehiclesNeedingService: %d of %d vehicles need service", len(due), len(vehicles))
	return due, nil
}

// CalculateRebookingOpportunity оценивает выручку от повторных записей
func (s *Service) CalculateRebookingOpportunity(ctx context.Context) (*domain.RebookingOpportunity, error) {
	due, err := s.GetVehiclesNeedingService(ctx)
	if err != nil {
		return nil, err
	}

	opportunity := domain.NewRebookingOpportunity(len(due), s.opts.AverageBookingValue)
	return &opportunity, nil
}

func (s *Service) evaluate(vehicleID uuid.UUID, lastService *domain.Booking) domain.HealthRecord {
	now := s.timeProvider.Now()
	if lastService == nil {
		return s.model.Evaluate(vehicleID, nil, now)
	}

	serviceTime := lastService.ServiceTime()
	return s.model.Evaluate(vehicleID, &serviceTime, now)
}
