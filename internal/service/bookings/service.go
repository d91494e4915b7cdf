package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VehicleHealthService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetVehicleHistory получает историю бронирований автомобиля, сначала новые
func (s *Service) GetVehicleHistory(ctx context.Context, vehicleID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetVehicleHistory: fetching bookings for vehicle=%s", vehicleID)

	bookings, err := s.bookingRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		s.logger.Error("GetVehicleHistory: repository error for vehicle=%s: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: GetVehicleHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVehicleHistory: successfully fetched %d bookings for vehicle=%s", len(bookings), vehicleID)
	return models.FromDomainBookingList(vehicleID.String(), bookings), nil
}

// CompleteBooking отмечает бронирование выполненным, с этого момента отсчитывается износ покрытия
// completedAt == nil означает "сейчас"; время из будущего отклоняется
func (s *Service) CompleteBooking(ctx context.Context, bookingID uuid.UUID, completedAt *time.Time) (*models.BookingResponse, error) {
	s.logger.Info("CompleteBooking: completing booking id=%s", bookingID)

	now := s.timeProvider.Now()
	at := now
	if completedAt != nil {
		if completedAt.After(now) {
			s.logger.Warn("CompleteBooking: completion time %s is in the future", completedAt.Format(time.RFC3339))
			return nil, ErrInvalidCompletionTime
		}
		at = *completedAt
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CompleteBooking: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CompleteBooking: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CompleteBooking - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли завершить бронирование
	if !booking.CanBeCompleted() {
		s.logger.Warn("CompleteBooking: booking id=%s cannot be completed, status=%s", bookingID, booking.Status)
		return nil, ErrCannotComplete
	}

	if err := s.bookingRepo.Complete(ctx, bookingID, at); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotComplete) {
			// Статус успели изменить параллельно
			s.logger.Warn("CompleteBooking: booking id=%s changed status concurrently", bookingID)
			return nil, ErrCannotComplete
		}
		s.logger.Error("CompleteBooking: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CompleteBooking - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCompleted
	booking.CompletedAt = &at
	booking.UpdatedAt = at

	s.logger.Info("CompleteBooking: booking id=%s completed for vehicle=%s", bookingID, booking.VehicleID)
	return models.FromDomainBooking(booking), nil
}
