package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"slot_id",
	"status",
	"service_type",
	"grand_total",
	"completed_at",
	"created_at",
	"updated_at",
}

// completableStatuses статусы, из которых техник может закрыть заказ
var completableStatuses = []string{
	string(domain.StatusConfirmed),
	string(domain.StatusInProgress),
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByVehicleID получает историю бронирований автомобиля, сначала новые
func (r *Repository) GetByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID.String()}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByVehicleID - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByVehicleID - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetLastCompletedByVehicle получает последнее завершённое бронирование автомобиля
// Возвращает ErrBookingNotFound, если автомобиль ещё ни разу не обслуживался
//
// Строки, закрытые до появления completed_at, упорядочиваются по updated_at
func (r *Repository) GetLastCompletedByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID.String()}).
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)}).
		OrderBy("COALESCE(completed_at, updated_at) DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLastCompletedByVehicle - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastCompletedByVehicle - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Complete переводит бронирование в статус completed и фиксирует время завершения
// Обновление выполняется только из статусов confirmed/in_progress
func (r *Repository) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCompleted)).
		Set("completed_at", completedAt).
		Set("updated_at", completedAt).
		Where(squirrel.Eq{"id": id.String()}).
		Where(squirrel.Eq{"status": completableStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotComplete
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var completedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VehicleID,
		&booking.SlotID,
		&booking.Status,
		&booking.ServiceType,
		&booking.GrandTotal,
		&completedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		booking.CompletedAt = &t
	}

	return &booking, nil
}
