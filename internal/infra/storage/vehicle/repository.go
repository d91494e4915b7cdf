package vehicle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	"github.com/m04kA/SMC-VehicleHealthService/pkg/psqlbuilder"
)

// Колонки автомобиля вместе с контактами владельца из user_profiles
// Профиля может не быть, поэтому p.* выбираются через LEFT JOIN
var vehicleWithOwnerColumns = []string{
	"v.id",
	"v.user_id",
	"v.brand",
	"v.model",
	"v.year",
	"v.size_category",
	"v.color",
	"v.license_plate",
	"v.created_at",
	"v.updated_at",
	"p.user_id",
	"p.first_name",
	"p.last_name",
	"p.phone",
}

// Repository репозиторий для работы с автомобилями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectWithOwner() squirrel.SelectBuilder {
	return psqlbuilder.Select(vehicleWithOwnerColumns...).
		From("vehicles v").
		LeftJoin("user_profiles p ON p.user_id = v.user_id")
}

// GetByUserID получает все автомобили пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	query, args, err := selectWithOwner().
		Where(squirrel.Eq{"v.user_id": userID.String()}).
		OrderBy("v.created_at ASC", "v.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByUserID", query, args)
}

// GetAll получает все автомобили системы
// Порядок стабилен, отчёты опираются на него при равных показателях
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query, args, err := selectWithOwner().
		OrderBy("v.created_at ASC", "v.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetAll", query, args)
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return vehicles, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var (
		vehicle   domain.Vehicle
		year      sql.NullInt64
		color     sql.NullString
		ownerID   sql.NullString
		firstName sql.NullString
		lastName  sql.NullString
		phone     sql.NullString
	)

	err := row.Scan(
		&vehicle.ID,
		&vehicle.UserID,
		&vehicle.Brand,
		&vehicle.Model,
		&year,
		&vehicle.SizeCategory,
		&color,
		&vehicle.LicensePlate,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
		&ownerID,
		&firstName,
		&lastName,
		&phone,
	)
	if err != nil {
		return nil, err
	}

	if year.Valid {
		y := int(year.Int64)
		vehicle.Year = &y
	}
	if color.Valid {
		vehicle.Color = &color.String
	}

	// Нет профиля - нет контактов
	if ownerID.Valid {
		vehicle.Owner = &domain.OwnerContact{
			FirstName: firstName.String,
			LastName:  lastName.String,
			Phone:     phone.String,
		}
	}

	return &vehicle, nil
}
