package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VehicleHealthService/internal/infra/storage/booking"
)

var errStorage = errors.New("connection reset by peer")

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookings struct {
	lastCompleted map[uuid.UUID]*domain.Booking
	failFor       map[uuid.UUID]bool
}

func (f *fakeBookings) GetLastCompletedByVehicle(_ context.Context, vehicleID uuid.UUID) (*domain.Booking, error) {
	if f.failFor[vehicleID] {
		return nil, errStorage
	}
	b, ok := f.lastCompleted[vehicleID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type fakeVehicles struct {
	all    []*domain.Vehicle
	err    error
	byUser map[uuid.UUID][]*domain.Vehicle
}

func (f *fakeVehicles) GetByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeVehicles) GetAll(_ context.Context) ([]*domain.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func completedDaysAgo(vehicleID uuid.UUID, days int) *domain.Booking {
	at := testNow.AddDate(0, 0, -days)
	return &domain.Booking{
		ID:          uuid.New(),
		VehicleID:   vehicleID,
		Status:      domain.StatusCompleted,
		CompletedAt: &at,
		UpdatedAt:   at,
	}
}

func newTestService(bookings *fakeBookings, vehicles *fakeVehicles) *Service {
	return NewService(
		bookings,
		vehicles,
		domain.DefaultDecayModel(),
		DefaultOptions(),
		fixedTime{t: testNow},
		nil,
		nopLogger{},
	)
}

func TestResolveVehicleHealth_TenDaysAgo(t *testing.T) {
	vehicleID := uuid.New()
	bookings := &fakeBookings{lastCompleted: map[uuid.UUID]*domain.Booking{
		vehicleID: completedDaysAgo(vehicleID, 10),
	}}
	svc := newTestService(bookings, &fakeVehicles{})

	record, err := svc.ResolveVehicleHealth(context.Background(), vehicleID)
	require.NoError(t, err)

	assert.Equal(t, vehicleID, record.VehicleID)
	assert.Equal(t, 10, record.DaysSinceService)
	assert.Equal(t, 56, record.HealthScore)
	assert.Equal(t, domain.HealthFair, record.Status)
	assert.False(t, record.ShouldNotify)
	require.NotNil(t, record.LastServiceDate)
	assert.Equal(t, testNow.AddDate(0, 0, 11), record.NextRecommendedService)
}

func TestResolveVehicleHealth_NoHistory(t *testing.T) {
	vehicleID := uuid.New()
	svc := newTestService(&fakeBookings{}, &fakeVehicles{})

	record, err := svc.ResolveVehicleHealth(context.Background(), vehicleID)
	require.NoError(t, err)

	assert.Nil(t, record.LastServiceDate)
	assert.Equal(t, domain.NoServiceDays, record.DaysSinceService)
	assert.Equal(t, 0, record.HealthScore)
	assert.Equal(t, domain.HealthCritical, record.Status)
	assert.Equal(t, testNow, record.NextRecommendedService)
	assert.False(t, record.ShouldNotify)
}

func TestResolveVehicleHealth_FallsBackToUpdatedAt(t *testing.T) {
	vehicleID := uuid.New()
	legacy := &domain.Booking{
		VehicleID: vehicleID,
		Status:    domain.StatusCompleted,
		UpdatedAt: testNow.AddDate(0, 0, -20),
	}
	svc := newTestService(&fakeBookings{lastCompleted: map[uuid.UUID]*domain.Booking{vehicleID: legacy}}, &fakeVehicles{})

	record, err := svc.ResolveVehicleHealth(context.Background(), vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 20, record.DaysSinceService)
	assert.True(t, record.ShouldNotify)
}

func TestResolveVehicleHealth_PartialDayTruncates(t *testing.T) {
	vehicleID := uuid.New()
	at := testNow.Add(-23 * time.Hour)
	b := &domain.Booking{VehicleID: vehicleID, Status: domain.StatusCompleted, CompletedAt: &at}
	svc := newTestService(&fakeBookings{lastCompleted: map[uuid.UUID]*domain.Booking{vehicleID: b}}, &fakeVehicles{})

	record, err := svc.ResolveVehicleHealth(context.Background(), vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 0, record.DaysSinceService)
	assert.Equal(t, 100, record.HealthScore)
}

func TestGetVehicleHealth_StorageFailureReturnsNil(t *testing.T) {
	vehicleID := uuid.New()
	svc := newTestService(&fakeBookings{failFor: map[uuid.UUID]bool{vehicleID: true}}, &fakeVehicles{})

	_, err := svc.ResolveVehicleHealth(context.Background(), vehicleID)
	assert.True(t, errors.Is(err, ErrInternal))

	assert.Nil(t, svc.GetVehicleHealth(context.Background(), vehicleID))
}

func TestGetUserVehiclesHealth_DropsFailedLookups(t *testing.T) {
	userID := uuid.New()
	ok1, broken, ok2 := uuid.New(), uuid.New(), uuid.New()

	vehicles := &fakeVehicles{byUser: map[uuid.UUID][]*domain.Vehicle{
		userID: {{ID: ok1, UserID: userID}, {ID: broken, UserID: userID}, {ID: ok2, UserID: userID}},
	}}
	bookings := &fakeBookings{
		lastCompleted: map[uuid.UUID]*domain.Booking{ok1: completedDaysAgo(ok1, 3)},
		failFor:       map[uuid.UUID]bool{broken: true},
	}
	svc := newTestService(bookings, vehicles)

	records, err := svc.GetUserVehiclesHealth(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, ok1, records[0].VehicleID)
	assert.Equal(t, 86, records[0].HealthScore)
	assert.Equal(t, ok2, records[1].VehicleID)
	assert.Equal(t, 0, records[1].HealthScore)
}

func TestGetUserVehiclesHealth_RepositoryError(t *testing.T) {
	svc := newTestService(&fakeBookings{}, &fakeVehicles{err: errStorage})

	_, err := svc.GetUserVehiclesHealth(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestGetVehiclesNeedingService(t *testing.T) {
	owner := &domain.OwnerContact{FirstName: "Thandi", LastName: "Nkosi", Phone: "0821234567"}

	fifteen := &domain.Vehicle{ID: uuid.New(), Brand: "VW", Model: "Polo", Owner: owner}
	eighteenA := &domain.Vehicle{ID: uuid.New(), Brand: "Toyota", Model: "Hilux", Owner: owner}
	thirty := &domain.Vehicle{ID: uuid.New(), Brand: "BMW", Model: "X3"}
	eighteenB := &domain.Vehicle{ID: uuid.New(), Brand: "Ford", Model: "Ranger", Owner: owner}
	fresh := &domain.Vehicle{ID: uuid.New(), Brand: "Kia", Model: "Rio"}
	neverServed := &domain.Vehicle{ID: uuid.New(), Brand: "Audi", Model: "A4"}
	broken := &domain.Vehicle{ID: uuid.New(), Brand: "Mazda", Model: "CX-5"}

	vehicles := &fakeVehicles{all: []*domain.Vehicle{fifteen, eighteenA, thirty, eighteenB, fresh, neverServed, broken}}
	bookings := &fakeBookings{
		lastCompleted: map[uuid.UUID]*domain.Booking{
			fifteen.ID:   completedDaysAgo(fifteen.ID, 15),
			eighteenA.ID: completedDaysAgo(eighteenA.ID, 18),
			thirty.ID:    completedDaysAgo(thirty.ID, 30),
			eighteenB.ID: completedDaysAgo(eighteenB.ID, 18),
			fresh.ID:     completedDaysAgo(fresh.ID, 0),
		},
		failFor: map[uuid.UUID]bool{broken.ID: true},
	}
	svc := newTestService(bookings, vehicles)

	due, err := svc.GetVehiclesNeedingService(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 4)

	assert.Equal(t, thirty.ID, due[0].Vehicle.ID)
	assert.Equal(t, 11, due[0].HealthScore)
	assert.Equal(t, "Unknown", due[0].OwnerName())

	assert.Equal(t, eighteenA.ID, due[1].Vehicle.ID)
	assert.Equal(t, eighteenB.ID, due[2].Vehicle.ID)
	assert.Equal(t, 27, due[1].HealthScore)
	assert.Equal(t, 27, due[2].HealthScore)

	assert.Equal(t, fifteen.ID, due[3].Vehicle.ID)
	assert.Equal(t, 37, due[3].HealthScore)
	assert.Equal(t, 15, due[3].DaysSinceService)
	assert.Equal(t, "Thandi Nkosi", due[3].OwnerName())
	assert.Equal(t, "0821234567", due[3].Owner.Phone)

	for _, d := range due {
		assert.NotEqual(t, neverServed.ID, d.Vehicle.ID)
	}

	again, err := svc.GetVehiclesNeedingService(context.Background())
	require.NoError(t, err)
	assert.Equal(t, due, again)
}

func TestCalculateRebookingOpportunity(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	vehicles := &fakeVehicles{all: []*domain.Vehicle{{ID: a}, {ID: b}}}
	bookings := &fakeBookings{lastCompleted: map[uuid.UUID]*domain.Booking{
		a: completedDaysAgo(a, 20),
		b: completedDaysAgo(b, 25),
	}}
	svc := newTestService(bookings, vehicles)

	opportunity, err := svc.CalculateRebookingOpportunity(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, opportunity.VehiclesDue)
	assert.Equal(t, 1200.0, opportunity.EstimatedRevenue)
	assert.Equal(t, 600.0, opportunity.AverageBookingValue)
}

func TestCalculateRebookingOpportunity_RepositoryError(t *testing.T) {
	svc := newTestService(&fakeBookings{}, &fakeVehicles{err: errStorage})

	_, err := svc.CalculateRebookingOpportunity(context.Background())
	assert.True(t, errors.Is(err, ErrInternal))
}
