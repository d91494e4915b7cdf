package bookings

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

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	byID        map[uuid.UUID]*domain.Booking
	history     []*domain.Booking
	historyErr  error
	completeErr error
	completedAt *time.Time
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetByVehicleID(context.Context, uuid.UUID) ([]*domain.Booking, error) {
	return f.history, f.historyErr
}

func (f *fakeRepo) Complete(_ context.Context, _ uuid.UUID, at time.Time) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completedAt = &at
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, fixedTime{t: testNow}, nopLogger{})
}

func TestGetVehicleHistory(t *testing.T) {
	vehicleID := uuid.New()
	completedAt := testNow.AddDate(0, 0, -3)
	repo := &fakeRepo{history: []*domain.Booking{
		{ID: uuid.New(), VehicleID: vehicleID, Status: domain.StatusPending, CreatedAt: testNow},
		{ID: uuid.New(), VehicleID: vehicleID, Status: domain.StatusCompleted, CompletedAt: &completedAt, CreatedAt: completedAt},
	}}

	resp, err := newTestService(repo).GetVehicleHistory(context.Background(), vehicleID)
	require.NoError(t, err)

	assert.Equal(t, vehicleID.String(), resp.VehicleID)
	assert.Equal(t, 2, resp.Total)
	assert.Nil(t, resp.Bookings[0].CompletedAt)
	require.NotNil(t, resp.Bookings[1].CompletedAt)
	assert.Equal(t, "2024-06-12T12:00:00Z", *resp.Bookings[1].CompletedAt)
}

func TestGetVehicleHistory_RepositoryError(t *testing.T) {
	repo := &fakeRepo{historyErr: errors.New("connection reset")}

	_, err := newTestService(repo).GetVehicleHistory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCompleteBooking(t *testing.T) {
	confirmedID, pendingID, inProgressID := uuid.New(), uuid.New(), uuid.New()
	vehicleID := uuid.New()

	newRepo := func() *fakeRepo {
		return &fakeRepo{byID: map[uuid.UUID]*domain.Booking{
			confirmedID:  {ID: confirmedID, VehicleID: vehicleID, Status: domain.StatusConfirmed},
			pendingID:    {ID: pendingID, VehicleID: vehicleID, Status: domain.StatusPending},
			inProgressID: {ID: inProgressID, VehicleID: vehicleID, Status: domain.StatusInProgress},
		}}
	}

	t.Run("confirmed booking is completed now", func(t *testing.T) {
		repo := newRepo()

		resp, err := newTestService(repo).CompleteBooking(context.Background(), confirmedID, nil)
		require.NoError(t, err)

		assert.Equal(t, "completed", resp.Status)
		require.NotNil(t, resp.CompletedAt)
		assert.Equal(t, "2024-06-15T12:00:00Z", *resp.CompletedAt)
		require.NotNil(t, repo.completedAt)
		assert.Equal(t, testNow, *repo.completedAt)
	})

	t.Run("explicit completion time", func(t *testing.T) {
		repo := newRepo()
		earlier := testNow.Add(-3 * time.Hour)

		resp, err := newTestService(repo).CompleteBooking(context.Background(), inProgressID, &earlier)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-15T09:00:00Z", *resp.CompletedAt)
		assert.Equal(t, earlier, *repo.completedAt)
	})

	t.Run("completion time in the future", func(t *testing.T) {
		repo := newRepo()
		later := testNow.Add(time.Hour)

		_, err := newTestService(repo).CompleteBooking(context.Background(), confirmedID, &later)
		assert.ErrorIs(t, err, ErrInvalidCompletionTime)
		assert.Nil(t, repo.completedAt)
	})

	t.Run("pending booking is rejected", func(t *testing.T) {
		_, err := newTestService(newRepo()).CompleteBooking(context.Background(), pendingID, nil)
		assert.ErrorIs(t, err, ErrCannotComplete)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := newTestService(newRepo()).CompleteBooking(context.Background(), uuid.New(), nil)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		repo := newRepo()
		repo.completeErr = bookingRepo.ErrCannotComplete

		_, err := newTestService(repo).CompleteBooking(context.Background(), inProgressID, nil)
		assert.ErrorIs(t, err, ErrCannotComplete)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := newRepo()
		repo.completeErr = errors.New("connection reset")

		_, err := newTestService(repo).CompleteBooking(context.Background(), inProgressID, nil)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
