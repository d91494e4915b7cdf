package get_rebooking_opportunity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	opportunity *domain.RebookingOpportunity
	err         error
}

func (f *fakeService) CalculateRebookingOpportunity(context.Context) (*domain.RebookingOpportunity, error) {
	return f.opportunity, f.err
}

func TestHandle(t *testing.T) {
	o := domain.NewRebookingOpportunity(3, 600)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rebooking-opportunity", nil)
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{opportunity: &o}, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"vehiclesDue":3,"estimatedRevenue":1800,"averageBookingValue":600}`, rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rebooking-opportunity", nil)
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
