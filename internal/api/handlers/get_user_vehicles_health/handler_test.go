package get_user_vehicles_health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/middleware"
	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/health/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	records []domain.HealthRecord
	err     error
}

func (f *fakeService) GetUserVehiclesHealth(context.Context, uuid.UUID) ([]domain.HealthRecord, error) {
	return f.records, f.err
}

func serve(svc HealthService, pathUserID string, caller string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/users/{userId}/vehicles/health", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+pathUserID+"/vehicles/health", nil)
	if caller != "" {
		req.Header.Set(middleware.UserIDHeader, caller)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OwnVehicles(t *testing.T) {
	userID := uuid.New()
	records := []domain.HealthRecord{
		domain.DefaultDecayModel().Evaluate(uuid.New(), nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	rec := serve(&fakeService{records: records}, userID.String(), userID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.VehicleHealthListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body.UserID)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "critical", body.Vehicles[0].Status)
	assert.Nil(t, body.Vehicles[0].LastServiceDate)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	userID := uuid.New()

	rec := serve(&fakeService{}, userID.String(), userID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"`+userID.String()+`","vehicles":[],"total":0}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		svc    *fakeService
		path   string
		caller string
		want   int
	}{
		{"missing header", &fakeService{}, userID.String(), "", http.StatusUnauthorized},
		{"other user", &fakeService{}, userID.String(), uuid.NewString(), http.StatusForbidden},
		{"invalid path id", &fakeService{}, "abc", userID.String(), http.StatusBadRequest},
		{"service failure", &fakeService{err: errors.New("db down")}, userID.String(), userID.String(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.svc, tt.path, tt.caller)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
