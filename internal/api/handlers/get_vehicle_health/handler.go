package get_vehicle_health

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/health/models"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
)

type Handler struct {
	service HealthService
	logger  Logger
}

func NewHandler(service HealthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/health
// Если историю не удалось прочитать, отвечает 200 со статусом unknown
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := uuid.Parse(mux.Vars(r)["vehicleId"])
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/health - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	record := h.service.GetVehicleHealth(r.Context(), vehicleID)
	if record == nil {
		h.logger.Warn("GET /vehicles/{id}/health - Health unknown: vehicle_id=%s", vehicleID)
		handlers.RespondJSON(w, http.StatusOK, models.NewUnknownHealth(vehicleID))
		return
	}

	h.logger.Info("GET /vehicles/{id}/health - Health resolved: vehicle_id=%s, score=%d, status=%s",
		vehicleID, record.HealthScore, record.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainHealthRecord(record))
}
