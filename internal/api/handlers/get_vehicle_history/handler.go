package get_vehicle_history

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := uuid.Parse(mux.Vars(r)["vehicleId"])
	if err != nil {
		h.logger.Warn("GET /vehicles/{id}/bookings - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	result, err := h.service.GetVehicleHistory(r.Context(), vehicleID)
	if err != nil {
		h.logger.Error("GET /vehicles/{id}/bookings - Failed to get history: vehicle_id=%s, error=%v",
			vehicleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vehicles/{id}/bookings - History retrieved: vehicle_id=%s, count=%d",
		vehicleID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
