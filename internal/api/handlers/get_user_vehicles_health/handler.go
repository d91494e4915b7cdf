package get_user_vehicles_health

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
	"github.com/m04kA/SMC-VehicleHealthService/internal/api/middleware"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/health/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/vehicles/health
// Пользователь видит только свои автомобили
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("GET /users/{userId}/vehicles/health - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/vehicles/health - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/vehicles/health - Access denied: user_id=%s, caller=%s", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	records, err := h.service.GetUserVehiclesHealth(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{userId}/vehicles/health - Failed to get health: user_id=%s, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/vehicles/health - Health retrieved: user_id=%s, count=%d",
		userID, len(records))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainHealthRecordList(userID, records))
}
