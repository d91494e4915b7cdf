package get_vehicles_needing_service

import (
	"net/http"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/health/models"
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

// Handle GET /api/v1/admin/vehicles/needing-service
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	due, err := h.service.GetVehiclesNeedingService(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/vehicles/needing-service - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/vehicles/needing-service - Report built: count=%d", len(due))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainServiceDueList(due))
}
