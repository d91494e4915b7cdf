package get_rebooking_opportunity

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

// Handle GET /api/v1/admin/rebooking-opportunity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	opportunity, err := h.service.CalculateRebookingOpportunity(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/rebooking-opportunity - Failed to calculate: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/rebooking-opportunity - vehicles_due=%d, estimated_revenue=%.2f",
		opportunity.VehiclesDue, opportunity.EstimatedRevenue)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRebookingOpportunity(opportunity))
}
