package run_health_checks

import (
	"net/http"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
	"github.com/m04kA/SMC-VehicleHealthService/internal/api/middleware"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/health/models"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/health-checks/run
// Выполняет проверку синхронно, ошибки по отдельным автомобилям видны только в errors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("POST /admin/health-checks/run - Manual run requested by user_id=%s", callerID)

	summary := h.service.ProcessDailyHealthChecks(r.Context())

	h.logger.Info("POST /admin/health-checks/run - checked=%d, notified=%d, errors=%d",
		summary.Checked, summary.Notified, summary.Errors)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainHealthCheckSummary(summary))
}
