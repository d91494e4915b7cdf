package complete_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VehicleHealthService/internal/api/handlers"
	"github.com/m04kA/SMC-VehicleHealthService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgCannotComplete   = "бронирование не может быть завершено"
	msgInvalidBody      = "некорректное тело запроса"
	msgFutureCompletion = "время завершения не может быть в будущем"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/complete - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	booking, err := h.service.CompleteBooking(r.Context(), bookingID, req.CompletedAt)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id}/complete - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidCompletionTime):
			h.logger.Warn("PATCH /admin/bookings/{id}/complete - Completion time in the future: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgFutureCompletion)

		case errors.Is(err, bookings.ErrCannotComplete):
			h.logger.Warn("PATCH /admin/bookings/{id}/complete - Cannot complete: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/complete - Failed to complete booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/complete - Booking completed: booking_id=%s, vehicle_id=%s",
		bookingID, booking.VehicleID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
