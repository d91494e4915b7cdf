package complete_booking

import "time"

// CompleteBookingRequest HTTP request model
// Тело необязательно, без completedAt заказ закрывается текущим временем
type CompleteBookingRequest struct {
	CompletedAt *time.Time `json:"completedAt,omitempty"` // RFC3339
}
