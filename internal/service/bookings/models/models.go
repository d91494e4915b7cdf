package models

import (
	"time"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	VehicleID   string  `json:"vehicleId"`
	SlotID      string  `json:"slotId"`
	Status      string  `json:"status"`
	ServiceType string  `json:"serviceType"`
	GrandTotal  float64 `json:"grandTotal"`
	CompletedAt *string `json:"completedAt"` // RFC3339, null пока работы не выполнены
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// BookingListResponse история обслуживания автомобиля
type BookingListResponse struct {
	VehicleID string            `json:"vehicleId"`
	Bookings  []BookingResponse `json:"bookings"`
	Total     int               `json:"total"`
}

// Converters

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		VehicleID:   b.VehicleID.String(),
		SlotID:      b.SlotID.String(),
		Status:      string(b.Status),
		ServiceType: string(b.ServiceType),
		GrandTotal:  b.GrandTotal,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CompletedAt != nil {
		completedAt := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedAt
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований автомобиля
func FromDomainBookingList(vehicleID string, bookings []*domain.Booking) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b))
	}

	return &BookingListResponse{
		VehicleID: vehicleID,
		Bookings:  items,
		Total:     len(items),
	}
}
