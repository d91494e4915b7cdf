package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// ServiceType represents the detailing package booked for the slot
type ServiceType string

const (
	ServiceEssential ServiceType = "essential"
	ServicePremium   ServiceType = "premium"
	ServiceCeramic   ServiceType = "ceramic"
)

// Booking represents a Saturday detailing booking for a vehicle
type Booking struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	VehicleID   uuid.UUID
	SlotID      uuid.UUID
	Status      BookingStatus
	ServiceType ServiceType
	GrandTotal  float64

	CompletedAt *time.Time // Заполняется техником после выполнения работ

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted returns true if the technician has logged the service as done
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// CanBeCompleted returns true if the booking can be marked as completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// ServiceTime returns the moment the service counts from.
// Falls back to UpdatedAt for rows completed before completed_at existed.
func (b *Booking) ServiceTime() time.Time {
	if b.CompletedAt != nil {
		return *b.CompletedAt
	}
	return b.UpdatedAt
}
