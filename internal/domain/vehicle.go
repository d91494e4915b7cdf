package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VehicleSizeCategory represents the pricing class of a vehicle
type VehicleSizeCategory string

const (
	SizeSedan  VehicleSizeCategory = "sedan"
	SizeSUV    VehicleSizeCategory = "suv"
	SizeLuxury VehicleSizeCategory = "luxury"
	SizeSports VehicleSizeCategory = "sports"
)

// OwnerContact is the part of the owner's profile needed to reach them
type OwnerContact struct {
	FirstName string
	LastName  string
	Phone     string
}

// FullName returns "First Last", or "Unknown" when the profile has no name
func (c *OwnerContact) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "Unknown"
	}
	return name
}

// Vehicle represents a customer's vehicle
type Vehicle struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Brand        string
	Model        string
	Year         *int
	SizeCategory VehicleSizeCategory
	Color        *string
	LicensePlate string

	// Owner is populated only by queries that join user_profiles
	Owner *OwnerContact

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns "Brand Model"
func (v *Vehicle) DisplayName() string {
	return strings.TrimSpace(v.Brand + " " + v.Model)
}

// HasReachableOwner returns true if the owner has a phone number on file
func (v *Vehicle) HasReachableOwner() bool {
	return v.Owner != nil && strings.TrimSpace(v.Owner.Phone) != ""
}
