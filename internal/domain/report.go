package domain

// ServiceDueVehicle is a row of the admin "vehicles needing service" report
type ServiceDueVehicle struct {
	Vehicle          *Vehicle
	HealthScore      int
	DaysSinceService int
	Owner            OwnerContact // zero value when the owner has no profile
}

// OwnerName returns the owner's full name or "Unknown"
func (v *ServiceDueVehicle) OwnerName() string {
	return v.Owner.FullName()
}

// RebookingOpportunity estimates revenue from vehicles that are due for service
type RebookingOpportunity struct {
	VehiclesDue         int
	EstimatedRevenue    float64
	AverageBookingValue float64
}

// NewRebookingOpportunity multiplies the number of due vehicles by the average booking value
func NewRebookingOpportunity(vehiclesDue int, averageBookingValue float64) RebookingOpportunity {
	return RebookingOpportunity{
		VehiclesDue:         vehiclesDue,
		EstimatedRevenue:    float64(vehiclesDue) * averageBookingValue,
		AverageBookingValue: averageBookingValue,
	}
}

// HealthCheckSummary holds the tallies of one daily health-check run
type HealthCheckSummary struct {
	Checked  int
	Notified int
	Errors   int
}
