package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VehicleHealthService/internal/domain"
)

// Response модели

// HealthRecordResponse состояние защитного покрытия автомобиля
type HealthRecordResponse struct {
	VehicleID              string  `json:"vehicleId"`
	LastServiceDate        *string `json:"lastServiceDate"` // RFC3339, null если обслуживания не было
	DaysSinceService       int     `json:"daysSinceService"`
	HealthScore            int     `json:"healthScore"`
	DecayRate              float64 `json:"decayRate"`
	Status                 string  `json:"status"`
	NextRecommendedService string  `json:"nextRecommendedService"` // "2024-01-22"
	ShouldNotify           bool    `json:"shouldNotify"`
}

// UnknownHealthResponse ответ, когда историю обслуживания не удалось прочитать
type UnknownHealthResponse struct {
	VehicleID string `json:"vehicleId"`
	Status    string `json:"status"`
}

// VehicleHealthListResponse состояние всех автомобилей пользователя
type VehicleHealthListResponse struct {
	UserID   string                 `json:"userId"`
	Vehicles []HealthRecordResponse `json:"vehicles"`
	Total    int                    `json:"total"`
}

// OwnerContactResponse контакты владельца
type OwnerContactResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ServiceDueVehicleResponse строка отчёта "требуют обслуживания"
type ServiceDueVehicleResponse struct {
	VehicleID        string               `json:"vehicleId"`
	UserID           string               `json:"userId"`
	Brand            string               `json:"brand"`
	Model            string               `json:"model"`
	LicensePlate     string               `json:"licensePlate"`
	HealthScore      int                  `json:"healthScore"`
	DaysSinceService int                  `json:"daysSinceService"`
	Owner            OwnerContactResponse `json:"owner"`
}

// ServiceDueListResponse отчёт "требуют обслуживания"
type ServiceDueListResponse struct {
	Vehicles []ServiceDueVehicleResponse `json:"vehicles"`
	Total    int                         `json:"total"`
}

// RebookingOpportunityResponse оценка выручки от повторных записей
type RebookingOpportunityResponse struct {
	VehiclesDue         int     `json:"vehiclesDue"`
	EstimatedRevenue    float64 `json:"estimatedRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`
}

// HealthCheckSummaryResponse итоги ежедневной проверки
type HealthCheckSummaryResponse struct {
	Checked  int `json:"checked"`
	Notified int `json:"notified"`
	Errors   int `json:"errors"`
}

// Converters

// FromDomainHealthRecord конвертирует domain.HealthRecord в HealthRecordResponse
func FromDomainHealthRecord(r *domain.HealthRecord) *HealthRecordResponse {
	return &HealthRecordResponse{
		VehicleID:              r.VehicleID.String(),
		LastServiceDate:        formatTimePtr(r.LastServiceDate),
		DaysSinceService:       r.DaysSinceService,
		HealthScore:            r.HealthScore,
		DecayRate:              r.DecayRate,
		Status:                 string(r.Status),
		NextRecommendedService: r.NextRecommendedService.Format(domain.DateFormat),
		ShouldNotify:           r.ShouldNotify,
	}
}

// NewUnknownHealth ответ для автомобиля с непрочитанной историей
func NewUnknownHealth(vehicleID uuid.UUID) *UnknownHealthResponse {
	return &UnknownHealthResponse{
		VehicleID: vehicleID.String(),
		Status:    string(domain.HealthUnknown),
	}
}

// FromDomainHealthRecordList конвертирует список записей пользователя
func FromDomainHealthRecordList(userID uuid.UUID, records []domain.HealthRecord) *VehicleHealthListResponse {
	vehicles := make([]HealthRecordResponse, 0, len(records))
	for i := range records {
		vehicles = append(vehicles, *FromDomainHealthRecord(&records[i]))
	}

	return &VehicleHealthListResponse{
		UserID:   userID.String(),
		Vehicles: vehicles,
		Total:    len(vehicles),
	}
}

// FromDomainServiceDueList конвертирует отчёт "требуют обслуживания"
func FromDomainServiceDueList(items []domain.ServiceDueVehicle) *ServiceDueListResponse {
	vehicles := make([]ServiceDueVehicleResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		vehicles = append(vehicles, ServiceDueVehicleResponse{
			VehicleID:        item.Vehicle.ID.String(),
			UserID:           item.Vehicle.UserID.String(),
			Brand:            item.Vehicle.Brand,
			Model:            item.Vehicle.Model,
			LicensePlate:     item.Vehicle.LicensePlate,
			HealthScore:      item.HealthScore,
			DaysSinceService: item.DaysSinceService,
			Owner: OwnerContactResponse{
				Name:  item.OwnerName(),
				Phone: item.Owner.Phone,
			},
		})
	}

	return &ServiceDueListResponse{
		Vehicles: vehicles,
		Total:    len(vehicles),
	}
}

// FromDomainRebookingOpportunity конвертирует оценку выручки
func FromDomainRebookingOpportunity(o *domain.RebookingOpportunity) *RebookingOpportunityResponse {
	return &RebookingOpportunityResponse{
		VehiclesDue:         o.VehiclesDue,
		EstimatedRevenue:    o.EstimatedRevenue,
		AverageBookingValue: o.AverageBookingValue,
	}
}

// FromDomainHealthCheckSummary конвертирует итоги проверки
func FromDomainHealthCheckSummary(s domain.HealthCheckSummary) *HealthCheckSummaryResponse {
	return &HealthCheckSummaryResponse{
		Checked:  s.Checked,
		Notified: s.Notified,
		Errors:   s.Errors,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
