package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// HealthStatus represents the protection tier derived from a health score
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthCritical  HealthStatus = "critical"

	// HealthUnknown is never produced by the decay model, it marks a vehicle
	// whose service history could not be read
	HealthUnknown HealthStatus = "unknown"
)

// HealthRecord is the protection state of a vehicle at a given moment.
// It is recomputed on every read and never persisted.
type HealthRecord struct {
	VehicleID              uuid.UUID
	LastServiceDate        *time.Time // nil if the vehicle was never serviced
	DaysSinceService       int        // NoServiceDays if LastServiceDate is nil
	HealthScore            int        // 0-100
	DecayRate              float64    // percentage points per day under nominal conditions
	Status                 HealthStatus
	NextRecommendedService time.Time
	ShouldNotify           bool
}

// HasServiceHistory returns true if at least one completed service is on record
func (r *HealthRecord) HasServiceHistory() bool {
	return r.LastServiceDate != nil
}

// NeedsService returns true if the score is positive and below the limit.
// A zero score means "never served" rather than "overdue".
func (r *HealthRecord) NeedsService(below int) bool {
	return r.HealthScore > 0 && r.HealthScore < below
}

// DecayModel converts elapsed days since the last service into a health score.
// The zero value is not usable, start from DefaultDecayModel.
type DecayModel struct {
	OptimalProtectionDays int
	ExponentialBase       float64
	ExponentialWeight     float64
	LinearWeight          float64

	NotifyWindowStart int
	NotifyWindowEnd   int

	ExcellentThreshold int
	GoodThreshold      int
	FairThreshold      int
}

// DefaultDecayModel returns the model with the production constants
func DefaultDecayModel() DecayModel {
	return DecayModel{
		OptimalProtectionDays: DefaultOptimalProtectionDays,
		ExponentialBase:       DefaultExponentialBase,
		ExponentialWeight:     DefaultExponentialWeight,
		LinearWeight:          DefaultLinearWeight,
		NotifyWindowStart:     DefaultNotifyWindowStart,
		NotifyWindowEnd:       DefaultNotifyWindowEnd,
		ExcellentThreshold:    DefaultExcellentThreshold,
		GoodThreshold:         DefaultGoodThreshold,
		FairThreshold:         DefaultFairThreshold,
	}
}

// BaseDecayRate returns percentage points lost per day under nominal conditions
func (m DecayModel) BaseDecayRate() float64 {
	return 100 / float64(m.OptimalProtectionDays)
}

// Score blends an exponential and a linear decay curve into a 0-100 score.
//
// The exponential term (base^days * ExponentialWeight) models the intrinsic
// coating chemistry and drops sharply in the first days. The linear term
// (max(0, 100 - days*rate) * LinearWeight) reaches zero after the protection
// window; weatherFactor and usageFactor scale only its rate. Factors below
// NominalFactor are treated as NominalFactor.
func (m DecayModel) Score(daysSinceService int, weatherFactor, usageFactor float64) int {
	if daysSinceService <= 0 {
		return 100
	}

	weatherFactor = normalizeFactor(weatherFactor)
	usageFactor = normalizeFactor(usageFactor)

	days := float64(daysSinceService)
	adjustedDecayRate := m.BaseDecayRate() * weatherFactor * usageFactor

	decayFactor := math.Pow(m.ExponentialBase, days)
	linearDecay := math.Max(0, 100-days*adjustedDecayRate)

	score := decayFactor*m.ExponentialWeight + linearDecay*m.LinearWeight

	return roundHalfUp(clamp(score, 0, 100))
}

// NominalScore is Score with both environmental factors at NominalFactor
func (m DecayModel) NominalScore(daysSinceService int) int {
	return m.Score(daysSinceService, NominalFactor, NominalFactor)
}

// Status maps a score onto a tier. Each threshold is inclusive on its lower bound.
func (m DecayModel) Status(score int) HealthStatus {
	switch {
	case score >= m.ExcellentThreshold:
		return HealthExcellent
	case score >= m.GoodThreshold:
		return HealthGood
	case score >= m.FairThreshold:
		return HealthFair
	default:
		return HealthCritical
	}
}

// NextServiceDate adds the protection window in calendar days
func (m DecayModel) NextServiceDate(lastServiceDate time.Time) time.Time {
	return lastServiceDate.AddDate(0, 0, m.OptimalProtectionDays)
}

// ShouldNotify reports whether elapsed days fall inside the closed rebooking window.
// It does not look at the score.
func (m DecayModel) ShouldNotify(daysSinceService int) bool {
	return daysSinceService >= m.NotifyWindowStart && daysSinceService <= m.NotifyWindowEnd
}

// Evaluate assembles the health record for a vehicle.
// lastService == nil means no completed service on record.
func (m DecayModel) Evaluate(vehicleID uuid.UUID, lastService *time.Time, now time.Time) HealthRecord {
	days := NoServiceDays
	next := now
	if lastService != nil {
		days = DaysBetween(*lastService, now)
		next = m.NextServiceDate(*lastService)
	}

	score := m.NominalScore(days)

	return HealthRecord{
		VehicleID:              vehicleID,
		LastServiceDate:        lastService,
		DaysSinceService:       days,
		HealthScore:            score,
		DecayRate:              m.BaseDecayRate(),
		Status:                 m.Status(score),
		NextRecommendedService: next,
		ShouldNotify:           m.ShouldNotify(days),
	}
}

// DaysBetween returns whole days elapsed from since to now, truncating partial days.
// A since in the future yields 0.
func DaysBetween(since, now time.Time) int {
	elapsed := now.Sub(since)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

func normalizeFactor(f float64) float64 {
	if math.IsNaN(f) || f < NominalFactor {
		return NominalFactor
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// roundHalfUp rounds x.5 towards positive infinity
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
