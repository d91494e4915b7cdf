package domain

// Decay model defaults
const (
	DefaultOptimalProtectionDays = 21
	DefaultExponentialBase       = 0.95
	DefaultExponentialWeight     = 50.0
	DefaultLinearWeight          = 0.5

	DefaultNotifyWindowStart = 18
	DefaultNotifyWindowEnd   = 22

	DefaultExcellentThreshold = 80
	DefaultGoodThreshold      = 60
	DefaultFairThreshold      = 30
)

// Environmental multipliers for the linear decay term.
// Nothing supplies them yet, callers pass NominalFactor.
const (
	NominalFactor      = 1.0
	HarshWeatherFactor = 1.2
	HeavyUsageFactor   = 1.15
)

// NoServiceDays is reported as days since service when a vehicle has never
// had a completed booking
const NoServiceDays = 999

// Report constants
const (
	DefaultNeedsServiceBelow   = 40
	DefaultAverageBookingValue = 600.0 // R600: sedan R400, SUV R600, luxury R800
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
