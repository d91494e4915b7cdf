package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	HealthChecksTotal *prometheus.CounterVec
	HealthScore       *prometheus.HistogramVec
	SMSSentTotal      *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		HealthChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "vehicle_health_checks_total",
			Help:        "Vehicles processed by the daily health check, by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		HealthScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "vehicle_health_score",
			Help:        "Distribution of computed vehicle health scores",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}, []string{"status"}),

		SMSSentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sms_sent_total",
			Help:        "Outbound SMS attempts, by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.HealthChecksTotal,
		m.HealthScore,
		m.SMSSentTotal,
	)

	return m
}

// Исходы обработки одного автомобиля в ежедневной проверке
const (
	OutcomeChecked  = "checked"
	OutcomeNotified = "notified"
	OutcomeError    = "error"
)

// RecordHealthCheck учитывает исход проверки одного автомобиля
// Безопасно вызывать на nil
func (m *Metrics) RecordHealthCheck(outcome string) {
	if m == nil {
		return
	}
	m.HealthChecksTotal.WithLabelValues(outcome).Inc()
}

// ObserveHealthScore учитывает вычисленный показатель здоровья
func (m *Metrics) ObserveHealthScore(status string, score int) {
	if m == nil {
		return
	}
	m.HealthScore.WithLabelValues(status).Observe(float64(score))
}

// RecordSMS учитывает попытку отправки SMS
func (m *Metrics) RecordSMS(sent bool) {
	if m == nil {
		return
	}
	result := "failed"
	if sent {
		result = "sent"
	}
	m.SMSSentTotal.WithLabelValues(result).Inc()
}
