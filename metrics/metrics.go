package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Submissions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	GatewayAvailable   prometheus.Gauge
	ActiveSessions     prometheus.Gauge
	RequestDuration    *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dl_generator_submissions_total",
			Help: "License requests sent to the rendering service, by outcome",
		}, []string{"outcome"}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dl_generator_validation_failures_total",
			Help: "Fields that failed validation at submit time, by field and reason",
		}, []string{"field", "reason"}),
		GatewayAvailable: f.NewGauge(prometheus.GaugeOpts{
			Name: "dl_generator_gateway_available",
			Help: "1 when the last rendering service probe succeeded",
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "dl_generator_active_sessions",
			Help: "Request sessions currently held in memory",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dl_generator_http_request_duration_seconds",
			Help:    "HTTP request latency by route template, method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// Submission outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeRejected    = "rejected"
	OutcomeError       = "error"
)

// IncrementSubmissions counts one submission attempt
func (m *Metrics) IncrementSubmissions(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// IncrementValidationFailure counts one failed field
func (m *Metrics) IncrementValidationFailure(field, reason string) {
	m.ValidationFailures.WithLabelValues(field, reason).Inc()
}

// SetGatewayAvailable records the last probe result
func (m *Metrics) SetGatewayAvailable(available bool) {
	if available {
		m.GatewayAvailable.Set(1)
		return
	}
	m.GatewayAvailable.Set(0)
}
