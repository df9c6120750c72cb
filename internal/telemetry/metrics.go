// Package telemetry wires Prometheus metrics and OpenTelemetry tracing for
// the HTTP service.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes recorded by ObserveCalculation.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	requests     *prometheus.CounterVec
}

// NewMetrics registers the service collectors, plus the Go and process
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_calculations_total",
				Help: "Number of loan calculations by loan type and outcome",
			},
			[]string{"loan_type", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_calculation_duration_seconds",
				Help:    "Time spent computing a loan report",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"loan_type"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
}

// ObserveCalculation records one calculation.
func (m *Metrics) ObserveCalculation(loanType, status string, elapsed time.Duration) {
	if loanType == "" {
		loanType = "unknown"
	}
	m.calculations.WithLabelValues(loanType, status).Inc()
	m.duration.WithLabelValues(loanType).Observe(elapsed.Seconds())
}

// ObserveRequest counts one HTTP response.
func (m *Metrics) ObserveRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
