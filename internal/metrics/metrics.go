// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "debt_tracker"

type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	AccrualCalculations *prometheus.CounterVec
	CacheLookups        *prometheus.CounterVec
	OverduePayments     prometheus.Gauge
	ReminderRuns        *prometheus.CounterVec
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AccrualCalculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accrual_calculations_total",
			Help:      "Interest accrual calculations by policy and applicability.",
		}, []string{"policy", "applicable"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_cache_lookups_total",
			Help:      "Dashboard summary cache lookups by result.",
		}, []string{"result"}),
		OverduePayments: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_interest_payments",
			Help:      "Overdue interest payments found by the last reminder sweep.",
		}),
		ReminderRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_sweeps_total",
			Help:      "Reminder sweeps by outcome.",
		}, []string{"outcome"}),
	}
}

// NewUnregistered builds collectors that are not exported anywhere.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveAccrual(policy string, applicable bool) {
	m.AccrualCalculations.WithLabelValues(policy, strconv.FormatBool(applicable)).Inc()
}

func (m *Metrics) ObserveCache(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}
