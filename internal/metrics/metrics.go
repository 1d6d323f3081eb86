package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// HTTPRequestsTotal counts requests by route template, method and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdma",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests, labeled by route, method and status code.",
	}, []string{"route", "method", "status"})

	// HTTPRequestDurationSeconds is handler latency per route template.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sdma",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving HTTP requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	// IncidentsRecordedTotal counts accepted incident entries per disaster type.
	IncidentsRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdma",
		Subsystem: "incidents",
		Name:      "recorded_total",
		Help:      "Total number of incidents recorded, labeled by disaster type id.",
	}, []string{"disaster_type"})

	// ReportsGeneratedTotal counts generated reports by kind and format.
	ReportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdma",
		Subsystem: "reports",
		Name:      "generated_total",
		Help:      "Total number of reports generated, labeled by kind (dashboard, tehsil, monitoring, chart) and format (json, xlsx).",
	}, []string{"kind", "format"})

	// LoginAttemptsTotal counts login attempts by result.
	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdma",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labeled by result.",
	}, []string{"result"})

	// CategoryWritesTotal counts category and subtype writes by collection.
	CategoryWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sdma",
		Subsystem: "categories",
		Name:      "writes_total",
		Help:      "Total number of persisted category collection writes, labeled by collection key.",
	}, []string{"collection"})
)

// Register registers the dashboard metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			IncidentsRecordedTotal,
			ReportsGeneratedTotal,
			LoginAttemptsTotal,
			CategoryWritesTotal,
		)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
