package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec // labels: route, status

	// Refresh pipeline metrics.
	RefreshRuns         *prometheus.CounterVec // labels: outcome={success,error}
	RefreshDuration     prometheus.Histogram
	AssessmentsComputed prometheus.Counter
	RefreshRunning      prometheus.Gauge

	AlertsPublished prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "refresh_runs_total",
			Help:      "Dataset refresh cycles by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firewatch",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete load-assess-store refresh cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		AssessmentsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "assessments_computed_total",
			Help:      "Total county risk assessments computed.",
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "firewatch",
			Name:      "refresh_running",
			Help:      "1 when the refresh manager is active, 0 when shut down.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firewatch",
			Name:      "alerts_published_total",
			Help:      "Total county risk escalation alerts published.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.RefreshRuns,
		m.RefreshDuration,
		m.AssessmentsComputed,
		m.RefreshRunning,
		m.AlertsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "http_requests_total"}, []string{"route", "status"}),
		RefreshRuns:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "firewatch", Name: "refresh_runs_total"}, []string{"outcome"}),
		RefreshDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "firewatch", Name: "refresh_duration_seconds"}),
		AssessmentsComputed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "assessments_computed_total"}),
		RefreshRunning:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "firewatch", Name: "refresh_running"}),
		AlertsPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "firewatch", Name: "alerts_published_total"}),
	}
}
