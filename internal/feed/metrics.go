package feed

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricFeedBuildsTotal   = "feed_builds_total"
	MetricFeedBuildDuration = "feed_build_duration_seconds"
	MetricFeedEventsEmitted = "feed_events_emitted_total"
)

// Build status constants.
const (
	StatusSuccess  = "success"
	StatusDegraded = "degraded"
)

// Event source constants for labeling.
const (
	SourceRitual  = "ritual"
	SourceSpecial = "special"
)

// Metrics contains Prometheus metrics for feed builds.
// All operations are thread-safe.
type Metrics struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration prometheus.Histogram
	eventsEmitted *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricFeedBuildsTotal,
				Help: "Total number of feed builds by status",
			},
			[]string{"status"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricFeedBuildDuration,
				Help:    "Histogram of feed build duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
		),
		eventsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricFeedEventsEmitted,
				Help: "Total number of unified events emitted by source",
			},
			[]string{"source"},
		),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveBuild records one feed build with its status and duration in seconds.
func (m *Metrics) ObserveBuild(status string, seconds float64) {
	m.buildsTotal.WithLabelValues(status).Inc()
	m.buildDuration.Observe(seconds)
}

// AddEmitted records events emitted for a source.
func (m *Metrics) AddEmitted(source string, n int) {
	m.eventsEmitted.WithLabelValues(source).Add(float64(n))
}

// Collectors returns all Prometheus collectors for registration and testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.buildsTotal,
		m.buildDuration,
		m.eventsEmitted,
	}
}
