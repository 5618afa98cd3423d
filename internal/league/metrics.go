package league

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricActivitiesLoggedTotal = "league_activities_logged_total"
	MetricPointsAwardedTotal    = "league_points_awarded_total"
	MetricRankLookupsTotal      = "league_rank_lookups_total"
)

// Metrics contains Prometheus metrics for league operations.
// All operations are thread-safe.
type Metrics struct {
	activitiesLogged *prometheus.CounterVec
	pointsAwarded    *prometheus.CounterVec
	rankLookups      prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		activitiesLogged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricActivitiesLoggedTotal,
				Help: "Total number of ledger entries appended by activity type",
			},
			[]string{"type"},
		),
		pointsAwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPointsAwardedTotal,
				Help: "Total points awarded by activity type",
			},
			[]string{"type"},
		),
		rankLookups: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: MetricRankLookupsTotal,
				Help: "Total number of on-demand rank computations",
			},
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

// ObserveActivity records one appended ledger entry and its point award.
func (m *Metrics) ObserveActivity(activityType string, points int) {
	m.activitiesLogged.WithLabelValues(activityType).Inc()
	m.pointsAwarded.WithLabelValues(activityType).Add(float64(points))
}

// IncRankLookups records one on-demand rank computation.
func (m *Metrics) IncRankLookups() {
	m.rankLookups.Inc()
}

// Collectors returns all Prometheus collectors for registration and testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.activitiesLogged,
		m.pointsAwarded,
		m.rankLookups,
	}
}
