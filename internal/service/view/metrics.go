package view

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avencourt/uastack/pkg/ua"
)

// Metrics tracks traversal activity. All methods are nil-safe: calls on
// a nil *Metrics are no-ops, so metrics can be disabled with zero
// overhead.
type Metrics struct {
	// BrowseTotal counts Browse/BrowseNext operations by status name.
	BrowseTotal *prometheus.CounterVec

	// ContinuationPointsActive gauges the live continuation points.
	ContinuationPointsActive prometheus.Gauge
}

// NewMetrics registers the view metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BrowseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uastack",
			Subsystem: "view",
			Name:      "browse_total",
			Help:      "Browse and BrowseNext operations by result status.",
		}, []string{"status"}),
		ContinuationPointsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uastack",
			Subsystem: "view",
			Name:      "continuation_points_active",
			Help:      "Continuation points currently held by sessions.",
		}),
	}
	reg.MustRegister(m.BrowseTotal, m.ContinuationPointsActive)
	return m
}

func (m *Metrics) ObserveBrowse(status ua.StatusCode) {
	if m == nil {
		return
	}
	m.BrowseTotal.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) ObserveContinuationPointCreated() {
	if m == nil {
		return
	}
	m.ContinuationPointsActive.Inc()
}

func (m *Metrics) ObserveContinuationPointReleased() {
	if m == nil {
		return
	}
	m.ContinuationPointsActive.Dec()
}
