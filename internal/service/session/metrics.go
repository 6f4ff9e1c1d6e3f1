package session

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avencourt/uastack/pkg/ua"
)

// Metrics tracks session lifecycle counts. All methods are nil-safe:
// calls on a nil *Metrics are no-ops.
type Metrics struct {
	CreatedTotal   prometheus.Counter
	ActivatedTotal prometheus.Counter
	OrphanedTotal  prometheus.Counter
	ReboundTotal   prometheus.Counter
	ClosedTotal    *prometheus.CounterVec
	Active         prometheus.Gauge
}

// NewMetrics registers the session metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uastack", Subsystem: "session", Name: "created_total",
			Help: "Sessions created.",
		}),
		ActivatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uastack", Subsystem: "session", Name: "activated_total",
			Help: "Session activations, including re-activations.",
		}),
		OrphanedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uastack", Subsystem: "session", Name: "orphaned_total",
			Help: "Sessions orphaned by secure-channel loss.",
		}),
		ReboundTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "uastack", Subsystem: "session", Name: "rebound_total",
			Help: "Orphaned sessions re-bound to a new secure channel.",
		}),
		ClosedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uastack", Subsystem: "session", Name: "closed_total",
			Help: "Sessions closed, by status.",
		}, []string{"status"}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uastack", Subsystem: "session", Name: "active",
			Help: "Live sessions.",
		}),
	}
	reg.MustRegister(m.CreatedTotal, m.ActivatedTotal, m.OrphanedTotal,
		m.ReboundTotal, m.ClosedTotal, m.Active)
	return m
}

func (m *Metrics) ObserveCreated() {
	if m != nil {
		m.CreatedTotal.Inc()
	}
}

func (m *Metrics) ObserveActivated() {
	if m != nil {
		m.ActivatedTotal.Inc()
	}
}

func (m *Metrics) ObserveOrphaned() {
	if m != nil {
		m.OrphanedTotal.Inc()
	}
}

func (m *Metrics) ObserveRebound() {
	if m != nil {
		m.ReboundTotal.Inc()
	}
}

func (m *Metrics) ObserveClosed(status ua.StatusCode) {
	if m != nil {
		m.ClosedTotal.WithLabelValues(status.String()).Inc()
	}
}

func (m *Metrics) SetActive(n int) {
	if m != nil {
		m.Active.Set(float64(n))
	}
}
