package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iamasit07/photoshare/internal/service/toggle"
)

// ToggleMetrics counts backing calls made by toggle controls.
type ToggleMetrics struct {
	outcomes *prometheus.CounterVec
	inflight *prometheus.GaugeVec
}

func NewToggleMetrics(reg prometheus.Registerer) *ToggleMetrics {
	m := &ToggleMetrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "photoshare",
			Name:      "toggle_outcomes_total",
			Help:      "Settled toggle calls by variant, direction and outcome.",
		}, []string{"variant", "direction", "outcome"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "photoshare",
			Name:      "toggle_inflight",
			Help:      "Toggle calls currently waiting on the backend.",
		}, []string{"variant"}),
	}
	reg.MustRegister(m.outcomes, m.inflight)
	return m
}

func (m *ToggleMetrics) Started(variant string, _ toggle.Direction) {
	m.inflight.WithLabelValues(variant).Inc()
}

func (m *ToggleMetrics) Finished(variant string, direction toggle.Direction, outcome toggle.Outcome) {
	m.inflight.WithLabelValues(variant).Dec()
	m.outcomes.WithLabelValues(variant, string(direction), outcome.String()).Inc()
}
