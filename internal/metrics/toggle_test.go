package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/iamasit07/photoshare/internal/service/toggle"
)

func TestToggleMetrics(t *testing.T) {
	m := NewToggleMetrics(prometheus.NewRegistry())

	m.Started("like", toggle.Activating)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inflight.WithLabelValues("like")))

	m.Finished("like", toggle.Activating, toggle.OutcomeRolledBack)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inflight.WithLabelValues("like")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("like", "activate", "rolled_back")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.outcomes.WithLabelValues("like", "activate", "settled")))
}

func TestRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewToggleMetrics(reg)
	assert.Panics(t, func() { NewToggleMetrics(reg) })
}
