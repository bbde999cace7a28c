package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerCounters(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterEntries.WithLabelValues("weight").Inc()
	m.CounterEntries.WithLabelValues("weight").Inc()
	m.CounterEntries.WithLabelValues("reps").Inc()
	m.CounterRequests.With(prometheus.Labels{"method": "PUT", "status": "200"}).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterEntries.WithLabelValues("weight")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterEntries.WithLabelValues("reps")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "workouttracker_test_entries_recorded_total")
	assert.Contains(t, names, "workouttracker_test_requests_total")
}

func TestSetupPrometheusRegistersExtra(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := SetupPrometheus(extra)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "extra_total" {
			found = true
		}
	}
	assert.True(t, found, "extra collector not gathered")
}
