package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/handlekit/handle"
)

// gather registers c on a fresh registry and returns gauge values keyed by
// metric name, plus the label pairs of the policy info series.
func gather(t *testing.T, c prometheus.Collector) (map[string]float64, map[string]string) {
	t.Helper()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	labels := make(map[string]string)
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1, "metric %s", mf.GetName())
		metric := mf.GetMetric()[0]
		values[mf.GetName()] = metric.GetGauge().GetValue()
		if mf.GetName() == "test_ids_policy_info" {
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
		}
	}
	return values, labels
}

// TestCollector_Fresh verifies the series exported before any dispense.
func TestCollector_Fresh(t *testing.T) {
	m, err := handle.NewWithOptions(&handle.Options{Limit: 100})
	require.NoError(t, err)

	values, labels := gather(t, NewCollector("test", "ids", m, nil))

	assert.Equal(t, 0.0, values["test_ids_next_handle"])
	assert.Equal(t, -1.0, values["test_ids_highest_dispensed"])
	assert.Equal(t, 0.0, values["test_ids_freed_handles"])
	assert.Equal(t, 0.0, values["test_ids_live_handles"])
	assert.Equal(t, 0.0, values["test_ids_config_locked"])
	assert.Equal(t, 100.0, values["test_ids_remaining_fresh_handles"])
	assert.Equal(t, 1.0, values["test_ids_policy_info"])

	assert.Equal(t, "recycle-lowest", labels["alloc_policy"])
	assert.Equal(t, "dont-track", labels["release_policy"])
}

// TestCollector_TracksManager verifies scrapes reflect the current state.
func TestCollector_TracksManager(t *testing.T) {
	m, err := handle.NewWithOptions(&handle.Options{ReleasePolicy: handle.Tracked, Limit: 100})
	require.NoError(t, err)
	l := handle.NewLocked(m)
	c := NewCollector("test", "ids", l, nil)

	for range 10 {
		_, err := l.Next()
		require.NoError(t, err)
	}
	require.NoError(t, l.Release(4))
	require.NoError(t, l.Release(7))

	values, labels := gather(t, c)

	assert.Equal(t, 10.0, values["test_ids_next_handle"])
	assert.Equal(t, 9.0, values["test_ids_highest_dispensed"])
	assert.Equal(t, 2.0, values["test_ids_freed_handles"])
	assert.Equal(t, 8.0, values["test_ids_live_handles"])
	assert.Equal(t, 1.0, values["test_ids_config_locked"])
	assert.Equal(t, 90.0, values["test_ids_remaining_fresh_handles"])
	assert.Equal(t, "tracked", labels["release_policy"])

	// Recycling drains the free-set without moving the counter.
	_, err = l.Next()
	require.NoError(t, err)

	values, _ = gather(t, NewCollector("test", "ids", l, nil))
	assert.Equal(t, 1.0, values["test_ids_freed_handles"])
	assert.Equal(t, 10.0, values["test_ids_next_handle"])
}

// TestCollector_Count verifies the number of exported series.
func TestCollector_Count(t *testing.T) {
	c := NewCollector("test", "ids", handle.New(), prometheus.Labels{"pool": "conn"})

	assert.Equal(t, 7, testutil.CollectAndCount(c))
}
