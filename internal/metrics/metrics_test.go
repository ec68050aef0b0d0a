package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegistry_IsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names.
	a := NewMetricsRegistry(prometheus.NewRegistry())
	b := NewMetricsRegistry(prometheus.NewRegistry())

	a.ConflictSweepsTotal.Inc()
	a.ActiveConflicts.Set(3)
	a.StoreWritesTotal.WithLabelValues("pilots").Inc()

	if got := testutil.ToFloat64(a.ConflictSweepsTotal); got != 1 {
		t.Errorf("Expected 1 sweep, got %v", got)
	}
	if got := testutil.ToFloat64(b.ConflictSweepsTotal); got != 0 {
		t.Errorf("Expected second registry untouched, got %v", got)
	}
	if got := testutil.ToFloat64(a.ActiveConflicts); got != 3 {
		t.Errorf("Expected 3 active conflicts, got %v", got)
	}
	if got := testutil.ToFloat64(a.StoreWritesTotal.WithLabelValues("pilots")); got != 1 {
		t.Errorf("Expected 1 pilots write, got %v", got)
	}
}
