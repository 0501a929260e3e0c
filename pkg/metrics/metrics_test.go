package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/loomui/loom/pkg/fiber"
)

func newTestCollector(t *testing.T) *Collector {
	t.Helper()
	return NewCollector(
		WithNamespace("test"),
		WithRegistry(prometheus.NewRegistry()),
	)
}

func TestCollectorCounts(t *testing.T) {
	col := newTestCollector(t)

	col.RenderScheduled()
	col.RenderScheduled()
	col.WorkPerformed(7)
	col.Yielded()

	if got := testutil.ToFloat64(col.rendersScheduled); got != 2 {
		t.Errorf("renders scheduled = %v, want 2", got)
	}
	if got := testutil.ToFloat64(col.workUnits); got != 7 {
		t.Errorf("work units = %v, want 7", got)
	}
	if got := testutil.ToFloat64(col.yields); got != 1 {
		t.Errorf("yields = %v, want 1", got)
	}
}

func TestCollectorCommitted(t *testing.T) {
	col := newTestCollector(t)

	col.Committed(fiber.CommitStats{
		Placements: 3,
		Updates:    2,
		Moves:      1,
		Deletions:  4,
		Effects:    5,
		Duration:   10 * time.Millisecond,
	})
	col.Committed(fiber.CommitStats{Placements: 1})

	if got := testutil.ToFloat64(col.commits); got != 2 {
		t.Errorf("commits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(col.effectsFlushed); got != 5 {
		t.Errorf("effects = %v, want 5", got)
	}
	if got := testutil.ToFloat64(col.mutations.WithLabelValues("placement")); got != 4 {
		t.Errorf("placements = %v, want 4", got)
	}
	if got := testutil.ToFloat64(col.mutations.WithLabelValues("update")); got != 2 {
		t.Errorf("updates = %v, want 2", got)
	}
	if got := testutil.ToFloat64(col.mutations.WithLabelValues("move")); got != 1 {
		t.Errorf("moves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(col.mutations.WithLabelValues("deletion")); got != 4 {
		t.Errorf("deletions = %v, want 4", got)
	}
}

func TestCollectorRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := NewCollector(WithNamespace("reg"), WithRegistry(reg))
	col.RenderScheduled()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather error: %v", err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "reg_renders_scheduled_total" {
			found = true
		}
	}
	if !found {
		t.Error("renders_scheduled_total not registered under the namespace")
	}
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	// Two collectors with the same names must coexist on separate
	// registries.
	a := NewCollector(WithRegistry(prometheus.NewRegistry()))
	b := NewCollector(WithRegistry(prometheus.NewRegistry()))

	a.Yielded()
	if got := testutil.ToFloat64(b.yields); got != 0 {
		t.Errorf("collector b yields = %v, want 0", got)
	}
}
