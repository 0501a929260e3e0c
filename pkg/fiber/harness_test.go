package fiber

import (
	"testing"
	"time"

	"github.com/loomui/loom/pkg/dom"
)

// recordObserver captures lifecycle signals for assertions.
type recordObserver struct {
	scheduled int
	units     int
	yields    int
	commits   []CommitStats
}

func (o *recordObserver) RenderScheduled()        { o.scheduled++ }
func (o *recordObserver) WorkPerformed(units int) { o.units += units }
func (o *recordObserver) Yielded()                { o.yields++ }
func (o *recordObserver) Committed(s CommitStats) { o.commits = append(o.commits, s) }

func (o *recordObserver) lastCommit(t *testing.T) CommitStats {
	t.Helper()
	if len(o.commits) == 0 {
		t.Fatal("no commit recorded")
	}
	return o.commits[len(o.commits)-1]
}

// harness wires a runtime to a manual scheduler and an in-memory
// adapter so tests drive render passes deterministically.
type harness struct {
	adapter   *dom.MemAdapter
	sched     *ManualScheduler
	obs       *recordObserver
	rt        *Runtime
	container *dom.MemNode
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		adapter: dom.NewMemAdapter(),
		sched:   NewManualScheduler(),
		obs:     &recordObserver{},
	}
	h.rt = New(Config{
		Adapter:   h.adapter,
		Scheduler: h.sched,
		Observer:  h.obs,
	})
	h.container = h.adapter.NewContainer("root")
	return h
}

// mount mounts children and drains the scheduler to the first commit.
func (h *harness) mount(t *testing.T, children ...any) {
	t.Helper()
	h.rt.Mount(h.container, children...)
	h.drain(t)
}

// rerender triggers a pass and drains it.
func (h *harness) rerender(t *testing.T) {
	t.Helper()
	h.rt.RequestRender()
	h.drain(t)
}

func (h *harness) drain(t *testing.T) {
	t.Helper()
	if h.sched.Drain() == 0 {
		t.Fatal("no scheduler callback was pending")
	}
}

// waitPending blocks until a scheduler callback is queued, for passes
// triggered from goroutines (async loads, subscriptions).
func (h *harness) waitPending(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.sched.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for a scheduled pass")
		}
		time.Sleep(time.Millisecond)
	}
}

// settle drains passes as they arrive until cond holds, for renders
// fed by goroutines whose triggers may straddle a drain.
func (h *harness) settle(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the tree to settle")
		}
		if h.sched.Pending() > 0 {
			h.sched.Drain()
		} else {
			time.Sleep(time.Millisecond)
		}
	}
}

// childTexts collects the text content of element children, assuming
// each child wraps a single text node.
func childTexts(t *testing.T, n *dom.MemNode) []string {
	t.Helper()
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if len(c.Children) != 1 || !c.Children[0].IsText() {
			t.Fatalf("child %q does not wrap a single text node", c.Tag)
		}
		out = append(out, c.Children[0].Text)
	}
	return out
}
