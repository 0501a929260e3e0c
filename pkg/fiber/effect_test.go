package fiber

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

var effectLog []string

var effectModel struct {
	deps      []any
	showChild bool
}

func loggingEffect(c *Ctx, props Props) any {
	UseEffect(c, func() Cleanup {
		effectLog = append(effectLog, "run")
		return func() {
			effectLog = append(effectLog, "cleanup")
		}
	}, effectModel.deps)
	return H("div", nil)
}

func TestEffectRunsAfterCommit(t *testing.T) {
	h := newHarness(t)
	effectLog = nil
	effectModel.deps = []any{}

	h.rt.Mount(h.container, H(loggingEffect, nil))
	if len(effectLog) != 0 {
		t.Fatal("effect ran before the pass committed")
	}
	h.drain(t)

	if strings.Join(effectLog, ",") != "run" {
		t.Errorf("log = %v, want [run]", effectLog)
	}
	stats := h.obs.lastCommit(t)
	if stats.Effects != 1 {
		t.Errorf("stats.Effects = %d, want 1", stats.Effects)
	}
}

func TestEffectEmptyDepsRunsOnce(t *testing.T) {
	h := newHarness(t)
	effectLog = nil
	effectModel.deps = []any{}

	h.mount(t, H(loggingEffect, nil))
	h.rerender(t)
	h.rerender(t)

	if strings.Join(effectLog, ",") != "run" {
		t.Errorf("log = %v, want a single run", effectLog)
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	h := newHarness(t)
	effectLog = nil
	effectModel.deps = nil // re-run every render

	h.mount(t, H(loggingEffect, nil))
	h.rerender(t)

	if strings.Join(effectLog, ",") != "run,cleanup,run" {
		t.Errorf("log = %v, want [run cleanup run]", effectLog)
	}
}

func TestEffectRerunsOnDepsChange(t *testing.T) {
	h := newHarness(t)
	effectLog = nil
	effectModel.deps = []any{1}

	h.mount(t, H(loggingEffect, nil))
	h.rerender(t)
	if strings.Join(effectLog, ",") != "run" {
		t.Fatalf("log = %v, want [run] while deps stable", effectLog)
	}

	effectModel.deps = []any{2}
	h.rerender(t)
	if strings.Join(effectLog, ",") != "run,cleanup,run" {
		t.Errorf("log = %v, want [run cleanup run]", effectLog)
	}
}

func effectParent(c *Ctx, props Props) any {
	if effectModel.showChild {
		return H("div", nil, H(loggingEffect, nil))
	}
	return H("div", nil)
}

func TestEffectCleanupOnUnmount(t *testing.T) {
	h := newHarness(t)
	effectLog = nil
	effectModel.deps = []any{}
	effectModel.showChild = true

	h.mount(t, H(effectParent, nil))
	if strings.Join(effectLog, ",") != "run" {
		t.Fatalf("log = %v, want [run]", effectLog)
	}

	effectModel.showChild = false
	h.rerender(t)

	if strings.Join(effectLog, ",") != "run,cleanup" {
		t.Errorf("log = %v, want [run cleanup]", effectLog)
	}

	// The cleanup must not fire again on later passes.
	h.rerender(t)
	if strings.Join(effectLog, ",") != "run,cleanup" {
		t.Errorf("log = %v, cleanup ran more than once", effectLog)
	}
}

// replayProbe drives the pass-replacement scenario: a dep-carrying
// effect next to a sibling whose render can be held open past the
// slice deadline.
var replayProbe struct {
	runs    []int
	dep     *Setter[int]
	other   *Setter[int]
	block   bool
	entered chan struct{}
	gate    chan struct{}
}

func depEffect(c *Ctx, props Props) any {
	v, set := UseState(c, 0)
	replayProbe.dep = set
	UseEffect(c, func() Cleanup {
		replayProbe.runs = append(replayProbe.runs, v)
		return nil
	}, []any{v})
	return H("p", nil, v)
}

func stalledSibling(c *Ctx, props Props) any {
	_, set := UseState(c, 0)
	replayProbe.other = set
	if replayProbe.block {
		replayProbe.entered <- struct{}{}
		<-replayProbe.gate
	}
	return H("span", nil, "s")
}

func TestEffectSurvivesReplacedPass(t *testing.T) {
	h := newHarness(t)
	replayProbe.runs = nil
	replayProbe.block = false
	replayProbe.entered = make(chan struct{})
	replayProbe.gate = make(chan struct{})

	h.mount(t, H(depEffect, nil), H(stalledSibling, nil))
	if fmt.Sprint(replayProbe.runs) != "[0]" {
		t.Fatalf("runs = %v, want [0] after mount", replayProbe.runs)
	}

	// Change the effect's dep, then run the pass only until the sibling
	// render holds the slice open past its deadline.
	replayProbe.dep.Set(1)
	replayProbe.block = true
	deadline := time.Now().Add(100 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		h.sched.Pump(deadline)
		close(done)
	}()
	<-replayProbe.entered

	// An unrelated dispatch replaces the held pass, discarding its
	// queued effects.
	replayProbe.other.Set(7)
	for !time.Now().After(deadline) {
		time.Sleep(time.Millisecond)
	}
	close(replayProbe.gate)
	<-done
	replayProbe.block = false

	if len(h.obs.commits) != 1 {
		t.Fatalf("commits = %d, the held pass must have yielded uncommitted", len(h.obs.commits))
	}

	// The restarted pass must queue and flush the dep-changed effect.
	h.drain(t)
	if fmt.Sprint(replayProbe.runs) != "[0 1]" {
		t.Errorf("runs = %v, want [0 1] after the restarted pass", replayProbe.runs)
	}
}

func TestEffectDispatchSchedulesNextPass(t *testing.T) {
	h := newHarness(t)

	var rendered int
	comp := func(c *Ctx, props Props) any {
		value, set := UseState(c, 0)
		rendered = value
		UseEffect(c, func() Cleanup {
			set.Set(1)
			return nil
		}, []any{})
		return H("div", nil)
	}

	// The effect dispatches during the flush; Drain pumps the follow-up
	// pass it schedules.
	h.mount(t, H(comp, nil))

	if rendered != 1 {
		t.Errorf("rendered value = %d, want 1 after effect dispatch", rendered)
	}
}
