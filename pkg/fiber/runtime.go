package fiber

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/dom"
)

// DebugMode enables dev-time validation, notably the hook-order
// assertion. Set at startup, not changed during runtime.
var DebugMode bool

// Config configures a Runtime.
type Config struct {
	// Adapter is the output-node adapter. Defaults to an in-memory
	// adapter.
	Adapter dom.Adapter

	// Scheduler is the host idle-time facility. Defaults to a
	// FrameScheduler owned (and stopped) by the Runtime.
	Scheduler Scheduler

	// TimeSlice is the slice handed to the default FrameScheduler.
	// Ignored when Scheduler is set.
	TimeSlice time.Duration

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Observer receives scheduler lifecycle signals. Optional.
	Observer Observer

	// Tracer records a span per commit. Optional.
	Tracer trace.Tracer
}

// Runtime is the render session: it owns the current and
// work-in-progress roots, the traversal cursor, the pending-deletions
// and pending-effects lists, and the scheduling state. All render
// bookkeeping lives here rather than in package-level singletons, so
// independent runtimes never interfere.
type Runtime struct {
	adapter dom.Adapter
	sched   Scheduler
	logger  *slog.Logger
	obs     Observer
	tracer  trace.Tracer

	ownSched *FrameScheduler

	// mu guards the fields below. The work loop holds it for a whole
	// slice; triggers take it briefly to swap roots.
	mu        sync.Mutex
	container dom.Node
	rootKids  []*VNode
	current   *Fiber
	wip       *Fiber
	next      *Fiber
	deletions []*Fiber
	pending   []*effectCell

	mounted   atomic.Bool
	dirty     atomic.Bool
	scheduled atomic.Bool
}

// New creates a Runtime.
func New(cfg Config) *Runtime {
	rt := &Runtime{
		adapter: cfg.Adapter,
		sched:   cfg.Scheduler,
		logger:  cfg.Logger,
		obs:     cfg.Observer,
		tracer:  cfg.Tracer,
	}
	if rt.adapter == nil {
		rt.adapter = dom.NewMemAdapter()
	}
	if rt.sched == nil {
		rt.ownSched = NewFrameScheduler(cfg.TimeSlice)
		rt.sched = rt.ownSched
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}
	if rt.obs == nil {
		rt.obs = NopObserver{}
	}
	return rt
}

// Adapter returns the runtime's output-node adapter.
func (rt *Runtime) Adapter() dom.Adapter {
	return rt.adapter
}

// Container returns the mounted output container, or nil before Mount.
func (rt *Runtime) Container() dom.Node {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.container
}

// Close stops the runtime's own scheduler, if it created one. A
// Runtime handed an external Scheduler leaves it running.
func (rt *Runtime) Close() {
	if rt.ownSched != nil {
		rt.ownSched.Stop()
	}
}

// Mount starts rendering the given descriptions into container. The
// children are flattened like any other child list. Mounting again
// replaces the root descriptions and re-renders.
func (rt *Runtime) Mount(container dom.Node, children ...any) {
	rt.mu.Lock()
	rt.container = container
	rt.rootKids = Flatten(children...)
	rt.mu.Unlock()

	rt.mounted.Store(true)
	rt.RequestRender()
}

// RequestRender begins a new render pass from the committed root.
// Dispatch handles call this on every state action; external triggers
// may call it directly. It never blocks, so components may dispatch
// while their own render is in progress. A pass already in flight is
// unconditionally replaced at the next callback: queued state actions
// are preserved on their hook cells, the half-built tree walk is
// discarded and restarted.
func (rt *Runtime) RequestRender() {
	if !rt.mounted.Load() {
		return
	}
	rt.dirty.Store(true)
	rt.scheduleWork()
}

// Sync runs fn while no render work or commit is in progress, giving
// fn a stable view of the output tree. It blocks for at most about one
// work slice. Must not be called from a component render or from fn
// itself.
func (rt *Runtime) Sync(fn func()) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	fn()
}

// prepareRootLocked installs a fresh work-in-progress root referencing
// the committed root as alternate, resets the traversal cursor, and
// clears the per-pass pending lists.
func (rt *Runtime) prepareRootLocked() {
	rt.wip = &Fiber{
		kind:      KindElement,
		node:      rt.container,
		kids:      rt.rootKids,
		alternate: rt.current,
	}
	rt.next = rt.wip
	rt.deletions = nil
	rt.pending = nil
}

// scheduleWork ensures exactly one scheduler callback is pending.
// Repeated calls before it fires are no-ops.
func (rt *Runtime) scheduleWork() {
	if !rt.scheduled.CompareAndSwap(false, true) {
		return
	}
	rt.obs.RenderScheduled()
	rt.sched.Request(rt.workCallback)
}

// workCallback is the cooperative work loop: perform one unit at a
// time while the budget holds, commit when the walk is exhausted,
// re-arm when work remains.
func (rt *Runtime) workCallback(deadline time.Time) {
	rt.scheduled.Store(false)

	rt.mu.Lock()
	if rt.dirty.Swap(false) {
		rt.prepareRootLocked()
	}
	units := 0
	for rt.next != nil && time.Until(deadline) > yieldMargin {
		rt.next = rt.performUnit(rt.next)
		units++
	}

	var effects []*effectCell
	var stats CommitStats
	committed := false
	if rt.next == nil && rt.wip != nil {
		effects, stats = rt.commitRoot()
		committed = true
	}
	more := rt.next != nil
	rt.mu.Unlock()

	if units > 0 {
		rt.obs.WorkPerformed(units)
	}
	if committed {
		rt.flushEffects(effects)
		rt.obs.Committed(stats)
	}
	if more {
		rt.obs.Yielded()
		rt.scheduleWork()
	}
}

// flushEffects runs queued effects in enqueue order: previous cleanup
// first, then the new body, storing the new cleanup back on the cell.
// The staged dep list becomes the cell's committed deps here, not at
// render time, so a replaced pass leaves the cell able to re-queue.
// Runs outside the runtime lock so effect bodies may dispatch.
func (rt *Runtime) flushEffects(effects []*effectCell) {
	for _, cell := range effects {
		if cell.cleanup != nil {
			cell.cleanup()
			cell.cleanup = nil
		}
		cell.deps = cell.nextDeps
		cell.hasRun = true
		if cell.fn != nil {
			cell.cleanup = cell.fn()
		}
	}
}
