package fiber

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/loomui/loom/pkg/dom"
)

// HookKind identifies a hook cell variant, used by the DebugMode
// call-order assertion.
type HookKind uint8

const (
	HookState HookKind = iota + 1
	HookEffect
	HookMemo
	HookRef
)

// String returns a human-readable name for the hook kind.
func (k HookKind) String() string {
	switch k {
	case HookState:
		return "State"
	case HookEffect:
		return "Effect"
	case HookMemo:
		return "Memo"
	case HookRef:
		return "Ref"
	default:
		return "Unknown"
	}
}

// hookCell is the common shape of per-call-site storage.
type hookCell interface {
	hookKind() HookKind
}

// Ctx is the render context for one component invocation. It addresses
// the fiber whose hooks are being rebuilt; the hook cursor is implicit
// in the length of the rebuilt cell list.
type Ctx struct {
	rt    *Runtime
	fiber *Fiber
}

// Logger returns the runtime's logger for use inside components.
func (c *Ctx) Logger() *slog.Logger {
	return c.rt.logger
}

// Runtime returns the runtime rendering this component.
func (c *Ctx) Runtime() *Runtime {
	return c.rt
}

// useCell returns the previous render's cell at the current hook index,
// or nil on first render, and validates the hook kind in DebugMode.
func (c *Ctx) useCell(kind HookKind) hookCell {
	f := c.fiber
	idx := len(f.hooks)
	if f.alternate == nil || idx >= len(f.alternate.hooks) {
		return nil
	}
	prev := f.alternate.hooks[idx]
	if DebugMode && prev.hookKind() != kind {
		panic(fmt.Sprintf("fiber: hook order changed at index %d: expected %s, got %s",
			idx, prev.hookKind(), kind))
	}
	return prev
}

// setCell appends the cell for the current hook index.
func (c *Ctx) setCell(cell hookCell) {
	c.fiber.hooks = append(c.fiber.hooks, cell)
}

func hookOrderError(f *Fiber, want, got int) string {
	return fmt.Sprintf("fiber: hook order changed: expected %d hooks, got %d", want, got)
}

// =============================================================================
// State
// =============================================================================

// Setter updates a state cell. Its identity never changes across
// renders of the call site that created it.
type Setter[T any] struct {
	dispatch func(func(T) T)
}

// Set enqueues a replacement value and triggers a render pass.
// State is never mutated synchronously.
func (s *Setter[T]) Set(v T) {
	s.dispatch(func(T) T { return v })
}

// Update enqueues a functional update computed from the folded value at
// the next render.
func (s *Setter[T]) Update(fn func(T) T) {
	s.dispatch(fn)
}

type stateCell[T any] struct {
	mu     sync.Mutex
	value  T
	queue  []func(T) T
	setter *Setter[T]
}

func (*stateCell[T]) hookKind() HookKind { return HookState }

// UseState returns the current value of a persistent state cell and
// its stable setter. Queued actions are folded in enqueue order on
// every render, then the queue is cleared.
func UseState[T any](c *Ctx, initial T) (T, *Setter[T]) {
	prev := c.useCell(HookState)
	cell, ok := prev.(*stateCell[T])
	if !ok {
		cell = &stateCell[T]{value: initial}
		rt := c.rt
		cc := cell
		cell.setter = &Setter[T]{dispatch: func(fn func(T) T) {
			cc.mu.Lock()
			cc.queue = append(cc.queue, fn)
			cc.mu.Unlock()
			rt.RequestRender()
		}}
	}

	cell.mu.Lock()
	queue := cell.queue
	cell.queue = nil
	cell.mu.Unlock()
	for _, fn := range queue {
		cell.value = fn(cell.value)
	}

	c.setCell(cell)
	return cell.value, cell.setter
}

// =============================================================================
// Reducer
// =============================================================================

type reducerCell[S, A any] struct {
	mu       sync.Mutex
	value    S
	queue    []A
	reducer  func(S, A) S
	dispatch func(A)
}

func (*reducerCell[S, A]) hookKind() HookKind { return HookState }

// UseReducer returns the folded value of a reducer cell and its stable
// dispatch handle. Dispatch enqueues an action and triggers a render
// pass; actions are applied FIFO to the latest reducer on the next
// render.
func UseReducer[S, A any](c *Ctx, reducer func(S, A) S, initial S) (S, func(A)) {
	prev := c.useCell(HookState)
	cell, ok := prev.(*reducerCell[S, A])
	if !ok {
		cell = &reducerCell[S, A]{value: initial}
		rt := c.rt
		cc := cell
		cell.dispatch = func(a A) {
			cc.mu.Lock()
			cc.queue = append(cc.queue, a)
			cc.mu.Unlock()
			rt.RequestRender()
		}
	}
	cell.reducer = reducer

	cell.mu.Lock()
	queue := cell.queue
	cell.queue = nil
	cell.mu.Unlock()
	for _, a := range queue {
		cell.value = cell.reducer(cell.value, a)
	}

	c.setCell(cell)
	return cell.value, cell.dispatch
}

// =============================================================================
// Effect
// =============================================================================

// Cleanup undoes an effect. Returned by effect bodies; nil means
// nothing to undo.
type Cleanup func()

type effectCell struct {
	deps     []any // deps as of the last flushed run
	hasRun   bool
	nextDeps []any // staged at render, committed by the flush
	fn       func() Cleanup
	cleanup  Cleanup
}

func (*effectCell) hookKind() HookKind { return HookEffect }

// UseEffect queues fn to run after the next commit whenever deps
// changed since the previous flushed run. A nil deps list re-queues on
// every render; an empty non-nil list queues exactly once. The cleanup
// returned by the previous body runs before the new body, and once
// more on unmount.
//
// The cell's committed deps are only advanced when the effect actually
// flushes. A render pass that stages an effect and is then replaced
// before committing leaves the cell dirty, so the restarted pass
// queues the effect again.
func UseEffect(c *Ctx, fn func() Cleanup, deps []any) {
	prev := c.useCell(HookEffect)
	cell, ok := prev.(*effectCell)
	if !ok {
		cell = &effectCell{}
	}

	if !cell.hasRun || deps == nil || !depsEqual(cell.deps, deps) {
		cell.nextDeps = deps
		cell.fn = fn
		c.rt.pending = append(c.rt.pending, cell)
	}

	c.setCell(cell)
}

// depsEqual compares dependency lists element-wise by reference
// equality.
func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameRef(a[i], b[i]) {
			return false
		}
	}
	return true
}

// sameRef is reference equality over interface values. Pointers, maps,
// slices, channels, and funcs compare by address; comparable values
// compare with ==; everything else never matches.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		if va.Comparable() {
			return a == b
		}
		return false
	}
}

// =============================================================================
// Memo and Callback
// =============================================================================

type memoCell struct {
	deps  []any
	value any
	valid bool
}

func (*memoCell) hookKind() HookKind { return HookMemo }

// UseMemo recomputes the cached value only when deps changed, using
// the same comparison as UseEffect; otherwise the previous value is
// carried forward unchanged.
func UseMemo[T any](c *Ctx, compute func() T, deps []any) T {
	prev := c.useCell(HookMemo)
	cell, ok := prev.(*memoCell)
	if !ok {
		cell = &memoCell{}
	}

	if _, isT := cell.value.(T); cell.valid && isT &&
		deps != nil && depsEqual(cell.deps, deps) {
		cell.deps = deps
		c.setCell(cell)
		return cell.value.(T)
	}

	cell.value = compute()
	cell.valid = true
	cell.deps = deps
	c.setCell(cell)
	return cell.value.(T)
}

// UseCallback is a memo whose factory returns the callback itself,
// giving the callback a stable identity while deps are unchanged.
func UseCallback[F any](c *Ctx, fn F, deps []any) F {
	return UseMemo(c, func() F { return fn }, deps)
}

// =============================================================================
// Ref
// =============================================================================

// Ref is a stable mutable box. Its identity never changes across
// renders of the call site that created it; its contents may be
// mutated freely by the component or by the runtime.
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
	isSet bool
}

// Current returns the boxed value.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set stores a value in the box.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.isSet = true
}

// IsSet returns true once the box has been written.
func (r *Ref[T]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear resets the box to its zero value.
func (r *Ref[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.value = zero
	r.isSet = false
}

// NodeRef is a Ref holding an output node. Pass one as the "ref" prop
// of a host description and the commit engine wires it to the node on
// placement and update, and clears it on deletion.
type NodeRef = Ref[dom.Node]

type refCell struct {
	ref any
}

func (*refCell) hookKind() HookKind { return HookRef }

// UseRef returns a stable Ref for this call site, created with the
// initial value on first render only.
func UseRef[T any](c *Ctx, initial T) *Ref[T] {
	prev := c.useCell(HookRef)
	if cell, ok := prev.(*refCell); ok {
		if r, ok := cell.ref.(*Ref[T]); ok {
			c.setCell(cell)
			return r
		}
	}

	r := &Ref[T]{value: initial}
	c.setCell(&refCell{ref: r})
	return r
}

// =============================================================================
// External sources
// =============================================================================

// Source is an external event source a component can subscribe to,
// such as a hash-change location.
type Source[T any] interface {
	// Current returns the source's present value.
	Current() T

	// Subscribe registers fn for future values and returns a cancel
	// function.
	Subscribe(fn func(T)) (cancel func())
}

// UseSource subscribes the component to src for its lifetime and
// returns the source's latest value, re-rendering on every emission.
// Built on the state and effect primitives.
func UseSource[T any](c *Ctx, src Source[T]) T {
	value, set := UseState(c, src.Current())
	UseEffect(c, func() Cleanup {
		cancel := src.Subscribe(func(v T) {
			set.Set(v)
		})
		return Cleanup(cancel)
	}, []any{src})
	return value
}
