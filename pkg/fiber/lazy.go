package fiber

import "sync"

// LazyStatus is the tri-state of an asynchronous component load.
type LazyStatus uint8

const (
	LazyPending LazyStatus = iota
	LazyResolved
	LazyFailed
)

// String returns the string representation of the LazyStatus.
func (s LazyStatus) String() string {
	switch s {
	case LazyPending:
		return "Pending"
	case LazyResolved:
		return "Resolved"
	case LazyFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// lazyState is the shared resolution record for one Lazy call site.
// All mounted instances of the returned component observe the same
// record, so the factory runs at most once. Instances that mount while
// the load is in flight register as waiters and are notified on
// settle.
type lazyState struct {
	mu      sync.Mutex
	started bool
	status  LazyStatus
	comp    ComponentFunc
	err     error
	waiters map[*Setter[LazyStatus]]struct{}
}

// Lazy wraps an asynchronous component factory. The factory is invoked
// exactly once, on the first mount of the returned component, in its
// own goroutine. While the load is pending the component renders its
// "fallback" prop (a description, or nothing); once resolved it
// renders the loaded component with the same props; on failure it
// renders the "error" prop and logs the failure.
//
// The load result is ordinary state: resolution triggers a normal
// render pass, never a panic or a thrown sentinel.
func Lazy(load func() (ComponentFunc, error)) ComponentFunc {
	ls := &lazyState{}

	return func(c *Ctx, props Props) any {
		status, set := UseState(c, LazyPending)

		UseEffect(c, func() Cleanup {
			ls.mu.Lock()
			if ls.status != LazyPending {
				// Settled before this instance mounted.
				st := ls.status
				ls.mu.Unlock()
				set.Set(st)
				return nil
			}

			if ls.waiters == nil {
				ls.waiters = make(map[*Setter[LazyStatus]]struct{})
			}
			ls.waiters[set] = struct{}{}

			if !ls.started {
				ls.started = true
				go func() {
					comp, err := load()

					ls.mu.Lock()
					if err != nil {
						ls.status = LazyFailed
						ls.err = err
					} else {
						ls.status = LazyResolved
						ls.comp = comp
					}
					st := ls.status
					waiters := ls.waiters
					ls.waiters = nil
					ls.mu.Unlock()

					for w := range waiters {
						w.Set(st)
					}
				}()
			}
			ls.mu.Unlock()

			return func() {
				ls.mu.Lock()
				delete(ls.waiters, set)
				ls.mu.Unlock()
			}
		}, []any{})

		ls.mu.Lock()
		comp, err := ls.comp, ls.err
		ls.mu.Unlock()

		switch status {
		case LazyResolved:
			return H(comp, props)
		case LazyFailed:
			c.Logger().Warn("lazy component failed to load", "error", err)
			return props["error"]
		default:
			return props["fallback"]
		}
	}
}
