// Package fiber implements the Loom incremental tree-reconciliation
// runtime: a cooperative work-unit scheduler over a double-buffered
// fiber tree, a keyed/unkeyed child diff, an atomic commit protocol,
// and an ordered hook-cell subsystem for component-local state.
//
// # Model
//
// A VNode is a declarative tree description built with H:
//
//	H("ul", nil,
//	    H("li", fiber.Props{"key": "a"}, "first"),
//	    H("li", fiber.Props{"key": "b"}, "second"),
//	)
//
// A Runtime mounts descriptions into an output container provided by a
// dom.Adapter. Each render pass builds a work-in-progress fiber tree
// one unit at a time, yielding to the scheduler between units, and
// commits all mutations in a single uninterrupted pass.
//
// # Components and hooks
//
// A component is a function invoked with an explicit render context:
//
//	func Counter(c *fiber.Ctx, props fiber.Props) any {
//	    count, set := fiber.UseState(c, 0)
//	    return fiber.H("button", fiber.Props{
//	        "onclick": func() { set.Update(func(n int) int { return n + 1 }) },
//	    }, count)
//	}
//
// Hooks are addressed by call order within one invocation; the order
// must not change between renders of the same fiber. Setting DebugMode
// enables an assertion that panics when the order drifts.
//
// # Scheduling
//
// Work is cooperative and single-threaded: the scheduler performs one
// fiber's work per step and yields when the deadline margin is
// exhausted, resuming at exactly the next unit. A state dispatch
// unconditionally replaces any in-flight work-in-progress pass; queued
// state actions survive the replacement, half-built trees do not.
//
// A component that panics during render is not recovered by the
// runtime.
package fiber
