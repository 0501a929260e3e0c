// Package loom provides the public API for the Loom UI runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/loomui/loom"
//
// Usage:
//
//	app := loom.New(loom.Config{DevMode: true})
//	app.Mount(loom.H(Counter, nil))
//	http.ListenAndServe(":8080", app.Handler())
package loom

import (
	"github.com/loomui/loom/pkg/fiber"
)

// VNode is an immutable render description produced by components.
type VNode = fiber.VNode

// Props carries the attributes, handlers, and reserved keys of a VNode.
type Props = fiber.Props

// Ctx is the render-session context passed to every component call.
type Ctx = fiber.Ctx

// ComponentFunc is a user component: a function from props to child
// descriptions.
type ComponentFunc = fiber.ComponentFunc

// H builds an element or component VNode.
var H = fiber.H

// Text builds a text VNode.
var Text = fiber.Text

// Textf builds a text VNode from a format string.
var Textf = fiber.Textf

// NodeRef is a mutable reference to an output node, populated at
// commit via the reserved "ref" prop.
type NodeRef = fiber.NodeRef

// Cleanup is an effect teardown function.
type Cleanup = fiber.Cleanup

// Lazy builds a component that loads its implementation on demand.
var Lazy = fiber.Lazy

// NewContext creates a typed context with a default value.
func NewContext[T any](def T) *fiber.Context[T] {
	return fiber.NewContext(def)
}

// UseState declares a persistent state cell on the calling component.
func UseState[T any](c *Ctx, initial T) (T, *fiber.Setter[T]) {
	return fiber.UseState(c, initial)
}

// UseReducer declares a reducer-backed state cell.
func UseReducer[S, A any](c *Ctx, reducer func(S, A) S, initial S) (S, func(A)) {
	return fiber.UseReducer(c, reducer, initial)
}

// UseEffect schedules fn after commit when deps change.
var UseEffect = fiber.UseEffect

// UseMemo caches a computed value across renders.
func UseMemo[T any](c *Ctx, compute func() T, deps []any) T {
	return fiber.UseMemo(c, compute, deps)
}

// UseCallback caches a function value across renders.
func UseCallback[T any](c *Ctx, fn T, deps []any) T {
	return fiber.UseCallback(c, fn, deps)
}

// UseRef declares a stable mutable cell that does not trigger renders.
func UseRef[T any](c *Ctx, initial T) *fiber.Ref[T] {
	return fiber.UseRef(c, initial)
}
