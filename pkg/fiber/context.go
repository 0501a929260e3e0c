package fiber

// Context is a typed value channel inherited down the fiber tree.
// A provider component calls Provide during its invocation; after the
// component returns, the runtime merges the value into the fiber's
// inherited map (a copy layered over the parent's, never a mutation)
// before descendants reconcile. Any descendant reads the nearest
// provided value with Use, falling back to the default.
//
// Providers for the same Context in disjoint subtrees never interact;
// nested providers shadow because each providing fiber owns its copy.
type Context[T any] struct {
	id  uint64
	def T
}

// NewContext creates a context with a default value, returned by Use
// when no provider exists above the reading fiber.
func NewContext[T any](def T) *Context[T] {
	return &Context[T]{
		id:  nextID(),
		def: def,
	}
}

// Provide tags the active fiber with a pending value for this context.
// The value becomes visible to descendants produced in the same pass,
// not to already-processed ancestors or siblings.
func (x *Context[T]) Provide(c *Ctx, value T) {
	f := c.fiber
	if f.pendingCtx == nil {
		f.pendingCtx = make(map[uint64]any, 1)
	}
	f.pendingCtx[x.id] = value
}

// Use reads the nearest ancestor's provided value, or the default if
// no provider exists above this fiber. Reads are positionless: the
// context map is resolved at fiber creation, not by call order.
func (x *Context[T]) Use(c *Ctx) T {
	if v, ok := c.fiber.ctxMap[x.id]; ok {
		return v.(T)
	}
	return x.def
}
