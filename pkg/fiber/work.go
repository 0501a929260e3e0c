package fiber

import "github.com/loomui/loom/pkg/dom"

// performUnit processes exactly one fiber and returns the next unit in
// traversal order: child first, then first unvisited sibling, then the
// nearest ancestor's unvisited sibling. Returns nil when the tree is
// fully walked.
func (rt *Runtime) performUnit(f *Fiber) *Fiber {
	if f.isComponent() {
		rt.updateComponent(f)
	} else {
		rt.updateHost(f)
	}

	if f.child != nil {
		return f.child
	}
	for n := f; n != nil; n = n.parent {
		if n.sibling != nil {
			return n.sibling
		}
	}
	return nil
}

// updateComponent invokes the component function with a fresh hook
// cursor, merges any provider values written during the invocation
// into the fiber's context map, and reconciles the flattened result.
func (rt *Runtime) updateComponent(f *Fiber) {
	f.hooks = nil
	c := &Ctx{rt: rt, fiber: f}

	result := f.fn(c, f.props)

	if DebugMode && f.alternate != nil && len(f.hooks) < len(f.alternate.hooks) {
		panic(hookOrderError(f, len(f.alternate.hooks), len(f.hooks)))
	}

	if f.pendingCtx != nil {
		merged := make(map[uint64]any, len(f.ctxMap)+len(f.pendingCtx))
		for k, v := range f.ctxMap {
			merged[k] = v
		}
		for k, v := range f.pendingCtx {
			merged[k] = v
		}
		f.ctxMap = merged
		f.pendingCtx = nil
	}

	rt.reconcileChildren(f, Flatten(result))
}

// updateHost creates the fiber's output node on first appearance and
// reconciles its child descriptions. Host fibers execute no user
// logic.
func (rt *Runtime) updateHost(f *Fiber) {
	if f.node == nil {
		f.node = rt.createNode(f)
	}
	rt.reconcileChildren(f, f.kids)
}

// createNode materializes the output node for a host fiber and applies
// its initial props. Creation is deferred from reconciliation to work
// time so it happens exactly once per placement.
func (rt *Runtime) createNode(f *Fiber) dom.Node {
	var n dom.Node
	if f.kind == KindText {
		text, _ := f.props["nodeValue"].(string)
		n = rt.adapter.CreateText(text)
	} else {
		n = rt.adapter.CreateElement(f.tag)
	}
	rt.adapter.Patch(n, nil, f.props)
	return n
}
