package fiber

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/dom"
)

// commitRoot applies the completed work-in-progress tree to the output
// tree in one uninterrupted pass: all deletions first, then placements
// and updates in traversal order. The buffers then swap and the queued
// effects are handed back to the caller for flushing outside the lock.
func (rt *Runtime) commitRoot() ([]*effectCell, CommitStats) {
	start := time.Now()
	var stats CommitStats

	for _, d := range rt.deletions {
		rt.commitDeletion(d, &stats)
	}
	rt.commitWalk(rt.wip.child, rt.container, &stats)

	rt.current = rt.wip
	rt.wip = nil
	rt.deletions = nil

	effects := rt.pending
	rt.pending = nil

	stats.Effects = len(effects)
	stats.Duration = time.Since(start)

	if rt.tracer != nil {
		_, span := rt.tracer.Start(context.Background(), "loom.commit",
			trace.WithTimestamp(start))
		span.SetAttributes(
			attribute.Int("loom.placements", stats.Placements),
			attribute.Int("loom.updates", stats.Updates),
			attribute.Int("loom.moves", stats.Moves),
			attribute.Int("loom.deletions", stats.Deletions),
			attribute.Int("loom.effects", stats.Effects),
		)
		span.End()
	}

	return effects, stats
}

// commitWalk applies Placement and Update mutations depth-first,
// threading the owning output parent down through component fibers
// unchanged and switching it at each host fiber.
func (rt *Runtime) commitWalk(f *Fiber, parentNode dom.Node, stats *CommitStats) {
	if f == nil {
		return
	}

	childParent := parentNode
	if f.node != nil {
		switch f.effectTag {
		case TagPlacement:
			rt.adapter.Append(parentNode, f.node)
			stats.Placements++
			wireRef(f)
		case TagUpdate:
			var oldProps Props
			if f.alternate != nil {
				oldProps = f.alternate.props
			}
			rt.adapter.Patch(f.node, oldProps, f.props)
			stats.Updates++
			if f.moved {
				rt.adapter.InsertBefore(parentNode, f.node, rt.nextHostNode(f))
				stats.Moves++
			}
			wireRef(f)
		}
		childParent = f.node
	}

	rt.commitWalk(f.child, childParent, stats)
	rt.commitWalk(f.sibling, parentNode, stats)
}

// commitDeletion detaches a deleted fiber's first owned output node
// from its nearest live parent, then walks the subtree running hook
// cleanups. Deleted fibers hang off the pending-deletions list, not
// the main traversal, so the parent node is looked up per entry.
func (rt *Runtime) commitDeletion(f *Fiber, stats *CommitStats) {
	parentNode := rt.container
	for p := f.parent; p != nil; p = p.parent {
		if p.node != nil {
			parentNode = p.node
			break
		}
	}

	rt.removeFirstNode(f, parentNode)
	runCleanups(f)
	stats.Deletions++
}

// removeFirstNode detaches the subtree's first owned output node,
// descending through component fibers that own none.
func (rt *Runtime) removeFirstNode(f *Fiber, parentNode dom.Node) {
	if f.node != nil {
		rt.adapter.Remove(parentNode, f.node)
		return
	}
	if f.child != nil {
		rt.removeFirstNode(f.child, parentNode)
	}
}

// runCleanups invokes every hook cleanup in a deleted subtree,
// children only: sibling deletions are their own entries.
func runCleanups(f *Fiber) {
	for _, h := range f.hooks {
		if ec, ok := h.(*effectCell); ok && ec.cleanup != nil {
			ec.cleanup()
			ec.cleanup = nil
		}
	}
	if r := nodeRefOf(f); r != nil {
		r.Clear()
	}
	for c := f.child; c != nil; c = c.sibling {
		runCleanups(c)
	}
}

// nextHostNode finds the output node a moved fiber must be inserted
// before: the first owned node among its following siblings. Nil means
// append.
func (rt *Runtime) nextHostNode(f *Fiber) dom.Node {
	for s := f.sibling; s != nil; s = s.sibling {
		if n := firstHostNode(s); n != nil {
			return n
		}
	}
	return nil
}

func firstHostNode(f *Fiber) dom.Node {
	if f.node != nil {
		return f.node
	}
	for c := f.child; c != nil; c = c.sibling {
		if n := firstHostNode(c); n != nil {
			return n
		}
	}
	return nil
}

// wireRef points a declared output-reference box at the fiber's node.
// Re-wired on every placement and update: the box identity may have
// changed between renders.
func wireRef(f *Fiber) {
	if r := nodeRefOf(f); r != nil {
		r.Set(f.node)
	}
}

func nodeRefOf(f *Fiber) *NodeRef {
	if f.props == nil {
		return nil
	}
	r, _ := f.props["ref"].(*NodeRef)
	return r
}
