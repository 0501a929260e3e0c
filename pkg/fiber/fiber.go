package fiber

import (
	"reflect"

	"github.com/loomui/loom/pkg/dom"
)

// EffectTag is the mutation classification assigned during
// reconciliation and consumed during commit.
type EffectTag uint8

const (
	TagNone      EffectTag = iota
	TagPlacement           // New node, attach at commit
	TagUpdate              // Reused node, apply prop diff
	TagDeletion            // Unclaimed node, detach and clean up
)

// String returns the string representation of the EffectTag.
func (t EffectTag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagPlacement:
		return "Placement"
	case TagUpdate:
		return "Update"
	case TagDeletion:
		return "Deletion"
	default:
		return "Unknown"
	}
}

// Fiber is a node in the work tree. At most two fiber trees are live
// at any time: the committed "current" tree and the "work-in-progress"
// tree being built; alternate links a fiber to its counterpart in the
// other tree.
type Fiber struct {
	kind  VKind
	tag   string        // Native tag for host fibers
	fn    ComponentFunc // Component function for component fibers
	props Props
	key   string
	kids  []*VNode // Child descriptions for host fibers
	index int      // Position in the parent's child chain

	// node is the output node this fiber exclusively owns. Component
	// fibers own none; their subtree's host fibers do.
	node dom.Node

	// Tree links. A fiber is owned by its parent; child and sibling
	// point down and across, alternate is a non-owning back-reference
	// into the other buffer.
	parent    *Fiber
	child     *Fiber
	sibling   *Fiber
	alternate *Fiber

	effectTag EffectTag
	moved     bool // Keyed match whose position changed

	// hooks is the ordered cell list, rebuilt on every render of a
	// component fiber. Cells themselves persist by being carried
	// forward from alternate.hooks[i].
	hooks []hookCell

	// ctxMap is the inherited context value map. Shared with the
	// parent until a provider merge copies it.
	ctxMap map[uint64]any

	// pendingCtx holds values written by providers during the current
	// invocation, merged into ctxMap before children reconcile.
	pendingCtx map[uint64]any
}

// isComponent returns true for fibers whose type is a function.
func (f *Fiber) isComponent() bool {
	return f.kind == KindComponent
}

// compatible reports whether an existing fiber can be reused for a new
// description: same kind, same tag, and for components the same
// function identity.
func compatible(f *Fiber, v *VNode) bool {
	if f.kind != v.Kind {
		return false
	}
	switch v.Kind {
	case KindElement:
		return f.tag == v.Tag
	case KindComponent:
		return sameFunc(f.fn, v.Fn)
	default:
		return true
	}
}

// sameFunc compares component functions by code pointer. Function
// values are not comparable in Go; the code pointer distinguishes
// distinct component definitions, which is what type matching needs.
func sameFunc(a, b ComponentFunc) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// newFiber builds a work-in-progress fiber for a description under
// parent, inheriting the parent's effective context map.
func newFiber(v *VNode, parent *Fiber, index int) *Fiber {
	f := &Fiber{
		kind:   v.Kind,
		tag:    v.Tag,
		fn:     v.Fn,
		key:    v.Key,
		index:  index,
		parent: parent,
		ctxMap: parent.ctxMap,
	}

	switch v.Kind {
	case KindText:
		f.props = Props{"nodeValue": v.Text}
	case KindComponent:
		f.props = v.Props
		if len(v.Children) > 0 {
			merged := make(Props, len(v.Props)+1)
			for k, val := range v.Props {
				merged[k] = val
			}
			merged["children"] = v.Children
			f.props = merged
		}
	default:
		f.props = v.Props
		f.kids = v.Children
	}

	return f
}
