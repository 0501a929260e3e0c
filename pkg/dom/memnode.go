package dom

import (
	"reflect"
	"strings"
)

// MemNode is a node in the in-memory output tree.
type MemNode struct {
	Tag      string         // Element tag name; empty for text nodes
	Text     string         // Text content for text nodes
	Attrs    map[string]any // Plain attributes
	Handlers map[string]any // Event listeners, keyed by "onclick" etc.
	Children []*MemNode     // Ordered child nodes

	parent *MemNode
}

// IsText returns true if this is a text node.
func (n *MemNode) IsText() bool {
	return n.Tag == ""
}

// Parent returns the node's current parent, or nil if detached.
func (n *MemNode) Parent() *MemNode {
	return n.parent
}

// IndexOf returns the position of child among n's children, or -1.
func (n *MemNode) IndexOf(child *MemNode) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// ChildTags returns the tags (or text for text nodes) of n's children
// in order. Convenience for assertions.
func (n *MemNode) ChildTags() []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		if c.IsText() {
			out[i] = c.Text
		} else {
			out[i] = c.Tag
		}
	}
	return out
}

// OpCounts records how many primitive operations an adapter applied.
type OpCounts struct {
	Creates  int
	Patches  int
	Attaches int // Append/InsertBefore calls for previously detached nodes
	Moves    int // Append/InsertBefore calls that relocated an attached node
	Removes  int
}

// MemAdapter is the in-memory Adapter implementation.
// It is not safe for concurrent mutation; the runtime serializes all
// adapter calls on the scheduler loop.
type MemAdapter struct {
	Counts OpCounts
}

// NewMemAdapter creates a new in-memory adapter.
func NewMemAdapter() *MemAdapter {
	return &MemAdapter{}
}

// NewContainer creates a detached element node to mount into.
func (a *MemAdapter) NewContainer(tag string) *MemNode {
	return &MemNode{Tag: tag}
}

// CreateElement implements Adapter.
func (a *MemAdapter) CreateElement(tag string) Node {
	a.Counts.Creates++
	return &MemNode{Tag: tag}
}

// CreateText implements Adapter.
func (a *MemAdapter) CreateText(text string) Node {
	a.Counts.Creates++
	return &MemNode{Text: text}
}

// Patch implements Adapter.
func (a *MemAdapter) Patch(n Node, oldProps, newProps map[string]any) {
	node := n.(*MemNode)
	changed := false

	// Drop removed or changed listeners.
	for key, old := range oldProps {
		if !isListener(key) {
			continue
		}
		if next, ok := newProps[key]; !ok || !sameHandler(old, next) {
			delete(node.Handlers, key)
			changed = true
		}
	}

	// Drop removed attributes.
	for key := range oldProps {
		if isListener(key) || isReservedProp(key) {
			continue
		}
		if _, ok := newProps[key]; !ok {
			delete(node.Attrs, key)
			changed = true
		}
	}

	// Set new or changed attributes and listeners.
	for key, next := range newProps {
		if isReservedProp(key) {
			continue
		}
		if key == "nodeValue" {
			text, _ := next.(string)
			if node.Text != text {
				node.Text = text
				changed = true
			}
			continue
		}
		if isListener(key) {
			if old, ok := node.Handlers[key]; !ok || !sameHandler(old, next) {
				if node.Handlers == nil {
					node.Handlers = make(map[string]any)
				}
				node.Handlers[key] = next
				changed = true
			}
			continue
		}
		if old, ok := oldProps[key]; !ok || !attrEqual(old, next) {
			if node.Attrs == nil {
				node.Attrs = make(map[string]any)
			}
			node.Attrs[key] = next
			changed = true
		}
	}

	if changed {
		a.Counts.Patches++
	}
}

// Append implements Adapter.
func (a *MemAdapter) Append(parent, child Node) {
	a.InsertBefore(parent, child, nil)
}

// InsertBefore implements Adapter.
func (a *MemAdapter) InsertBefore(parent, child, before Node) {
	p := parent.(*MemNode)
	c := child.(*MemNode)

	if c.parent != nil {
		c.parent.detach(c)
		a.Counts.Moves++
	} else {
		a.Counts.Attaches++
	}

	idx := len(p.Children)
	if before != nil {
		if b, ok := before.(*MemNode); ok {
			if i := p.IndexOf(b); i >= 0 {
				idx = i
			}
		}
	}

	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = c
	c.parent = p
}

// Remove implements Adapter.
func (a *MemAdapter) Remove(parent, child Node) {
	p := parent.(*MemNode)
	c := child.(*MemNode)
	p.detach(c)
	a.Counts.Removes++
}

// detach unlinks c from n's child list. The parent link is cleared
// whenever it points at n, even if c is missing from the child list,
// so a stale link can never masquerade as an attachment.
func (n *MemNode) detach(c *MemNode) {
	if i := n.IndexOf(c); i >= 0 {
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
	}
	if c.parent == n {
		c.parent = nil
	}
}

// isListener returns true if the prop key names an event listener.
// Case-insensitive on the prefix to catch onClick, OnInput, etc.
func isListener(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// isReservedProp returns true for props the adapter must not reflect
// onto the output node.
func isReservedProp(key string) bool {
	return key == "key" || key == "ref"
}

// sameHandler compares two listener values. Function values are not
// comparable in Go, so any replacement counts as a change.
func sameHandler(a, b any) bool {
	return a == nil && b == nil
}

// attrEqual compares two attribute values.
func attrEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
