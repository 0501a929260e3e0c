package dom

// Node is an opaque handle to a native output node. The reconciler
// stores handles on fibers and threads them back into Adapter calls;
// it never inspects them.
type Node interface{}

// Adapter creates and mutates native output nodes on behalf of the
// reconciler. Implementations are stateless with respect to the fiber
// tree: every call carries the nodes it operates on.
type Adapter interface {
	// CreateElement creates a native node for an element description.
	CreateElement(tag string) Node

	// CreateText creates a native text node with the given content.
	CreateText(text string) Node

	// Patch applies the property diff between oldProps and newProps to
	// the node: listeners present in oldProps but changed or absent in
	// newProps are detached, stale attributes are removed, and new or
	// changed attributes and listeners are set. The reserved key
	// "nodeValue" carries text-node content.
	Patch(n Node, oldProps, newProps map[string]any)

	// Append attaches child as the last child of parent. Appending a
	// node that is already attached moves it.
	Append(parent, child Node)

	// InsertBefore attaches child immediately before the before node
	// under parent. A nil before appends. Inserting a node that is
	// already attached moves it.
	InsertBefore(parent, child, before Node)

	// Remove detaches child from parent.
	Remove(parent, child Node)
}
