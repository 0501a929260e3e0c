// Package dom defines the output-node boundary of the Loom runtime.
//
// The reconciler core never touches a concrete output tree directly. It
// consumes exactly four primitive operations through the Adapter
// interface: create a node for a leaf description, apply an
// attribute/listener diff to an existing node, attach a node under a
// parent, and detach it again. Everything else (traversal, diffing,
// ordering) is the core's business.
//
// # Adapters
//
// MemAdapter is the built-in in-memory adapter. It maintains a full
// output tree (MemNode) with attributes, event listeners, and ordered
// children, and counts the operations applied to it. It backs tests,
// benchmarks, the HTML renderer, and the dev server snapshot. A real
// host (a browser bridge, a terminal surface) implements Adapter the
// same way.
package dom
