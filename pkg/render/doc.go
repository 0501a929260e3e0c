// Package render serializes a committed in-memory output tree to HTML.
//
// The renderer walks a dom.MemNode tree and writes escaped markup with
// deterministic attribute order. It backs the dev server's snapshot
// frames and the CLI demo; it has no knowledge of fibers or
// reconciliation.
package render
