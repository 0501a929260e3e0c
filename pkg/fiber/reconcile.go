package fiber

import mapset "github.com/deckarep/golang-set/v2"

// reconcileChildren diffs a fiber's new child descriptions against its
// previous child chain and links the produced fibers as the new chain,
// each tagged with the mutation it requires.
//
// Previous children are partitioned into a key map (explicit keys) and
// a positional list (unkeyed). Keyed descriptions match by key in any
// position; unkeyed descriptions consume the next unconsumed positional
// entry. A match is compatible only if the types agree; anything else
// is a placement, and every previous fiber never claimed by a new
// description is marked for deletion.
func (rt *Runtime) reconcileChildren(wip *Fiber, elements []*VNode) {
	var oldKeyed map[string]*Fiber
	var oldPos []*Fiber

	if wip.alternate != nil {
		for old := wip.alternate.child; old != nil; old = old.sibling {
			if old.key != "" {
				if oldKeyed == nil {
					oldKeyed = make(map[string]*Fiber)
				}
				oldKeyed[old.key] = old
			} else {
				oldPos = append(oldPos, old)
			}
		}
	}

	var seen mapset.Set[string]
	posIdx := 0
	var first, prev *Fiber

	for newIdx, el := range elements {
		var old *Fiber
		movedKey := false

		if el.Key != "" {
			if seen == nil {
				seen = mapset.NewThreadUnsafeSet[string]()
			}
			if !seen.Add(el.Key) {
				rt.logger.Warn("duplicate key in child list",
					"key", el.Key, "index", newIdx)
			}
			if f, ok := oldKeyed[el.Key]; ok {
				old = f
				delete(oldKeyed, el.Key)
				movedKey = f.index != newIdx
			}
		} else if posIdx < len(oldPos) {
			old = oldPos[posIdx]
			posIdx++
		}

		var nf *Fiber
		if old != nil && compatible(old, el) {
			nf = newFiber(el, wip, newIdx)
			nf.node = old.node
			nf.alternate = old
			nf.effectTag = TagUpdate
			nf.moved = el.Key != "" && movedKey
		} else {
			if old != nil {
				old.effectTag = TagDeletion
				rt.deletions = append(rt.deletions, old)
			}
			nf = newFiber(el, wip, newIdx)
			nf.effectTag = TagPlacement
		}

		if prev == nil {
			first = nf
		} else {
			prev.sibling = nf
		}
		prev = nf
	}

	// Previous fibers no new description claimed.
	for ; posIdx < len(oldPos); posIdx++ {
		oldPos[posIdx].effectTag = TagDeletion
		rt.deletions = append(rt.deletions, oldPos[posIdx])
	}
	for _, old := range oldKeyed {
		old.effectTag = TagDeletion
		rt.deletions = append(rt.deletions, old)
	}

	wip.child = first
}
