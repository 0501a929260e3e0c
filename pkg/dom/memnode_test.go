package dom

import "testing"

func TestPatchSetsAndRemovesAttrs(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateElement("div").(*MemNode)

	oldProps := map[string]any(nil)
	newProps := map[string]any{"class": "a", "id": "x"}
	a.Patch(n, oldProps, newProps)

	if n.Attrs["class"] != "a" || n.Attrs["id"] != "x" {
		t.Errorf("attrs = %v, want class=a id=x", n.Attrs)
	}

	a.Patch(n, newProps, map[string]any{"class": "b"})
	if n.Attrs["class"] != "b" {
		t.Errorf("class = %v, want b", n.Attrs["class"])
	}
	if _, ok := n.Attrs["id"]; ok {
		t.Error("removed attribute id still present")
	}
}

func TestPatchTextNode(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateText("old").(*MemNode)

	if !n.IsText() {
		t.Fatal("text node reports IsText false")
	}

	a.Patch(n, map[string]any{"nodeValue": "old"}, map[string]any{"nodeValue": "new"})
	if n.Text != "new" {
		t.Errorf("text = %q, want new", n.Text)
	}
}

func TestPatchUnchangedDoesNotCount(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateElement("div").(*MemNode)

	props := map[string]any{"class": "a"}
	a.Patch(n, nil, props)
	patches := a.Counts.Patches

	a.Patch(n, props, map[string]any{"class": "a"})
	if a.Counts.Patches != patches {
		t.Errorf("patches = %d, want %d for a no-op diff", a.Counts.Patches, patches)
	}
}

func TestPatchRoutesListeners(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateElement("button").(*MemNode)

	onClick := func() {}
	props := map[string]any{"onClick": onClick, "class": "btn"}
	a.Patch(n, nil, props)

	if _, ok := n.Handlers["onClick"]; !ok {
		t.Error("listener missing from Handlers")
	}
	if _, ok := n.Attrs["onClick"]; ok {
		t.Error("listener leaked into Attrs")
	}

	a.Patch(n, props, map[string]any{"class": "btn"})
	if _, ok := n.Handlers["onClick"]; ok {
		t.Error("removed listener still present")
	}
}

func TestPatchSkipsReservedProps(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateElement("li").(*MemNode)

	a.Patch(n, nil, map[string]any{"key": "k", "ref": struct{}{}, "class": "row"})
	if _, ok := n.Attrs["key"]; ok {
		t.Error("reserved key prop reflected onto node")
	}
	if _, ok := n.Attrs["ref"]; ok {
		t.Error("reserved ref prop reflected onto node")
	}
	if n.Attrs["class"] != "row" {
		t.Errorf("class = %v, want row", n.Attrs["class"])
	}
}

func TestPatchUncomparableAttr(t *testing.T) {
	a := NewMemAdapter()
	n := a.CreateElement("div").(*MemNode)

	// Slice-valued attrs must not panic the differ.
	oldProps := map[string]any{"data": []string{"a"}}
	a.Patch(n, nil, oldProps)
	a.Patch(n, oldProps, map[string]any{"data": []string{"a", "b"}})

	got, _ := n.Attrs["data"].([]string)
	if len(got) != 2 {
		t.Errorf("data = %v, want two entries", got)
	}
}

func TestAppendAndRemove(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("ul")
	child := a.CreateElement("li").(*MemNode)

	a.Append(parent, child)
	if child.Parent() != parent || parent.IndexOf(child) != 0 {
		t.Fatal("append did not attach the child")
	}
	if a.Counts.Attaches != 1 {
		t.Errorf("attaches = %d, want 1", a.Counts.Attaches)
	}

	a.Remove(parent, child)
	if child.Parent() != nil || len(parent.Children) != 0 {
		t.Error("remove did not detach the child")
	}
	if a.Counts.Removes != 1 {
		t.Errorf("removes = %d, want 1", a.Counts.Removes)
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("ul")
	first := a.CreateElement("li").(*MemNode)
	second := a.CreateElement("li").(*MemNode)
	a.Append(parent, first)
	a.Append(parent, second)

	// Re-attaching an attached node is a move, not a second attach.
	a.InsertBefore(parent, second, first)

	if parent.Children[0] != second || parent.Children[1] != first {
		t.Error("insert before did not reorder the children")
	}
	if a.Counts.Moves != 1 {
		t.Errorf("moves = %d, want 1", a.Counts.Moves)
	}
	if a.Counts.Attaches != 2 {
		t.Errorf("attaches = %d, want 2", a.Counts.Attaches)
	}
}

func TestInsertBeforeNilAppends(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("div")
	x := a.CreateElement("span").(*MemNode)
	y := a.CreateElement("span").(*MemNode)
	a.Append(parent, x)

	a.InsertBefore(parent, y, nil)
	if parent.Children[1] != y {
		t.Error("nil before should append at the end")
	}
}

func TestRemoveClearsStaleParentLink(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("ul")
	child := a.CreateElement("li").(*MemNode)
	a.Append(parent, child)

	// An out-of-band edit dropped the child list entry but left the
	// child's parent link behind.
	parent.Children = nil
	a.Remove(parent, child)

	if child.Parent() != nil {
		t.Fatal("stale parent link survived Remove")
	}

	// Re-attaching elsewhere is a plain attach, not a move.
	other := a.NewContainer("ol")
	a.InsertBefore(other, child, nil)
	if a.Counts.Moves != 0 {
		t.Errorf("moves = %d, want 0", a.Counts.Moves)
	}
	if a.Counts.Attaches != 2 {
		t.Errorf("attaches = %d, want 2", a.Counts.Attaches)
	}
	if child.Parent() != other {
		t.Error("child not attached to the new parent")
	}
}

func TestRemoveWrongParentLeavesChildAttached(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("ul")
	other := a.NewContainer("ol")
	child := a.CreateElement("li").(*MemNode)
	a.Append(parent, child)

	a.Remove(other, child)
	if child.Parent() != parent || parent.IndexOf(child) != 0 {
		t.Error("remove against the wrong parent detached the child")
	}
}

func TestChildTags(t *testing.T) {
	a := NewMemAdapter()
	parent := a.NewContainer("div")
	a.Append(parent, a.CreateElement("b"))
	a.Append(parent, a.CreateText("txt"))

	tags := parent.ChildTags()
	if len(tags) != 2 || tags[0] != "b" || tags[1] != "txt" {
		t.Errorf("tags = %v, want [b txt]", tags)
	}
}
