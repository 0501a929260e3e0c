package fiber

import "testing"

func TestHElement(t *testing.T) {
	v := H("div", Props{"class": "a", "key": 7}, "hi", nil, 42)

	if v.Kind != KindElement || v.Tag != "div" {
		t.Errorf("kind/tag = %v/%q, want Element/div", v.Kind, v.Tag)
	}
	if v.Key != "7" {
		t.Errorf("key = %q, want 7 (stringified)", v.Key)
	}
	if len(v.Children) != 2 {
		t.Fatalf("children = %d, want 2 (nil dropped)", len(v.Children))
	}
	if v.Children[0].Kind != KindText || v.Children[0].Text != "hi" {
		t.Errorf("child 0 = %+v, want text hi", v.Children[0])
	}
	if v.Children[1].Text != "42" {
		t.Errorf("child 1 text = %q, want 42", v.Children[1].Text)
	}
}

func TestHComponent(t *testing.T) {
	comp := func(c *Ctx, props Props) any { return nil }

	v := H(comp, Props{"n": 1})
	if v.Kind != KindComponent || v.Fn == nil {
		t.Errorf("kind = %v fn nil = %v, want Component with fn", v.Kind, v.Fn == nil)
	}

	v2 := H(ComponentFunc(comp), nil)
	if v2.Kind != KindComponent {
		t.Errorf("kind = %v, want Component for ComponentFunc", v2.Kind)
	}
}

func TestHPanicsOnUnsupportedType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unsupported type")
		}
	}()
	H(42, nil)
}

func TestFlattenSplicesAndDrops(t *testing.T) {
	inner := []any{"b", H("i", nil)}
	out := Flatten("a", true, false, nil, inner, []*VNode{Text("c")}, struct{}{})

	if len(out) != 4 {
		t.Fatalf("flattened = %d nodes, want 4", len(out))
	}
	if out[0].Text != "a" || out[1].Text != "b" {
		t.Errorf("texts = %q, %q, want a, b", out[0].Text, out[1].Text)
	}
	if out[2].Tag != "i" {
		t.Errorf("tag = %q, want i", out[2].Tag)
	}
	if out[3].Text != "c" {
		t.Errorf("text = %q, want c", out[3].Text)
	}
}

func TestFlattenCoercesComponentFuncs(t *testing.T) {
	comp := func(c *Ctx, props Props) any { return nil }
	out := Flatten(comp)
	if len(out) != 1 || out[0].Kind != KindComponent {
		t.Fatalf("flattened = %+v, want a single component node", out)
	}
}

func TestTextf(t *testing.T) {
	v := Textf("%d-%s", 3, "x")
	if v.Kind != KindText || v.Text != "3-x" {
		t.Errorf("node = %+v, want text 3-x", v)
	}
}

func TestEnumStrings(t *testing.T) {
	if KindComponent.String() != "Component" {
		t.Errorf("VKind string = %q", KindComponent.String())
	}
	if TagPlacement.String() != "Placement" {
		t.Errorf("EffectTag string = %q", TagPlacement.String())
	}
	if HookEffect.String() != "Effect" {
		t.Errorf("HookKind string = %q", HookEffect.String())
	}
	if LazyResolved.String() != "Resolved" {
		t.Errorf("LazyStatus string = %q", LazyResolved.String())
	}
}
