package fiber

import "fmt"

// VKind is the description type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Component function
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Props holds attributes and event handlers for a description.
// The keys "key" and "ref" are reserved: "key" carries the
// reconciliation key, "ref" a *NodeRef wired to the output node at
// commit time.
type Props map[string]any

// ComponentFunc is a component: invoked with the render context and its
// props, it returns a tree description, a slice of descriptions, or
// nil. Hook calls inside the function address storage on the fiber
// behind c.
type ComponentFunc func(c *Ctx, props Props) any

// VNode is a declarative tree description. Descriptions are inert
// values; the runtime never mutates them.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag name (e.g. "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Ordered child descriptions
	Key      string   // Reconciliation key
	Text     string   // For KindText
	Fn       ComponentFunc
}

// H builds a description from a type, props, and children. typ is
// either a native tag name (string) or a ComponentFunc. Children are
// flattened: nils and booleans are dropped, nested slices are spliced
// in, and strings and numbers are coerced to text nodes.
func H(typ any, props Props, children ...any) *VNode {
	v := &VNode{
		Props:    props,
		Children: Flatten(children...),
	}

	switch t := typ.(type) {
	case string:
		v.Kind = KindElement
		v.Tag = t
	case ComponentFunc:
		v.Kind = KindComponent
		v.Fn = t
	case func(*Ctx, Props) any:
		v.Kind = KindComponent
		v.Fn = ComponentFunc(t)
	default:
		panic(fmt.Sprintf("fiber: H called with unsupported type %T", typ))
	}

	if props != nil {
		if key, ok := props["key"]; ok {
			v.Key = fmt.Sprintf("%v", key)
		}
	}

	return v
}

// Text creates a text description.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text description.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Flatten normalizes a child list into an ordered description slice.
// Nils and booleans are dropped, nested slices are spliced in
// recursively, strings and numbers become text nodes, and bare
// component functions become component descriptions. Unsupported
// values are dropped.
func Flatten(children ...any) []*VNode {
	var out []*VNode
	for _, c := range children {
		out = appendFlat(out, c)
	}
	return out
}

func appendFlat(dst []*VNode, v any) []*VNode {
	switch x := v.(type) {
	case nil:
		return dst
	case bool:
		return dst
	case *VNode:
		if x != nil {
			dst = append(dst, x)
		}
	case []*VNode:
		for _, c := range x {
			dst = appendFlat(dst, c)
		}
	case []any:
		for _, c := range x {
			dst = appendFlat(dst, c)
		}
	case string:
		dst = append(dst, Text(x))
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		dst = append(dst, Textf("%v", x))
	case fmt.Stringer:
		dst = append(dst, Text(x.String()))
	case ComponentFunc:
		dst = append(dst, &VNode{Kind: KindComponent, Fn: x})
	case func(*Ctx, Props) any:
		dst = append(dst, &VNode{Kind: KindComponent, Fn: ComponentFunc(x)})
	}
	return dst
}
