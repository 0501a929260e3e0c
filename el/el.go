package el

import "github.com/loomui/loom/pkg/fiber"

// VNode is the description type produced by the DSL.
type VNode = fiber.VNode

// Attr is a single prop assignment consumed by element constructors.
type Attr struct {
	Key   string
	Value any
}

// E builds an element description from a tag and a mixed argument
// list: Attr values and Props maps merge into the props, everything
// else is flattened into the child list.
func E(tag string, args ...any) *VNode {
	var props fiber.Props
	children := make([]any, 0, len(args))

	for _, a := range args {
		switch x := a.(type) {
		case Attr:
			if props == nil {
				props = fiber.Props{}
			}
			props[x.Key] = x.Value
		case []Attr:
			if props == nil {
				props = fiber.Props{}
			}
			for _, at := range x {
				props[at.Key] = at.Value
			}
		case fiber.Props:
			if props == nil {
				props = fiber.Props{}
			}
			for k, v := range x {
				props[k] = v
			}
		default:
			children = append(children, a)
		}
	}

	return fiber.H(tag, props, children...)
}

// Text creates a text description.
func Text(content string) *VNode {
	return fiber.Text(content)
}

// Textf creates a formatted text description.
func Textf(format string, args ...any) *VNode {
	return fiber.Textf(format, args...)
}

// C embeds a component in a child list.
func C(fn fiber.ComponentFunc, props fiber.Props, children ...any) *VNode {
	return fiber.H(fn, props, children...)
}
