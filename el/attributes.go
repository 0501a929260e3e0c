// Attribute and event helpers for the element DSL.
package el

import (
	"strings"

	"github.com/loomui/loom/pkg/fiber"
)

func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}

// Class joins the given class names with spaces.
func Class(classes ...string) Attr {
	return Attr{Key: "class", Value: strings.Join(classes, " ")}
}

func Style(style string) Attr {
	return Attr{Key: "style", Value: style}
}

// Data sets a data-* attribute.
func Data(key, value string) Attr {
	return Attr{Key: "data-" + key, Value: value}
}

func Href(url string) Attr {
	return Attr{Key: "href", Value: url}
}

func Src(url string) Attr {
	return Attr{Key: "src", Value: url}
}

func Alt(text string) Attr {
	return Attr{Key: "alt", Value: text}
}

func Type(t string) Attr {
	return Attr{Key: "type", Value: t}
}

func Name(name string) Attr {
	return Attr{Key: "name", Value: name}
}

func Value(v any) Attr {
	return Attr{Key: "value", Value: v}
}

func Placeholder(text string) Attr {
	return Attr{Key: "placeholder", Value: text}
}

func Title_(text string) Attr {
	return Attr{Key: "title", Value: text}
}

func Disabled(disabled bool) Attr {
	return Attr{Key: "disabled", Value: disabled}
}

func Checked(checked bool) Attr {
	return Attr{Key: "checked", Value: checked}
}

func Role(role string) Attr {
	return Attr{Key: "role", Value: role}
}

func AriaLabel(label string) Attr {
	return Attr{Key: "aria-label", Value: label}
}

func TabIndex(index int) Attr {
	return Attr{Key: "tabindex", Value: index}
}

// Key sets the reconciliation key.
func Key(key any) Attr {
	return Attr{Key: "key", Value: key}
}

// Ref wires a node reference at commit time.
func Ref(r *fiber.NodeRef) Attr {
	return Attr{Key: "ref", Value: r}
}

// On attaches a handler for an arbitrary event name.
func On(event string, handler any) Attr {
	return Attr{Key: "on" + event, Value: handler}
}

func OnClick(handler any) Attr {
	return On("click", handler)
}

func OnInput(handler any) Attr {
	return On("input", handler)
}

func OnChange(handler any) Attr {
	return On("change", handler)
}

func OnSubmit(handler any) Attr {
	return On("submit", handler)
}

func OnKeyDown(handler any) Attr {
	return On("keydown", handler)
}

func OnFocus(handler any) Attr {
	return On("focus", handler)
}

func OnBlur(handler any) Attr {
	return On("blur", handler)
}
