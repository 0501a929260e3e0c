package render

import (
	"strings"
	"testing"

	"github.com/loomui/loom/pkg/dom"
)

func build(tag string, attrs map[string]any, children ...*dom.MemNode) *dom.MemNode {
	return &dom.MemNode{Tag: tag, Attrs: attrs, Children: children}
}

func text(s string) *dom.MemNode {
	return &dom.MemNode{Text: s}
}

func TestRenderElementWithAttributes(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := build("div", map[string]any{"class": "card", "id": "main"},
		text("hello"))

	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	want := `<div class="card" id="main">hello</div>`
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestRenderAttributesSorted(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := build("i", map[string]any{"z": "1", "a": "2", "m": "3"})

	html, _ := r.RenderToString(node)
	if html != `<i a="2" m="3" z="1"></i>` {
		t.Errorf("html = %q, attributes must be in sorted key order", html)
	}
}

func TestRenderEscapesText(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := build("p", nil, text(`<script>alert("x & y")</script>`))

	html, _ := r.RenderToString(node)
	if strings.Contains(html, "<script>") {
		t.Fatalf("html = %q leaks markup", html)
	}
	want := "<p>&lt;script&gt;alert(&quot;x &amp; y&quot;)&lt;/script&gt;</p>"
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	node := build("a", map[string]any{"title": `say "hi"` + "\r\n\t"})

	html, _ := r.RenderToString(node)
	want := `<a title="say &quot;hi&quot;&#13;&#10;&#9;"></a>`
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	for _, tag := range []string{"br", "img", "input", "meta"} {
		html, _ := r.RenderToString(build(tag, nil))
		if strings.Contains(html, "</") {
			t.Errorf("%s rendered a closing tag: %q", tag, html)
		}
	}

	html, _ := r.RenderToString(build("div", nil))
	if html != "<div></div>" {
		t.Errorf("non-void div = %q, want explicit closing tag", html)
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	html, _ := r.RenderToString(build("input", map[string]any{"disabled": true}))
	if html != "<input disabled>" {
		t.Errorf("html = %q, want bare boolean attribute", html)
	}

	html, _ = r.RenderToString(build("input", map[string]any{"disabled": false}))
	if html != "<input>" {
		t.Errorf("html = %q, false boolean attribute must vanish", html)
	}
}

func TestRenderNumericAttribute(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	html, _ := r.RenderToString(build("td", map[string]any{"colspan": 2}))
	if html != `<td colspan="2"></td>` {
		t.Errorf("html = %q", html)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	node := build("ul", nil,
		build("li", nil, text("a")),
	)

	html, _ := r.RenderToString(node)
	want := "<ul>\n  <li>\n    a\n  </li>\n</ul>\n"
	if html != want {
		t.Errorf("pretty html = %q, want %q", html, want)
	}
}

func TestRenderNilNode(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(nil)
	if err != nil || html != "" {
		t.Errorf("nil node = (%q, %v), want empty and no error", html, err)
	}
}
