package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/loomui/loom/pkg/dom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed output with indentation. Intended
	// for development; it increases output size.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes in-memory output trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node tree to an HTML string.
func (r *Renderer) RenderToString(node *dom.MemNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a node tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *dom.MemNode) error {
	return r.renderNode(w, node, 0)
}

func (r *Renderer) renderNode(w io.Writer, node *dom.MemNode, depth int) error {
	if node == nil {
		return nil
	}
	if node.IsText() {
		return r.renderText(w, node, depth)
	}
	return r.renderElement(w, node, depth)
}

func (r *Renderer) renderText(w io.Writer, node *dom.MemNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := io.WriteString(w, escapeHTML(node.Text)); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

func (r *Renderer) renderElement(w io.Writer, node *dom.MemNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if isVoidElement(node.Tag) {
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if r.config.Pretty && len(node.Children) > 0 {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && len(node.Children) > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes writes the node's attributes in sorted key order so
// output is deterministic. Event listeners are not serializable and
// are skipped.
func (r *Renderer) renderAttributes(w io.Writer, node *dom.MemNode) error {
	if len(node.Attrs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Attrs))
	for k := range node.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := node.Attrs[k]
		switch val := v.(type) {
		case bool:
			// Boolean attributes render bare when true, not at all
			// when false.
			if val {
				if _, err := fmt.Fprintf(w, " %s", k); err != nil {
					return err
				}
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, k, escapeAttr(attrString(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

func attrString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}

// voidElements never take children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

func isVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}
