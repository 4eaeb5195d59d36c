package tree

import (
	"strings"

	"github.com/walteh/lupos-tmpl-typer/pkg/scanner"
)

// OuterHTML serializes the node and its subtree back to template text.
// Removed attributes are skipped; text nodes render their trimmed content,
// so serialization round-trips the input modulo whitespace trimming.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.serialize(&b)
	return b.String()
}

// InnerHTML serializes only the node's children.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.Children {
		c.serialize(&b)
	}
	return b.String()
}

func (n *Node) serialize(b *strings.Builder) {
	switch n.Type {
	case RootNode:
		for _, c := range n.Children {
			c.serialize(b)
		}

	case TextNode:
		b.WriteString(n.Text)

	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")

	case TagNode:
		b.WriteByte('<')
		b.WriteString(n.TagName)
		for _, a := range n.Attributes {
			if a.Removed {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(a.Name)
			if a.RawValue != "" {
				b.WriteByte('=')
				b.WriteString(a.RawValue)
			}
		}

		if n.SelfClosed {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')

		if scanner.SelfClosingTags[n.TagName] {
			return
		}

		for _, c := range n.Children {
			c.serialize(b)
		}

		b.WriteString("</")
		b.WriteString(n.TagName)
		b.WriteByte('>')
	}
}
