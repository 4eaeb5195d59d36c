package tree

import (
	"strings"

	"github.com/walteh/lupos-tmpl-typer/pkg/scanner"
)

// Build consumes a token stream and reconstructs the node tree. Tag nesting
// is rebuilt incrementally with an explicit current-node pointer plus the
// parent chain; mismatched end tags are recovered forgivingly rather than
// reported (the input is typically mid-edit).
func Build(tokens []scanner.Token) *Node {
	b := &builder{root: NewRoot()}
	b.current = b.root

	end := 0
	for _, tok := range tokens {
		b.consume(tok)
		if tok.End > end {
			end = tok.End
		}
	}

	// Tags left open at end of input close implicitly.
	for n := b.current; n != nil && n.Type == TagNode; n = n.Parent {
		b.closeImplicit(n, end)
	}

	return b.root
}

type builder struct {
	root    *Node
	current *Node
}

func (b *builder) consume(tok scanner.Token) {
	switch tok.Kind {
	case scanner.StartTagName:
		n := &Node{
			Type:       TagNode,
			TagName:    tok.Text,
			Start:      tok.Start - 1, // the '<'
			End:        -1,
			TagStart:   tok.Start - 1,
			NameStart:  tok.Start,
			NameEnd:    tok.End,
			ClosureEnd: -1,
		}
		b.current.Append(n)
		b.current = n

	case scanner.AttributeName:
		if b.current.Type != TagNode {
			return
		}
		b.current.Attributes = append(b.current.Attributes, &Attribute{
			Name:       tok.Text,
			Start:      tok.Start,
			End:        tok.End,
			NameStart:  tok.Start,
			NameEnd:    tok.End,
			ValueStart: -1,
			ValueEnd:   -1,
		})

	case scanner.AttributeValue:
		attrs := b.current.Attributes
		if b.current.Type != TagNode || len(attrs) == 0 {
			return
		}
		a := attrs[len(attrs)-1]
		a.RawValue = tok.Text
		a.Value, a.Quoted = unquoteValue(tok.Text)
		a.ValueStart = tok.Start
		a.ValueEnd = tok.End
		a.End = tok.End

	case scanner.TagEnd:
		if b.current.Type != TagNode {
			return
		}
		b.current.TagEnd = tok.End
		if scanner.SelfClosingTags[b.current.TagName] {
			b.closeTag(b.current, tok.End)
		}

	case scanner.SelfCloseTagEnd:
		if b.current.Type != TagNode {
			return
		}
		b.current.TagEnd = tok.End
		b.current.SelfClosed = true
		b.closeTag(b.current, tok.End)

	case scanner.EndTagName:
		b.closeFrom(tok)

	case scanner.Text:
		trimmed := trimText(tok.Text)
		if trimmed == "" {
			// Purely formatting whitespace between tags carries no
			// rendering meaning; never becomes a node.
			return
		}
		b.current.Append(&Node{
			Type:  TextNode,
			Text:  trimmed,
			Desc:  tok.Text,
			Start: tok.Start,
			End:   tok.End,
		})

	case scanner.CommentText:
		b.current.Append(&Node{
			Type:  CommentNode,
			Text:  tok.Text,
			Start: tok.Start,
			End:   tok.End,
		})
	}
}

// closeFrom handles an end tag token: walk up from the current node looking
// for a matching open tag (an empty name, "</>", matches immediately). All
// intermediate ancestors close implicitly. When nothing matches anywhere up
// the chain, everything closes up to the root; this deliberately does not
// replicate browser-grade implicit-closing rules.
func (b *builder) closeFrom(tok scanner.Token) {
	lt := tok.Start - 2 // the "</"

	var target *Node
	for n := b.current; n != nil && n.Type == TagNode; n = n.Parent {
		if tok.Text == "" || n.TagName == tok.Text {
			target = n
			break
		}
	}

	if target == nil {
		for n := b.current; n != nil && n.Type == TagNode; n = n.Parent {
			b.closeImplicit(n, lt)
		}
		b.current = b.root
		return
	}

	for n := b.current; n != target; n = n.Parent {
		b.closeImplicit(n, lt)
	}
	target.End = tok.End
	target.ClosureEnd = tok.End
	b.current = target.Parent
}

func (b *builder) closeTag(n *Node, end int) {
	n.End = end
	n.ClosureEnd = end
	b.current = n.Parent
}

func (b *builder) closeImplicit(n *Node, at int) {
	if n.End < 0 {
		n.End = at
	}
	if n.ClosureEnd < 0 {
		n.ClosureEnd = at
	}
}

// trimText collapses whitespace runs to a single space and trims the ends.
// Trimming twice equals trimming once.
func trimText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// unquoteValue strips surrounding quotes and resolves backslash escapes of
// the matching quote and of backslash itself. Unterminated quotes keep the
// best-effort remainder.
func unquoteValue(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	q := raw[0]
	if q != '"' && q != '\'' {
		return raw, false
	}

	inner := raw[1:]
	if len(inner) > 0 && inner[len(inner)-1] == q {
		inner = inner[:len(inner)-1]
	}

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && (inner[i+1] == q || inner[i+1] == '\\') {
			i++
			c = inner[i]
		}
		b.WriteByte(c)
	}
	return b.String(), true
}
