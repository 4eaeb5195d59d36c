package parts

import (
	"regexp"
	"strings"

	"github.com/walteh/lupos-tmpl-typer/pkg/placeholder"
	"github.com/walteh/lupos-tmpl-typer/pkg/tree"
)

// Emit receives each classified part in turn. Tag and attribute parts arrive
// in document order during the walk; text parts arrive afterwards, once the
// deferred text-splitting phase has run.
type Emit func(*Part)

var componentNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// Parse walks the tree depth-first, parent before children, classifying
// every syntactic position into a Part. Text splitting is collected into a
// post-order completion list during the walk and executed after it
// finishes: splitting splices new sibling nodes into the tree, which would
// invalidate the iteration if done in place.
func Parse(root *tree.Node, resolver SlotResolver, emit Emit) {
	if resolver == nil {
		resolver = PlainValueResolver{}
	}
	p := &parser{resolver: resolver, emit: emit}
	p.walk(root)
	for _, complete := range p.completions {
		complete()
	}
}

type parser struct {
	resolver    SlotResolver
	emit        Emit
	completions []func()
}

func (p *parser) walk(n *tree.Node) {
	switch n.Type {
	case tree.TagNode:
		p.parseTag(n)
	case tree.TextNode:
		node := n
		p.completions = append(p.completions, func() { p.parseText(node) })
	}

	children := make([]*tree.Node, len(n.Children))
	copy(children, n.Children)
	for _, c := range children {
		p.walk(c)
	}
}

// parseTag classifies the tag position itself, then classifies every
// attribute independently: the two passes are orthogonal.
func (p *parser) parseTag(n *tree.Node) {
	name := n.TagName

	switch {
	case name == "slot":
		part := &Part{
			Type:    SlotTag,
			RawName: name,
			Node:    n,
			Start:   n.NameStart,
			End:     n.NameEnd,
		}
		if a := n.Attr("name"); a != nil {
			part.MainName = a.Value
		}
		p.emit(part)

	case componentNamePattern.MatchString(name):
		p.emit(&Part{
			Type:     Component,
			RawName:  name,
			MainName: name,
			Node:     n,
			Start:    n.NameStart,
			End:      n.NameEnd,
		})

	case isDynamicComponentName(name):
		index, _ := placeholder.ParseIndex(name)
		p.emit(&Part{
			Type:    DynamicComponent,
			RawName: name,
			Node:    n,
			ValueIndices: []placeholder.SlotRef{{
				Index: index,
				Start: n.NameStart,
				End:   n.NameEnd,
			}},
			Start: n.NameStart,
			End:   n.NameEnd,
		})

	case strings.HasPrefix(name, FlowControlPrefix) && name != PortalTag:
		p.emit(&Part{
			Type:     FlowControl,
			RawName:  name,
			MainName: strings.TrimPrefix(name, FlowControlPrefix),
			Node:     n,
			Start:    n.NameStart,
			End:      n.NameEnd,
		})

	default:
		p.emit(&Part{
			Type:     NormalStartTag,
			RawName:  name,
			MainName: name,
			Node:     n,
			Start:    n.NameStart,
			End:      n.NameEnd,
		})
	}

	componentLike := componentNamePattern.MatchString(name) ||
		isDynamicComponentName(name) ||
		name == SharedModificationTag

	for _, a := range n.Attributes {
		p.parseAttribute(n, a, componentLike)
	}
}

func isDynamicComponentName(name string) bool {
	_, ok := placeholder.ParseIndex(name)
	return ok
}

// parseAttribute routes one attribute by its name prefix. Attributes that
// resolve to a non-attribute category are consumed (soft-removed) so later
// serialization passes skip them.
func (p *parser) parseAttribute(n *tree.Node, a *tree.Attribute, componentLike bool) {
	prefix := attrPrefix(a.Name)

	// A bare attribute whose name is slot content ("<lu:if ${cond}>") has
	// no name of its own; the name region is the value position.
	if prefix == "" && a.ValueStart < 0 {
		if lits, slots := placeholder.ParseContent(a.Name, false, a.NameStart); slots != nil {
			p.emit(&Part{
				Type:         SlottedAttribute,
				RawName:      a.Name,
				Strings:      lits,
				ValueIndices: slots,
				Node:         n,
				Attr:         a,
				Start:        a.Start,
				End:          a.End,
			})
			return
		}
	}

	rest := a.Name[len(prefix):]
	pieces := strings.Split(rest, ".")
	mainName := pieces[0]
	modifiers := pieces[1:]

	var lits []placeholder.Segment
	var slots []placeholder.SlotRef
	if a.ValueStart >= 0 {
		lits, slots = placeholder.ParseContent(rawValueText(a), a.Quoted, a.ValueStart)
	}

	var partType PartType
	switch prefix {
	case ".":
		partType = Property
	case ":", "?:":
		partType = Binding
	case "@":
		partType = Event
	case "?":
		partType = QueryAttribute
	default:
		partType = p.classifyPlainAttribute(n, mainName, componentLike, slots != nil)
	}

	switch partType {
	case Property, Binding, Event, QueryAttribute:
		a.Removed = true
	}

	if len(modifiers) == 1 && modifiers[0] == "" {
		modifiers = nil
	}

	p.emit(&Part{
		Type:         partType,
		RawName:      a.Name,
		NamePrefix:   prefix,
		MainName:     mainName,
		Modifiers:    modifiers,
		Strings:      lits,
		ValueIndices: slots,
		Node:         n,
		Attr:         a,
		Start:        a.Start,
		End:          a.End,
	})
}

// classifyPlainAttribute handles attributes with no recognized prefix.
// Plain class/style upgrade to Binding when a sibling binding would manage
// the same output, preventing a later plain-attribute write from clobbering
// it. Components and the shared-modification tag accept arbitrary
// pass-through attributes, so their plain attributes promote to slotted.
func (p *parser) classifyPlainAttribute(n *tree.Node, mainName string, componentLike, slotted bool) PartType {
	if mainName == "class" || mainName == "style" {
		if componentLike && slotted {
			return Binding
		}
		if n.Attr(":"+mainName) != nil || n.Attr("?:"+mainName) != nil {
			return Binding
		}
	}

	if slotted || componentLike {
		return SlottedAttribute
	}
	return UnSlottedAttribute
}

func attrPrefix(name string) string {
	if strings.HasPrefix(name, "?:") {
		return "?:"
	}
	if len(name) > 0 && strings.IndexByte(".:@?", name[0]) >= 0 {
		return name[:1]
	}
	return ""
}

// rawValueText returns the attribute value as written, quotes stripped but
// escapes unresolved, so slot spans computed over it line up with source
// offsets.
func rawValueText(a *tree.Attribute) string {
	if !a.Quoted {
		return a.RawValue
	}
	inner := a.RawValue[1:]
	if len(inner) > 0 && inner[len(inner)-1] == a.RawValue[0] {
		inner = inner[:len(inner)-1]
	}
	return inner
}

// parseText decomposes a text node into runs of consecutive literal+slot
// segments. Slots whose value is a plain value type merge into the
// surrounding text; a slot holding renderable content forces a split: the
// run before it closes out as text and the slot becomes its own Content
// part, represented by a freshly inserted comment placeholder node.
func (p *parser) parseText(n *tree.Node) {
	lits, slots := placeholder.ParseContent(n.Desc, false, n.Start)
	if lits == nil && slots == nil {
		return
	}

	if slots == nil {
		p.emit(&Part{
			Type:    UnSlottedText,
			Strings: lits,
			Node:    n,
			Start:   n.Start,
			End:     n.End,
		})
		return
	}

	interleaved := interleave(lits, slots)
	var replacements []*tree.Node
	var run []segmentOrSlot
	mutated := false

	flush := func() {
		if node, part := p.closeTextRun(run); part != nil {
			replacements = append(replacements, node)
			p.emit(part)
		} else if node != nil {
			replacements = append(replacements, node)
		}
		run = nil
	}

	for _, item := range interleaved {
		if item.slot == nil || p.resolver.IsPlainValue(item.slot.Index) {
			run = append(run, item)
			continue
		}

		// Renderable content: split here.
		mutated = true
		flush()

		comment := &tree.Node{
			Type:  tree.CommentNode,
			Desc:  placeholder.Marker(item.slot.Index),
			Start: item.slot.Start,
			End:   item.slot.End,
		}
		replacements = append(replacements, comment)
		p.emit(&Part{
			Type:         Content,
			ValueIndices: []placeholder.SlotRef{*item.slot},
			Node:         comment,
			Start:        item.slot.Start,
			End:          item.slot.End,
		})
	}

	if !mutated {
		// Every slot is a plain value: the node stays one text part.
		strs, refs := squash(lits, slots)
		p.emit(&Part{
			Type:         SlottedText,
			Strings:      strs,
			ValueIndices: refs,
			Node:         n,
			Start:        n.Start,
			End:          n.End,
		})
		return
	}

	flush()
	n.ReplaceWith(replacements...)
}

type segmentOrSlot struct {
	lit  *placeholder.Segment
	slot *placeholder.SlotRef
}

func interleave(lits []placeholder.Segment, slots []placeholder.SlotRef) []segmentOrSlot {
	var out []segmentOrSlot
	if lits == nil {
		for i := range slots {
			out = append(out, segmentOrSlot{slot: &slots[i]})
		}
		return out
	}
	for i := range lits {
		out = append(out, segmentOrSlot{lit: &lits[i]})
		if i < len(slots) {
			out = append(out, segmentOrSlot{slot: &slots[i]})
		}
	}
	return out
}

// closeTextRun materializes one accumulated run as a new text node plus its
// part. Runs with no slots and only whitespace produce nothing.
func (p *parser) closeTextRun(run []segmentOrSlot) (*tree.Node, *Part) {
	var lits []placeholder.Segment
	var slots []placeholder.SlotRef
	for _, item := range run {
		if item.lit != nil {
			lits = append(lits, *item.lit)
		} else {
			slots = append(slots, *item.slot)
		}
	}

	raw := placeholder.Join(lits, slots)
	if len(slots) == 0 && strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	start, end := runSpan(lits, slots)
	node := &tree.Node{
		Type:  tree.TextNode,
		Text:  strings.Join(strings.Fields(raw), " "),
		Desc:  raw,
		Start: start,
		End:   end,
	}

	partType := UnSlottedText
	if len(slots) > 0 {
		partType = SlottedText
	}
	strs, refs := squash(lits, slots)
	return node, &Part{
		Type:         partType,
		Strings:      strs,
		ValueIndices: refs,
		Node:         node,
		Start:        start,
		End:          end,
	}
}

func runSpan(lits []placeholder.Segment, slots []placeholder.SlotRef) (int, int) {
	start := int(^uint(0) >> 1)
	end := 0
	for _, l := range lits {
		if l.Start < start {
			start = l.Start
		}
		if l.End > end {
			end = l.End
		}
	}
	for _, s := range slots {
		if s.Start < start {
			start = s.Start
		}
		if s.End > end {
			end = s.End
		}
	}
	if start > end {
		start = end
	}
	return start, end
}

// squash re-applies the null-squashing rule to a run: a pure single slot
// drops its empty surrounding literals.
func squash(lits []placeholder.Segment, slots []placeholder.SlotRef) ([]placeholder.Segment, []placeholder.SlotRef) {
	if len(slots) == 1 && len(lits) == 2 && lits[0].Text == "" && lits[1].Text == "" {
		return nil, slots
	}
	if len(lits) == 0 {
		return nil, slots
	}
	return lits, slots
}
