// Package parts classifies every syntactic position of a parsed template
// tree into typed parts (tags, attribute-like constructs, text runs) and
// decomposes each part into sub-region pieces for fine-grained offset
// addressing.
package parts

import (
	"github.com/walteh/lupos-tmpl-typer/pkg/placeholder"
	"github.com/walteh/lupos-tmpl-typer/pkg/tree"
)

// PartType identifies the classified category of one syntactic position.
type PartType int

const (
	NormalStartTag PartType = iota
	SlotTag
	Component
	DynamicComponent
	FlowControl
	Content
	SlottedText
	UnSlottedText
	QueryAttribute
	SlottedAttribute
	UnSlottedAttribute
	Binding
	Property
	Event
)

var partTypeNames = map[PartType]string{
	NormalStartTag:     "NormalStartTag",
	SlotTag:            "SlotTag",
	Component:          "Component",
	DynamicComponent:   "DynamicComponent",
	FlowControl:        "FlowControl",
	Content:            "Content",
	SlottedText:        "SlottedText",
	UnSlottedText:      "UnSlottedText",
	QueryAttribute:     "QueryAttribute",
	SlottedAttribute:   "SlottedAttribute",
	UnSlottedAttribute: "UnSlottedAttribute",
	Binding:            "Binding",
	Property:           "Property",
	Event:              "Event",
}

func (t PartType) String() string {
	if name, ok := partTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Part is the classified unit the rest of the system consumes. Created once
// per tree-walk pass and not mutated afterwards; consumers read only.
type Part struct {
	Type PartType

	// RawName is the full source name (tag name or attribute name including
	// prefix and modifiers). NamePrefix is one of ".", ":", "?", "@", "?:"
	// or empty; MainName is the name with prefix and modifiers stripped.
	RawName    string
	NamePrefix string
	MainName   string
	Modifiers  []string

	// Strings and ValueIndices carry the part's content split into literal
	// runs and slot references; either may be nil (see placeholder
	// package's null-squashing rules).
	Strings      []placeholder.Segment
	ValueIndices []placeholder.SlotRef

	// Node owns the part; Attr is set for attribute-derived parts.
	Node *tree.Node
	Attr *tree.Attribute

	// Offsets in the virtual flattened string.
	Start int
	End   int
}

// SlotResolver is the external type oracle consulted mid-parse: text
// classification depends on the interpolated value's type, not syntax alone.
type SlotResolver interface {
	// IsPlainValue reports whether the slot's value is a plain value type
	// (string/number/boolean-like) as opposed to renderable content such as
	// a nested template result.
	IsPlainValue(index int) bool
}

// PlainValueResolver treats every slot as a plain value. It is the fallback
// when no oracle is injected.
type PlainValueResolver struct{}

func (PlainValueResolver) IsPlainValue(int) bool { return true }
