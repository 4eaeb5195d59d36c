// Package diagnostic emits typed diagnostics over the classified part
// stream. This layer only consumes structural facts; the parse pipeline
// below it never fails, so every user-facing message originates here.
package diagnostic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/lupos-tmpl-typer/pkg/parts"
	"github.com/walteh/lupos-tmpl-typer/pkg/position"
	"github.com/walteh/lupos-tmpl-typer/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// Severity represents the severity level of a diagnostic
type Severity string

const (
	SeverityError       Severity = "error"
	SeverityWarning     Severity = "warning"
	SeverityInformation Severity = "info"
	SeverityHint        Severity = "hint"
)

// Diagnostic is a single diagnostic message. Location is expressed in
// document offsets: virtual offsets are mapped before a diagnostic is
// recorded.
type Diagnostic struct {
	Message  string
	Location position.RawPosition
	Severity Severity
}

// Diagnostics groups diagnostics by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Hints    []Diagnostic
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Hints = append(d.Hints, diag)
	}
}

// Count returns the total number of diagnostics of any severity.
func (d *Diagnostics) Count() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Hints)
}

// ComponentRegistry resolves component names to "known" or not. Optional:
// without one, component references are not checked.
type ComponentRegistry interface {
	HasComponent(name string) bool
}

// Input is one analyzed template region: the part stream plus the mapper
// translating its virtual offsets back to document offsets.
type Input struct {
	Parts    []*parts.Part
	Mapper   *position.Mapper
	Registry ComponentRegistry
}

// Generator is responsible for generating diagnostics from classified parts
type Generator interface {
	Generate(ctx context.Context, in *Input) (*Diagnostics, error)
}

// DefaultGenerator is the default implementation of Generator
type DefaultGenerator struct{}

// NewDefaultGenerator creates a new DefaultGenerator
func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{}
}

// Generate implements Generator
func (g *DefaultGenerator) Generate(ctx context.Context, in *Input) (*Diagnostics, error) {
	if in == nil {
		return nil, errors.Errorf("diagnostic input is nil")
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("parts", len(in.Parts)).Msg("generating diagnostics")

	d := &Diagnostics{}
	seen := map[*tree.Node]map[string]bool{}

	for _, part := range in.Parts {
		switch part.Type {
		case parts.FlowControl:
			g.checkFlowControl(d, in, part)
		case parts.Event:
			g.checkEvent(d, in, part)
		case parts.Binding:
			g.checkBinding(d, in, part)
		case parts.Property:
			g.checkNamed(d, in, part)
		case parts.Component:
			g.checkComponent(d, in, part)
		}

		if part.Attr != nil {
			g.checkDuplicateAttr(d, in, part, seen)
		}
	}

	return d, nil
}

func (g *DefaultGenerator) report(d *Diagnostics, in *Input, sev Severity, msg, text string, start int) {
	loc := position.NewBasicPosition(text, start)
	if in.Mapper != nil {
		loc = in.Mapper.MapPositionToDocument(loc)
	}
	d.add(Diagnostic{Message: msg, Location: loc, Severity: sev})
}

func (g *DefaultGenerator) checkFlowControl(d *Diagnostics, in *Input, part *parts.Part) {
	name := part.RawName

	if !parts.FlowControlTags[name] {
		g.report(d, in, SeverityError,
			fmt.Sprintf("unknown flow control tag <%s>", name),
			name, part.Start)
		return
	}

	if allowed, ok := parts.FlowControlPredecessors[name]; ok {
		prev := previousTagSibling(part.Node)
		if prev == nil || !contains(allowed, prev.TagName) {
			g.report(d, in, SeverityError,
				fmt.Sprintf("<%s> must directly follow %s", name, orList(allowed)),
				name, part.Start)
		}
	}

	if parent, ok := parts.FlowControlParents[name]; ok {
		if part.Node.Parent == nil || part.Node.Parent.TagName != parent {
			g.report(d, in, SeverityError,
				fmt.Sprintf("<%s> must be a direct child of <%s>", name, parent),
				name, part.Start)
		}
	}
}

func (g *DefaultGenerator) checkEvent(d *Diagnostics, in *Input, part *parts.Part) {
	if part.MainName == "" {
		g.report(d, in, SeverityError,
			"event binding is missing an event name",
			part.RawName, part.Start)
		return
	}

	used := map[string]bool{}
	for _, piece := range parts.Locate(part) {
		if piece.Type != parts.PieceModifier {
			continue
		}
		mod := part.Modifiers[piece.ModifierIndex]

		if used[mod] {
			g.report(d, in, SeverityWarning,
				fmt.Sprintf("duplicate event modifier .%s", mod),
				mod, piece.Start)
			continue
		}
		used[mod] = true

		if !eventModifierKnown(part.MainName, mod) {
			g.report(d, in, SeverityWarning,
				fmt.Sprintf("unknown modifier .%s for event %q", mod, part.MainName),
				mod, piece.Start)
		}
	}
}

func eventModifierKnown(event, mod string) bool {
	if parts.GlobalEventModifiers[mod] {
		return true
	}
	if parts.KeyboardEvents[event] && parts.KeyboardEventKeys[mod] {
		return true
	}
	if parts.MouseEvents[event] && parts.MouseEventButtons[mod] {
		return true
	}
	return false
}

func (g *DefaultGenerator) checkBinding(d *Diagnostics, in *Input, part *parts.Part) {
	if part.MainName == "" {
		g.report(d, in, SeverityError,
			"binding is missing a name",
			part.RawName, part.Start)
		return
	}

	// Upgraded plain class/style attributes have no prefix and are always
	// legitimate binding names.
	if part.NamePrefix == "" {
		return
	}

	if !parts.KnownBindings[part.MainName] {
		g.report(d, in, SeverityWarning,
			fmt.Sprintf("unknown binding :%s", part.MainName),
			part.MainName, part.Start)
	}
}

func (g *DefaultGenerator) checkNamed(d *Diagnostics, in *Input, part *parts.Part) {
	if part.MainName == "" {
		g.report(d, in, SeverityError,
			fmt.Sprintf("%q is missing a name after its prefix", part.RawName),
			part.RawName, part.Start)
	}
}

func (g *DefaultGenerator) checkComponent(d *Diagnostics, in *Input, part *parts.Part) {
	if in.Registry == nil {
		return
	}
	if !in.Registry.HasComponent(part.MainName) {
		g.report(d, in, SeverityError,
			fmt.Sprintf("component <%s> is not imported", part.MainName),
			part.MainName, part.Start)
	}
}

func (g *DefaultGenerator) checkDuplicateAttr(d *Diagnostics, in *Input, part *parts.Part, seen map[*tree.Node]map[string]bool) {
	names := seen[part.Node]
	if names == nil {
		names = map[string]bool{}
		seen[part.Node] = names
	}
	if names[part.RawName] {
		g.report(d, in, SeverityWarning,
			fmt.Sprintf("duplicate attribute %q", part.RawName),
			part.RawName, part.Start)
		return
	}
	names[part.RawName] = true
}

func previousTagSibling(n *tree.Node) *tree.Node {
	for prev := n.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		if prev.Type == tree.TagNode {
			return prev
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return "<" + names[0] + ">"
	default:
		out := ""
		for i, n := range names {
			if i > 0 {
				out += " or "
			}
			out += "<" + n + ">"
		}
		return out
	}
}
