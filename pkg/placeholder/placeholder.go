// Package placeholder encodes interpolation slots as textual markers inside
// the flattened virtual template string, and splits marker-bearing content
// back into alternating literal segments and slot references.
//
// The marker syntax is reserved: template text containing a literal marker
// is not supported, and markers must never leak into final output without
// substitution.
package placeholder

import (
	"strconv"
	"strings"

	"github.com/walteh/lupos-tmpl-typer/pkg/position"
)

const (
	markerPrefix = "$LUPOS_SLOT_INDEX_"
	markerSuffix = "$"
)

// Marker returns the textual slot marker for slot ordinal index.
func Marker(index int) string {
	return markerPrefix + strconv.Itoa(index) + markerSuffix
}

// ParseIndex reports the slot ordinal when s is exactly one marker and
// nothing else. Dynamic component tags encode their slot this way.
func ParseIndex(s string) (int, bool) {
	if !strings.HasPrefix(s, markerPrefix) || !strings.HasSuffix(s, markerSuffix) {
		return 0, false
	}
	digits := s[len(markerPrefix) : len(s)-len(markerSuffix)]
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Segment is a literal text run carrying its span in the caller-specified
// coordinate space.
type Segment struct {
	Text  string
	Start int
	End   int
}

// SlotRef is a parsed slot marker: the slot ordinal plus the span the marker
// occupies in the caller-specified coordinate space.
type SlotRef struct {
	Index int
	Start int
	End   int
}

// Source is the literal/hole-interleaved representation of one template
// literal in document coordinates. Literals has exactly one more entry than
// Holes; a hole's span covers the interpolated expression.
type Source struct {
	Literals []Segment
	Holes    []Segment
}

// Flatten produces the virtual template string, replacing every hole with
// its slot marker, and records in a position mapper the breakpoints needed
// to translate virtual offsets back to document offsets.
func Flatten(src Source) (string, *position.Mapper) {
	var b strings.Builder
	mapper := position.NewMapper()

	for i, lit := range src.Literals {
		mapper.Append(b.Len(), lit.Start)
		b.WriteString(lit.Text)
		if i < len(src.Holes) {
			mapper.AppendInterpolated(b.Len(), src.Holes[i].Start)
			b.WriteString(Marker(i))
		}
	}

	if n := len(src.Literals); n > 0 {
		mapper.Append(b.Len(), src.Literals[n-1].End)
	}

	return b.String(), mapper
}

// ParseContent scans content for slot markers and splits it into alternating
// literal segments and slot references. Segment and slot spans are expressed
// relative to offsetBase; when quoted is set the base shifts past the
// opening quote.
//
// Whitespace-only or empty content never participates in splitting: both
// results are nil. Content that is exactly one marker with no surrounding
// literal text squashes the strings result to nil, which downstream
// classification relies on to detect "pure expression" positions. Otherwise
// len(strings) == len(valueIndices)+1.
func ParseContent(content string, quoted bool, offsetBase int) ([]Segment, []SlotRef) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}
	if quoted {
		offsetBase++
	}

	var lits []Segment
	var slots []SlotRef

	pos := 0
	for {
		rel := strings.Index(content[pos:], markerPrefix)
		if rel < 0 {
			break
		}
		start := pos + rel
		digitsStart := start + len(markerPrefix)
		p := digitsStart
		for p < len(content) && content[p] >= '0' && content[p] <= '9' {
			p++
		}
		if p == digitsStart || p >= len(content) || content[p] != '$' {
			// Prefix without a complete marker; treat as literal text.
			pos = start + len(markerPrefix)
			continue
		}
		index, _ := strconv.Atoi(content[digitsStart:p])
		end := p + 1

		lits = append(lits, Segment{
			Text:  content[pos:start],
			Start: offsetBase + pos,
			End:   offsetBase + start,
		})
		slots = append(slots, SlotRef{
			Index: index,
			Start: offsetBase + start,
			End:   offsetBase + end,
		})
		pos = end
	}

	if slots == nil {
		return []Segment{{Text: content, Start: offsetBase, End: offsetBase + len(content)}}, nil
	}

	lits = append(lits, Segment{
		Text:  content[pos:],
		Start: offsetBase + pos,
		End:   offsetBase + len(content),
	})

	// A single slot with empty literal text on both sides is a pure
	// expression; collapse the strings to nil.
	if len(slots) == 1 && len(lits) == 2 && lits[0].Text == "" && lits[1].Text == "" {
		return nil, slots
	}

	return lits, slots
}

// Join reconstructs the original content from a ParseContent split. For any
// content free of literal marker occurrences,
// Join(ParseContent(content)) == content.
func Join(lits []Segment, slots []SlotRef) string {
	if lits == nil {
		var b strings.Builder
		for _, s := range slots {
			b.WriteString(Marker(s.Index))
		}
		return b.String()
	}

	var b strings.Builder
	for i, lit := range lits {
		b.WriteString(lit.Text)
		if i < len(slots) {
			b.WriteString(Marker(slots[i].Index))
		}
	}
	return b.String()
}
