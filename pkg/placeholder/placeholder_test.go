package placeholder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lupos-tmpl-typer/pkg/placeholder"
)

func TestMarkerRoundTrip(t *testing.T) {
	for _, index := range []int{0, 1, 7, 42} {
		marker := placeholder.Marker(index)
		got, ok := placeholder.ParseIndex(marker)
		require.True(t, ok, "marker %q", marker)
		assert.Equal(t, index, got)
	}
}

func TestParseIndexRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "plain text", input: "div"},
		{name: "prefix only", input: "$LUPOS_SLOT_INDEX_"},
		{name: "no digits", input: "$LUPOS_SLOT_INDEX_$"},
		{name: "trailing text", input: "$LUPOS_SLOT_INDEX_0$x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := placeholder.ParseIndex(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestParseContent(t *testing.T) {
	m0 := placeholder.Marker(0)
	m1 := placeholder.Marker(1)

	tests := []struct {
		name      string
		content   string
		quoted    bool
		base      int
		wantLits  []placeholder.Segment
		wantSlots []placeholder.SlotRef
	}{
		{
			name:      "whitespace only",
			content:   "  \n ",
			wantLits:  nil,
			wantSlots: nil,
		},
		{
			name:    "no markers",
			content: "hello",
			base:    10,
			wantLits: []placeholder.Segment{
				{Text: "hello", Start: 10, End: 15},
			},
		},
		{
			name:    "pure marker squashes literals",
			content: m0,
			base:    10,
			wantSlots: []placeholder.SlotRef{
				{Index: 0, Start: 10, End: 10 + len(m0)},
			},
		},
		{
			name:    "marker with surrounding text",
			content: "a" + m0 + "b",
			base:    10,
			wantLits: []placeholder.Segment{
				{Text: "a", Start: 10, End: 11},
				{Text: "b", Start: 11 + len(m0), End: 12 + len(m0)},
			},
			wantSlots: []placeholder.SlotRef{
				{Index: 0, Start: 11, End: 11 + len(m0)},
			},
		},
		{
			name:    "two adjacent markers keep empty middle literal",
			content: m0 + m1,
			wantLits: []placeholder.Segment{
				{Text: "", Start: 0, End: 0},
				{Text: "", Start: len(m0), End: len(m0)},
				{Text: "", Start: len(m0) + len(m1), End: len(m0) + len(m1)},
			},
			wantSlots: []placeholder.SlotRef{
				{Index: 0, Start: 0, End: len(m0)},
				{Index: 1, Start: len(m0), End: len(m0) + len(m1)},
			},
		},
		{
			name:    "quoted shifts base past the quote",
			content: m0,
			quoted:  true,
			base:    20,
			wantSlots: []placeholder.SlotRef{
				{Index: 0, Start: 21, End: 21 + len(m0)},
			},
		},
		{
			name:    "incomplete marker is literal text",
			content: "$LUPOS_SLOT_INDEX_x",
			wantLits: []placeholder.Segment{
				{Text: "$LUPOS_SLOT_INDEX_x", Start: 0, End: 19},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lits, slots := placeholder.ParseContent(tt.content, tt.quoted, tt.base)
			assert.Equal(t, tt.wantLits, lits, "literals")
			assert.Equal(t, tt.wantSlots, slots, "slots")
		})
	}
}

func TestParseContentSplitInvariant(t *testing.T) {
	content := "x " + placeholder.Marker(0) + " y " + placeholder.Marker(1) + " z"
	lits, slots := placeholder.ParseContent(content, false, 0)

	require.Len(t, slots, 2)
	assert.Len(t, lits, len(slots)+1)
	assert.Equal(t, content, placeholder.Join(lits, slots))
}

func TestJoinPureSlots(t *testing.T) {
	slots := []placeholder.SlotRef{{Index: 3}}
	assert.Equal(t, placeholder.Marker(3), placeholder.Join(nil, slots))
}

func TestFlatten(t *testing.T) {
	// Models html`<p>${x}</p>` with the tag at document offset 0: content
	// starts at 5, the hole expression "x" sits at [10,11).
	src := placeholder.Source{
		Literals: []placeholder.Segment{
			{Text: "<p>", Start: 5, End: 8},
			{Text: "</p>", Start: 12, End: 16},
		},
		Holes: []placeholder.Segment{
			{Text: "x", Start: 10, End: 11},
		},
	}

	virtual, mapper := placeholder.Flatten(src)

	assert.Equal(t, "<p>"+placeholder.Marker(0)+"</p>", virtual)
	require.NotNil(t, mapper)

	// Content before and after the marker maps by constant diff.
	assert.Equal(t, 5, mapper.MapToDocument(0))
	assert.Equal(t, 7, mapper.MapToDocument(2))
	markerEnd := 3 + len(placeholder.Marker(0))
	assert.Equal(t, 12, mapper.MapToDocument(markerEnd))
	assert.Equal(t, 16, mapper.MapToDocument(len(virtual)))

	// The marker region maps into the hole.
	assert.Equal(t, 10, mapper.MapToDocument(3))
}

func TestFlattenAdjacentSlots(t *testing.T) {
	// Models template content "a${xx}${yyyy}b" at document offset 0: the
	// literal between the two holes is empty, so the second hole's
	// breakpoint shares its From with the empty content run.
	src := placeholder.Source{
		Literals: []placeholder.Segment{
			{Text: "a", Start: 0, End: 1},
			{Text: "", Start: 6, End: 6},
			{Text: "b", Start: 13, End: 14},
		},
		Holes: []placeholder.Segment{
			{Text: "xx", Start: 3, End: 5},
			{Text: "yyyy", Start: 8, End: 12},
		},
	}

	virtual, mapper := placeholder.Flatten(src)
	m0 := placeholder.Marker(0)
	m1 := placeholder.Marker(1)
	require.Equal(t, "a"+m0+m1+"b", virtual)

	// Offsets inside the second marker map into its own hole, not past the
	// template.
	secondStart := 1 + len(m0)
	assert.Equal(t, 8, mapper.MapToDocument(secondStart))
	for _, v := range []int{secondStart + 1, secondStart + 9, secondStart + 15} {
		doc := mapper.MapToDocument(v)
		assert.GreaterOrEqual(t, doc, 8, "virtual %d", v)
		assert.LessOrEqual(t, doc, 13, "virtual %d", v)
	}

	// Content on both sides still maps by constant diff.
	assert.Equal(t, 0, mapper.MapToDocument(0))
	assert.Equal(t, 13, mapper.MapToDocument(secondStart+len(m1)))
	assert.Equal(t, 14, mapper.MapToDocument(len(virtual)))
}

func TestFlattenLeadingSlot(t *testing.T) {
	// Models template content "${x}a" at document offset 0: the first
	// literal is empty, so the hole breakpoint shares From 0 with it.
	src := placeholder.Source{
		Literals: []placeholder.Segment{
			{Text: "", Start: 0, End: 0},
			{Text: "a", Start: 4, End: 5},
		},
		Holes: []placeholder.Segment{
			{Text: "x", Start: 2, End: 3},
		},
	}

	virtual, mapper := placeholder.Flatten(src)
	m0 := placeholder.Marker(0)
	require.Equal(t, m0+"a", virtual)

	assert.Equal(t, 2, mapper.MapToDocument(0))
	assert.Equal(t, 3, mapper.MapToDocument(len(m0)/2))
	assert.Equal(t, 4, mapper.MapToDocument(len(m0)))
}

func TestFlattenEmptySource(t *testing.T) {
	virtual, mapper := placeholder.Flatten(placeholder.Source{})
	assert.Equal(t, "", virtual)
	assert.Empty(t, mapper.Breakpoints())
}
