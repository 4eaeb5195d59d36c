package parts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/lupos-tmpl-typer/pkg/parts"
)

func TestLocateTagPart(t *testing.T) {
	_, ps := parseAll(t, `<div></div>`, nil)

	p := firstOfType(ps, parts.NormalStartTag)
	require.NotNil(t, p)

	pieces := parts.Locate(p)
	require.Len(t, pieces, 1)
	assert.Equal(t, parts.PieceTagName, pieces[0].Type)
	assert.Equal(t, 1, pieces[0].Start)
	assert.Equal(t, 4, pieces[0].End)
}

func TestLocateEventAttribute(t *testing.T) {
	// Offsets: '@' at 5, "click" at 6..11, ".stop" at 11..16, ".once" at
	// 16..21, value "v" inside quotes at 23.
	_, ps := parseAll(t, `<div @click.stop.once="v"></div>`, nil)

	p := attrPart(ps, "@click.stop.once")
	require.NotNil(t, p)

	pieces := parts.Locate(p)
	require.Len(t, pieces, 5)

	assert.Equal(t, parts.Piece{Type: parts.PiecePrefix, Start: 5, End: 6}, pieces[0])
	assert.Equal(t, parts.Piece{Type: parts.PieceName, Start: 6, End: 11}, pieces[1])
	assert.Equal(t, parts.Piece{Type: parts.PieceModifier, Start: 11, End: 16, ModifierIndex: 0}, pieces[2])
	assert.Equal(t, parts.Piece{Type: parts.PieceModifier, Start: 16, End: 21, ModifierIndex: 1}, pieces[3])
	assert.Equal(t, parts.Piece{Type: parts.PieceAttrValue, Start: 23, End: 24}, pieces[4])
}

func TestLocateBareValueKeepsFullSpan(t *testing.T) {
	_, ps := parseAll(t, `<div @x=v></div>`, nil)

	p := attrPart(ps, "@x")
	require.NotNil(t, p)

	pieces := parts.Locate(p)
	require.Len(t, pieces, 3)
	assert.Equal(t, parts.Piece{Type: parts.PieceAttrValue, Start: 8, End: 9}, pieces[2])
}

func TestLocateEmptyNameAfterPrefix(t *testing.T) {
	_, ps := parseAll(t, `<div @></div>`, nil)

	p := attrPart(ps, "@")
	require.NotNil(t, p)
	assert.Equal(t, "", p.MainName)

	pieces := parts.Locate(p)
	require.Len(t, pieces, 2)
	assert.Equal(t, parts.PiecePrefix, pieces[0].Type)
	assert.Equal(t, parts.PieceName, pieces[1].Type)
	assert.Equal(t, pieces[1].Start, pieces[1].End)
}

func TestLocateTextPartsHaveNoPieces(t *testing.T) {
	_, ps := parseAll(t, `<p>hello</p>`, nil)

	p := firstOfType(ps, parts.UnSlottedText)
	require.NotNil(t, p)
	assert.Nil(t, parts.Locate(p))
}

func TestLocateAt(t *testing.T) {
	_, ps := parseAll(t, `<div @click.stop="v"></div>`, nil)

	p := attrPart(ps, "@click.stop")
	require.NotNil(t, p)

	tests := []struct {
		name   string
		offset int
		want   parts.PieceType
		none   bool
	}{
		{name: "before the attribute", offset: 4, none: true},
		{name: "on the prefix", offset: 5, want: parts.PiecePrefix},
		{name: "prefix end belongs to the name", offset: 6, want: parts.PieceName},
		{name: "inside the name", offset: 8, want: parts.PieceName},
		{name: "name end boundary stays on the name", offset: 11, want: parts.PieceName},
		{name: "inside a modifier", offset: 13, want: parts.PieceModifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			piece := parts.LocateAt(p, tt.offset)
			if tt.none {
				assert.Nil(t, piece)
				return
			}
			require.NotNil(t, piece)
			assert.Equal(t, tt.want, piece.Type)
		})
	}
}
