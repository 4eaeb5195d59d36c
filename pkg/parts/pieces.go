package parts

// PieceType identifies a sub-region of a part.
type PieceType int

const (
	PieceTagName PieceType = iota
	PiecePrefix
	PieceName
	PieceModifier
	PieceAttrValue
)

func (t PieceType) String() string {
	switch t {
	case PieceTagName:
		return "TagName"
	case PiecePrefix:
		return "Prefix"
	case PieceName:
		return "Name"
	case PieceModifier:
		return "Modifier"
	case PieceAttrValue:
		return "AttrValue"
	default:
		return "Unknown"
	}
}

// Piece is a sub-span of a part for cursor-position-sensitive consumers.
// Derived purely from the part: stateless, recomputed on demand, never
// cached beyond a single diagnostic or completion query.
type Piece struct {
	Type  PieceType
	Start int
	End   int

	// ModifierIndex is the zero-based ordinal for modifier pieces.
	ModifierIndex int
}

// Locate computes the ordered sub-region pieces of a part, in document
// order: TagName (tag-classified parts only), Prefix (when a name prefix
// exists), Name (whenever a main name or prefix exists; possibly
// empty-length so completion can target "right after prefix"), one Modifier
// per dot-separated suffix spanning its leading dot, and AttrValue with
// quotes excluded.
func Locate(p *Part) []Piece {
	switch p.Type {
	case NormalStartTag, SlotTag, Component, DynamicComponent, FlowControl:
		return []Piece{{Type: PieceTagName, Start: p.Start, End: p.End}}
	case Content, SlottedText, UnSlottedText:
		return nil
	}

	if p.Attr == nil {
		return nil
	}

	// A slotted attribute whose whole name is slot content has no name
	// pieces; the marker span is the value position.
	if p.NamePrefix == "" && p.MainName == "" && len(p.ValueIndices) > 0 && p.Attr.ValueStart < 0 {
		return []Piece{{Type: PieceAttrValue, Start: p.Start, End: p.End}}
	}

	var pieces []Piece
	cursor := p.Attr.NameStart

	if p.NamePrefix != "" {
		pieces = append(pieces, Piece{
			Type:  PiecePrefix,
			Start: cursor,
			End:   cursor + len(p.NamePrefix),
		})
		cursor += len(p.NamePrefix)
	}

	pieces = append(pieces, Piece{
		Type:  PieceName,
		Start: cursor,
		End:   cursor + len(p.MainName),
	})
	cursor += len(p.MainName)

	for i, mod := range p.Modifiers {
		// Span includes the leading dot.
		pieces = append(pieces, Piece{
			Type:          PieceModifier,
			Start:         cursor,
			End:           cursor + 1 + len(mod),
			ModifierIndex: i,
		})
		cursor += 1 + len(mod)
	}

	if p.Attr.ValueStart >= 0 {
		start, end := p.Attr.ValueStart, p.Attr.ValueEnd
		if p.Attr.Quoted {
			start++
			if end > start {
				end--
			}
		}
		pieces = append(pieces, Piece{Type: PieceAttrValue, Start: start, End: end})
	}

	return pieces
}

// LocateAt returns the piece whose span contains offset, or nil. A prefix
// piece does not match at exactly its end boundary: that offset belongs to
// the following name piece, so a cursor right after the prefix reads as
// "about to type a name".
func LocateAt(p *Part, offset int) *Piece {
	for _, piece := range Locate(p) {
		if offset < piece.Start {
			continue
		}
		if piece.Type == PiecePrefix {
			if offset < piece.End {
				return &piece
			}
			continue
		}
		if offset <= piece.End {
			return &piece
		}
	}
	return nil
}
