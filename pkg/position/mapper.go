package position

import "sort"

// Breakpoint pins a virtual-string offset to a document offset. Interp marks
// the segment starting at this breakpoint as an interpolation span.
type Breakpoint struct {
	From   int // offset in the virtual flattened string
	To     int // offset in the originating document
	Interp bool
}

// Mapper translates offsets between the flattened virtual template string and
// the originating document. Content segments map by constant diff; offsets
// inside an interpolation segment are approximated by linear interpolation,
// since the substituted expression's internal structure is not tracked at
// this layer.
type Mapper struct {
	breaks []Breakpoint
}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Append records a content breakpoint. From values must never regress;
// appends that would break ordering are dropped. A breakpoint at the same
// From as its predecessor marks a zero-width segment and shadows it for
// lookups.
func (m *Mapper) Append(from, to int) {
	m.append(from, to, false)
}

// AppendInterpolated records an interpolation breakpoint: offsets from here
// up to the next breakpoint scale linearly between the two spans.
func (m *Mapper) AppendInterpolated(from, to int) {
	m.append(from, to, true)
}

func (m *Mapper) append(from, to int, interp bool) {
	if n := len(m.breaks); n > 0 && from < m.breaks[n-1].From {
		return
	}
	m.breaks = append(m.breaks, Breakpoint{From: from, To: to, Interp: interp})
}

func (m *Mapper) Breakpoints() []Breakpoint {
	return m.breaks
}

// MapToDocument translates a virtual-string offset to a document offset.
func (m *Mapper) MapToDocument(virtual int) int {
	if len(m.breaks) == 0 {
		return virtual
	}

	i := sort.Search(len(m.breaks), func(i int) bool {
		return m.breaks[i].From > virtual
	}) - 1
	if i < 0 {
		return m.breaks[0].To
	}

	cur := m.breaks[i]
	if i == len(m.breaks)-1 || !cur.Interp {
		return cur.To + (virtual - cur.From)
	}

	next := m.breaks[i+1]
	return cur.To + interpolate(virtual-cur.From, next.From-cur.From, next.To-cur.To)
}

// MapToVirtual translates a document offset to a virtual-string offset.
func (m *Mapper) MapToVirtual(doc int) int {
	if len(m.breaks) == 0 {
		return doc
	}

	i := sort.Search(len(m.breaks), func(i int) bool {
		return m.breaks[i].To > doc
	}) - 1
	if i < 0 {
		return m.breaks[0].From
	}

	cur := m.breaks[i]
	if i == len(m.breaks)-1 || !cur.Interp {
		return cur.From + (doc - cur.To)
	}

	next := m.breaks[i+1]
	return cur.From + interpolate(doc-cur.To, next.To-cur.To, next.From-cur.From)
}

// MapPositionToDocument maps a virtual RawPosition to its document-space
// equivalent, preserving the text.
func (m *Mapper) MapPositionToDocument(pos RawPosition) RawPosition {
	return RawPosition{
		Text:   pos.Text,
		Offset: m.MapToDocument(pos.Offset),
	}
}

// interpolate scales delta from a span of length fromSpan onto a span of
// length toSpan, rounding to the nearest offset.
func interpolate(delta, fromSpan, toSpan int) int {
	if fromSpan <= 0 {
		return 0
	}
	return (delta*toSpan + fromSpan/2) / fromSpan
}
