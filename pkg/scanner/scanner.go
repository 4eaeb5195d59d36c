// Package scanner tokenizes HTML-like template text containing interpolation
// placeholders. The scanner is a hand-written character-level state machine:
// it never fails, and malformed input degrades to best-effort tokens because
// the typical caller is an editor operating on code that is mid-edit.
package scanner

import "strings"

// Parse tokenizes text and returns the complete token stream. Each call
// instantiates a fresh scanner; no state survives the call boundary.
func Parse(text string) []Token {
	s := New(text)
	var tokens []Token
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Scanner produces tokens lazily, one Next call at a time.
type Scanner struct {
	input   string
	pos     int
	inTag   bool
	pending []Token
}

func New(text string) *Scanner {
	return &Scanner{input: text}
}

// Next returns the next token. The second result is false once the input is
// exhausted.
func (s *Scanner) Next() (Token, bool) {
	for len(s.pending) == 0 {
		if s.pos >= len(s.input) {
			return Token{}, false
		}
		if s.inTag {
			s.scanWithinStartTag()
		} else {
			s.scanContent()
		}
	}

	tok := s.pending[0]
	s.pending = s.pending[1:]
	return tok, true
}

func (s *Scanner) emit(kind TokenKind, start, end int) {
	s.pending = append(s.pending, Token{
		Kind:  kind,
		Text:  s.input[start:end],
		Start: start,
		End:   end,
	})
}

// scanContent handles the AnyContent state: accumulate text until a tag,
// comment or end tag opens, then dispatch.
func (s *Scanner) scanContent() {
	textStart := s.pos

	for s.pos < len(s.input) {
		lt := strings.IndexByte(s.input[s.pos:], '<')
		if lt < 0 {
			s.pos = len(s.input)
			break
		}
		lt += s.pos

		switch {
		case strings.HasPrefix(s.input[lt:], "<!--"):
			s.flushText(textStart, lt)
			s.pos = lt
			s.scanComment()
			return

		case strings.HasPrefix(s.input[lt:], "</"):
			s.flushText(textStart, lt)
			s.pos = lt
			s.scanEndTag()
			return

		case lt+1 < len(s.input) && isTagNameStart(s.input[lt+1]):
			s.flushText(textStart, lt)
			s.pos = lt + 1
			s.scanStartTagName()
			return

		default:
			// Not a tag opener. The '<' is plain text.
			s.pos = lt + 1
		}
	}

	s.flushText(textStart, s.pos)
}

func (s *Scanner) flushText(start, end int) {
	if end > start {
		s.emit(Text, start, end)
	}
}

// scanComment consumes "<!--" up to and including the first "-->". The
// token text excludes both delimiters while the token span covers them. An
// unterminated comment consumes to end of input.
func (s *Scanner) scanComment() {
	open := s.pos
	start := open + len("<!--")

	textEnd := len(s.input)
	tokenEnd := len(s.input)
	if end := strings.Index(s.input[start:], "-->"); end >= 0 {
		textEnd = start + end
		tokenEnd = textEnd + len("-->")
	}

	s.pending = append(s.pending, Token{
		Kind:  CommentText,
		Text:  s.input[start:textEnd],
		Start: open,
		End:   tokenEnd,
	})
	s.pos = tokenEnd
}

// scanEndTag consumes "</name>"; the name may be empty ("</>"), which
// represents closing the nearest open tag. The token's End includes the
// closing '>' so that tree closure offsets line up.
func (s *Scanner) scanEndTag() {
	nameStart := s.pos + len("</")
	p := nameStart
	for p < len(s.input) && isTagNameChar(s.input[p]) {
		p++
	}
	name := s.input[nameStart:p]

	// Forgiving: skip anything else up to the '>'.
	for p < len(s.input) && s.input[p] != '>' {
		p++
	}
	if p < len(s.input) {
		p++
	}

	s.pending = append(s.pending, Token{
		Kind:  EndTagName,
		Text:  name,
		Start: nameStart,
		End:   p,
	})
	s.pos = p
}

func (s *Scanner) scanStartTagName() {
	start := s.pos
	for s.pos < len(s.input) && isTagNameChar(s.input[s.pos]) {
		s.pos++
	}
	s.emit(StartTagName, start, s.pos)
	s.inTag = true
}

// scanWithinStartTag handles everything between a tag name and the closing
// '>' or '/>': attribute names, optional '=' and values.
func (s *Scanner) scanWithinStartTag() {
	for s.pos < len(s.input) {
		c := s.input[s.pos]

		switch {
		case isWhitespace(c):
			s.pos++

		case c == '>':
			s.emit(TagEnd, s.pos, s.pos+1)
			s.pos++
			s.inTag = false
			return

		case c == '/' && s.pos+1 < len(s.input) && s.input[s.pos+1] == '>':
			s.emit(SelfCloseTagEnd, s.pos, s.pos+2)
			s.pos += 2
			s.inTag = false
			return

		case isAttrNameChar(c):
			s.scanAttribute()

		default:
			// Stray character inside a tag; skip it rather than fail.
			s.pos++
		}
	}

	// Unterminated start tag consumed to end of input.
	s.inTag = false
}

func (s *Scanner) scanAttribute() {
	start := s.pos
	for s.pos < len(s.input) && isAttrNameChar(s.input[s.pos]) {
		s.pos++
	}
	s.emit(AttributeName, start, s.pos)

	mark := s.pos
	s.skipWhitespace()
	if s.pos >= len(s.input) || s.input[s.pos] != '=' {
		// No value; the whitespace belongs to whatever follows.
		s.pos = mark
		return
	}
	s.pos++
	s.skipWhitespace()

	if s.pos >= len(s.input) {
		return
	}

	if q := s.input[s.pos]; q == '"' || q == '\'' {
		s.scanQuotedValue(q)
		return
	}
	s.scanBareValue()
}

// scanQuotedValue consumes a quoted attribute value. Backslash escapes the
// matching quote and backslash itself. The token text includes both quotes;
// an unterminated quote consumes to end of input.
func (s *Scanner) scanQuotedValue(quote byte) {
	start := s.pos
	s.pos++
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c == '\\' && s.pos+1 < len(s.input) {
			next := s.input[s.pos+1]
			if next == quote || next == '\\' {
				s.pos += 2
				continue
			}
		}
		if c == quote {
			s.pos++
			break
		}
		s.pos++
	}
	s.emit(AttributeValue, start, s.pos)
}

func (s *Scanner) scanBareValue() {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isWhitespace(c) || c == '>' || c == '"' || c == '\'' {
			break
		}
		if c == '/' && s.pos+1 < len(s.input) && s.input[s.pos+1] == '>' {
			break
		}
		s.pos++
	}
	if s.pos > start {
		s.emit(AttributeValue, start, s.pos)
	}
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.input) && isWhitespace(s.input[s.pos]) {
		s.pos++
	}
}
