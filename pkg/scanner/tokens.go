package scanner

// TokenKind identifies one lexical unit produced by the scanner.
type TokenKind int

const (
	StartTagName TokenKind = iota
	EndTagName
	TagEnd
	SelfCloseTagEnd
	AttributeName
	AttributeValue
	Text
	CommentText
)

func (k TokenKind) String() string {
	switch k {
	case StartTagName:
		return "StartTagName"
	case EndTagName:
		return "EndTagName"
	case TagEnd:
		return "TagEnd"
	case SelfCloseTagEnd:
		return "SelfCloseTagEnd"
	case AttributeName:
		return "AttributeName"
	case AttributeValue:
		return "AttributeValue"
	case Text:
		return "Text"
	case CommentText:
		return "CommentText"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit. Offsets are positions in the virtual flattened
// string the scanner was invoked on. Immutable once produced.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

// SelfClosingTags is the fixed allow-list of void element names that close
// without an end tag.
var SelfClosingTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Tag names may contain word characters plus ':' (flow control tags),
// '$' (slot markers standing in for dynamic component names) and '-'.
func isTagNameChar(c byte) bool {
	return isWordChar(c) || c == ':' || c == '$' || c == '-'
}

func isTagNameStart(c byte) bool {
	return c == '$' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Attribute names additionally allow the binding/property/event/query
// prefix characters and '.' separated modifiers.
func isAttrNameChar(c byte) bool {
	return isWordChar(c) || c == '@' || c == ':' || c == '.' || c == '?' || c == '$' || c == '-'
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}
