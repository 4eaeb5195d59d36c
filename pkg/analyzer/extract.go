package analyzer

import (
	"regexp"

	"github.com/walteh/lupos-tmpl-typer/pkg/placeholder"
)

// TemplateLiteral is one html/svg tagged template literal found in a source
// document: its content span plus the literal/hole split feeding the
// placeholder codec.
type TemplateLiteral struct {
	Tag   string
	Start int // document offset of the content, just past the opening backtick
	End   int // document offset of the closing backtick

	Source      placeholder.Source
	Expressions []string
}

var templateTagPattern = regexp.MustCompile("\\b(html|svg)`")

// ExtractTemplates finds every tagged template literal in doc. Nested
// template literals inside interpolation holes stay part of the hole
// expression; only top-level literals are returned.
func ExtractTemplates(doc string) []TemplateLiteral {
	var out []TemplateLiteral

	cursor := 0
	for cursor < len(doc) {
		m := templateTagPattern.FindStringSubmatchIndex(doc[cursor:])
		if m == nil {
			break
		}
		tag := doc[cursor+m[2] : cursor+m[3]]
		contentStart := cursor + m[1]

		lit, next := parseTemplateLiteral(doc, tag, contentStart)
		out = append(out, lit)
		cursor = next
	}

	return out
}

// parseTemplateLiteral consumes one template literal starting just past its
// opening backtick, splitting the content into literal runs and `${...}`
// holes. Unterminated literals consume to end of input; the parse never
// fails.
func parseTemplateLiteral(doc, tag string, contentStart int) (TemplateLiteral, int) {
	lit := TemplateLiteral{Tag: tag, Start: contentStart}

	runStart := contentStart
	i := contentStart
	next := len(doc)

	closeRun := func(end int) {
		lit.Source.Literals = append(lit.Source.Literals, placeholder.Segment{
			Text:  doc[runStart:end],
			Start: runStart,
			End:   end,
		})
	}

scan:
	for i < len(doc) {
		switch doc[i] {
		case '\\':
			i += 2

		case '`':
			closeRun(i)
			lit.End = i
			next = i + 1
			break scan

		case '$':
			if i+1 < len(doc) && doc[i+1] == '{' {
				closeRun(i)
				exprStart := i + 2
				exprEnd := scanHole(doc, exprStart)
				lit.Source.Holes = append(lit.Source.Holes, placeholder.Segment{
					Text:  doc[exprStart:exprEnd],
					Start: exprStart,
					End:   exprEnd,
				})
				lit.Expressions = append(lit.Expressions, doc[exprStart:exprEnd])
				i = exprEnd
				if i < len(doc) {
					i++ // the '}'
				}
				runStart = i
				continue
			}
			i++

		default:
			i++
		}
	}

	if lit.End == 0 && i >= len(doc) {
		closeRun(len(doc))
		lit.End = len(doc)
	}

	return lit, next
}

// scanHole returns the offset of the '}' closing an interpolation hole,
// tracking brace depth and skipping string and template literals inside the
// expression.
func scanHole(doc string, start int) int {
	depth := 1
	i := start
	for i < len(doc) {
		switch doc[i] {
		case '\\':
			i += 2
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		case '\'', '"', '`':
			i = skipString(doc, i)
			continue
		}
		i++
	}
	return len(doc)
}

func skipString(doc string, start int) int {
	quote := doc[start]
	i := start + 1
	for i < len(doc) {
		switch doc[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(doc)
}
