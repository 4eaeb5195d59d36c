package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/lupos-tmpl-typer/pkg/scanner"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []scanner.Token
	}{
		{
			name:  "tag with quoted attribute",
			input: `<div class="a">hi</div>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "div", Start: 1, End: 4},
				{Kind: scanner.AttributeName, Text: "class", Start: 5, End: 10},
				{Kind: scanner.AttributeValue, Text: `"a"`, Start: 11, End: 14},
				{Kind: scanner.TagEnd, Text: ">", Start: 14, End: 15},
				{Kind: scanner.Text, Text: "hi", Start: 15, End: 17},
				{Kind: scanner.EndTagName, Text: "div", Start: 19, End: 23},
			},
		},
		{
			name:  "bare attribute value",
			input: `<a href=x>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "a", Start: 1, End: 2},
				{Kind: scanner.AttributeName, Text: "href", Start: 3, End: 7},
				{Kind: scanner.AttributeValue, Text: "x", Start: 8, End: 9},
				{Kind: scanner.TagEnd, Text: ">", Start: 9, End: 10},
			},
		},
		{
			name:  "attribute without value",
			input: `<input disabled>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "input", Start: 1, End: 6},
				{Kind: scanner.AttributeName, Text: "disabled", Start: 7, End: 15},
				{Kind: scanner.TagEnd, Text: ">", Start: 15, End: 16},
			},
		},
		{
			name:  "self closing tag",
			input: `<br/>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "br", Start: 1, End: 3},
				{Kind: scanner.SelfCloseTagEnd, Text: "/>", Start: 3, End: 5},
			},
		},
		{
			name:  "comment span covers delimiters",
			input: `a<!--x-->b`,
			want: []scanner.Token{
				{Kind: scanner.Text, Text: "a", Start: 0, End: 1},
				{Kind: scanner.CommentText, Text: "x", Start: 1, End: 9},
				{Kind: scanner.Text, Text: "b", Start: 9, End: 10},
			},
		},
		{
			name:  "stray angle bracket is text",
			input: `a < b`,
			want: []scanner.Token{
				{Kind: scanner.Text, Text: "a < b", Start: 0, End: 5},
			},
		},
		{
			name:  "empty end tag",
			input: `</>`,
			want: []scanner.Token{
				{Kind: scanner.EndTagName, Text: "", Start: 2, End: 3},
			},
		},
		{
			name:  "prefixed attribute names",
			input: `<div @click.stop=go>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "div", Start: 1, End: 4},
				{Kind: scanner.AttributeName, Text: "@click.stop", Start: 5, End: 16},
				{Kind: scanner.AttributeValue, Text: "go", Start: 17, End: 19},
				{Kind: scanner.TagEnd, Text: ">", Start: 19, End: 20},
			},
		},
		{
			name:  "placeholder marker as tag name",
			input: `<$LUPOS_SLOT_INDEX_0$>`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "$LUPOS_SLOT_INDEX_0$", Start: 1, End: 21},
				{Kind: scanner.TagEnd, Text: ">", Start: 21, End: 22},
			},
		},
		{
			name:  "unterminated comment consumes to end",
			input: `<!-- oops`,
			want: []scanner.Token{
				{Kind: scanner.CommentText, Text: " oops", Start: 0, End: 9},
			},
		},
		{
			name:  "unterminated quoted value consumes to end",
			input: `<a b="x`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "a", Start: 1, End: 2},
				{Kind: scanner.AttributeName, Text: "b", Start: 3, End: 4},
				{Kind: scanner.AttributeValue, Text: `"x`, Start: 5, End: 7},
			},
		},
		{
			name:  "escaped quote stays inside value",
			input: `<a b="x\"y">`,
			want: []scanner.Token{
				{Kind: scanner.StartTagName, Text: "a", Start: 1, End: 2},
				{Kind: scanner.AttributeName, Text: "b", Start: 3, End: 4},
				{Kind: scanner.AttributeValue, Text: `"x\"y"`, Start: 5, End: 11},
				{Kind: scanner.TagEnd, Text: ">", Start: 11, End: 12},
			},
		},
		{
			name:  "empty input",
			input: ``,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanner.Parse(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScannerIncremental(t *testing.T) {
	s := scanner.New(`<p>x</p>`)

	var kinds []scanner.TokenKind
	for {
		tok, ok := s.Next()
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []scanner.TokenKind{
		scanner.StartTagName,
		scanner.TagEnd,
		scanner.Text,
		scanner.EndTagName,
	}, kinds)
}
