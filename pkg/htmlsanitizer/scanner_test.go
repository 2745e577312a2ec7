package htmlsanitizer_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []htmlsanitizer.Token
	}{
		{
			name:  "tags and references",
			input: `<a href="x">hi &amp; &#39;</a><br/>`,
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.StartTagToken, Data: "a", Attr: []htmlsanitizer.Attribute{{Key: "href", Val: "x"}}},
				{Type: htmlsanitizer.CharDataToken, Data: "hi "},
				{Type: htmlsanitizer.EntityRefToken, Data: "amp"},
				{Type: htmlsanitizer.CharDataToken, Data: " "},
				{Type: htmlsanitizer.CharRefToken, Data: "39"},
				{Type: htmlsanitizer.EndTagToken, Data: "a"},
				{Type: htmlsanitizer.StartTagToken, Data: "br"},
				{Type: htmlsanitizer.EndTagToken, Data: "br"},
			},
		},
		{
			name:  "hex reference",
			input: "&#x27;",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.CharRefToken, Data: "x27"},
			},
		},
		{
			name:  "malformed numeric reference",
			input: "&#1a;",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.EntityRefToken, Data: "amp"},
				{Type: htmlsanitizer.CharDataToken, Data: "#1a;"},
			},
		},
		{
			name:  "unterminated entity stays text",
			input: "fish &chips",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.CharDataToken, Data: "fish &chips"},
			},
		},
		{
			name:  "newlines normalised",
			input: "a\nb",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.CharDataToken, Data: "a b"},
			},
		},
		{
			name:  "comments and doctype skipped",
			input: "<!DOCTYPE html><!-- c --><P Class=\"x\">",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.StartTagToken, Data: "p", Attr: []htmlsanitizer.Attribute{{Key: "class", Val: "x"}}},
			},
		},
		{
			name:  "textarea body tokenized",
			input: "<textarea><b>x</b></textarea>",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.StartTagToken, Data: "textarea"},
				{Type: htmlsanitizer.StartTagToken, Data: "b"},
				{Type: htmlsanitizer.CharDataToken, Data: "x"},
				{Type: htmlsanitizer.EndTagToken, Data: "b"},
				{Type: htmlsanitizer.EndTagToken, Data: "textarea"},
			},
		},
		{
			name:  "script body is raw text",
			input: "<script><b>x</b></script>",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.StartTagToken, Data: "script"},
				{Type: htmlsanitizer.CharDataToken, Data: "<b>x</b>"},
				{Type: htmlsanitizer.EndTagToken, Data: "script"},
			},
		},
		{
			name:  "self closing script does not swallow markup",
			input: "<script/><b>x</b>",
			want: []htmlsanitizer.Token{
				{Type: htmlsanitizer.StartTagToken, Data: "script"},
				{Type: htmlsanitizer.EndTagToken, Data: "script"},
				{Type: htmlsanitizer.StartTagToken, Data: "b"},
				{Type: htmlsanitizer.CharDataToken, Data: "x"},
				{Type: htmlsanitizer.EndTagToken, Data: "b"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slices.Collect(htmlsanitizer.Scan(tt.input)))
		})
	}
}

func TestScan_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []htmlsanitizer.TokenType
	for tok := range htmlsanitizer.Scan("<b>a &amp; b</b><i>c</i>") {
		got = append(got, tok.Type)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []htmlsanitizer.TokenType{
		htmlsanitizer.StartTagToken,
		htmlsanitizer.CharDataToken,
		htmlsanitizer.EntityRefToken,
	}, got)
}

func TestTokenType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CharData", htmlsanitizer.CharDataToken.String())
	assert.Equal(t, "StartTag", htmlsanitizer.StartTagToken.String())
	assert.Equal(t, "EndTag", htmlsanitizer.EndTagToken.String())
	assert.Equal(t, "CharRef", htmlsanitizer.CharRefToken.String())
	assert.Equal(t, "EntityRef", htmlsanitizer.EntityRefToken.String())
	assert.Equal(t, "Invalid", htmlsanitizer.TokenType(42).String())
}
