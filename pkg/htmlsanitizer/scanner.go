package htmlsanitizer

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// Scan tokenizes markup and yields its tokens in document order.
//
// Newlines are turned into spaces before scanning. Comments and doctype
// declarations are skipped. Only script and style bodies are read as raw
// text; markup inside textarea, title, iframe and the like is tokenized. A self-closing tag such as <br/> yields a start
// tag followed by the matching end tag. Text is split into character data,
// character references (&#N; / &#xN;) and entity references (&name;); a
// reference must be terminated by ';' to be recognised. The ampersand of a
// malformed numeric reference such as "&#abc;" is reported as the entity
// reference "amp" so the reference ends up escaped as literal text.
func Scan(markup string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		z := html.NewTokenizer(strings.NewReader(strings.ReplaceAll(markup, "\n", " ")))
		for {
			switch z.Next() {
			case html.ErrorToken:
				// io.EOF or a reader error; either way the input is exhausted.
				return
			case html.TextToken:
				if !splitText(string(z.Raw()), yield) {
					return
				}
			case html.StartTagToken:
				tok := z.Token()
				if !rawTextElements[tok.Data] {
					z.NextIsNotRawText()
				}
				if !yield(tagToken(StartTagToken, tok)) {
					return
				}
			case html.SelfClosingTagToken:
				tok := z.Token()
				z.NextIsNotRawText()
				if !yield(tagToken(StartTagToken, tok)) {
					return
				}
				if !yield(Token{Type: EndTagToken, Data: tok.Data}) {
					return
				}
			case html.EndTagToken:
				if !yield(Token{Type: EndTagToken, Data: z.Token().Data}) {
					return
				}
			}
		}
	}
}

func tagToken(typ TokenType, tok html.Token) Token {
	t := Token{Type: typ, Data: tok.Data}
	if len(tok.Attr) > 0 {
		t.Attr = make([]Attribute, 0, len(tok.Attr))
		for _, a := range tok.Attr {
			t.Attr = append(t.Attr, Attribute{Key: a.Key, Val: a.Val})
		}
	}
	return t
}

// splitText yields raw text as CharData, CharRef and EntityRef tokens.
// It reports false if the consumer stopped the iteration.
func splitText(raw string, yield func(Token) bool) bool {
	var data strings.Builder
	emit := func(tok Token) bool {
		if data.Len() > 0 {
			if !yield(Token{Type: CharDataToken, Data: data.String()}) {
				return false
			}
			data.Reset()
		}
		return yield(tok)
	}

	for i := 0; i < len(raw); {
		if raw[i] != '&' {
			j := strings.IndexByte(raw[i:], '&')
			if j < 0 {
				data.WriteString(raw[i:])
				break
			}
			data.WriteString(raw[i : i+j])
			i += j
			continue
		}

		if i+1 < len(raw) && raw[i+1] == '#' {
			if n := charRefLen(raw[i+2:]); n > 0 {
				if !emit(Token{Type: CharRefToken, Data: raw[i+2 : i+2+n]}) {
					return false
				}
				i += 2 + n + 1
				continue
			}
			if !emit(Token{Type: EntityRefToken, Data: "amp"}) {
				return false
			}
			i++
			continue
		}

		if n := entityNameLen(raw[i+1:]); n > 0 {
			if !emit(Token{Type: EntityRefToken, Data: raw[i+1 : i+1+n]}) {
				return false
			}
			i += 1 + n + 1
			continue
		}

		data.WriteByte('&')
		i++
	}

	if data.Len() > 0 {
		return yield(Token{Type: CharDataToken, Data: data.String()})
	}
	return true
}

// charRefLen returns the length of the reference body at the start of s
// ("39" or "x27") when it is followed by ';', or 0.
func charRefLen(s string) int {
	n := 0
	if len(s) > 0 && (s[0] == 'x' || s[0] == 'X') {
		n = 1
		for n < len(s) && isHexDigit(s[n]) {
			n++
		}
		if n == 1 {
			return 0
		}
	} else {
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		if n == 0 {
			return 0
		}
	}
	if n >= len(s) || s[n] != ';' {
		return 0
	}
	return n
}

// entityNameLen returns the length of the entity name at the start of s when
// it is followed by ';', or 0.
func entityNameLen(s string) int {
	if len(s) == 0 || !isLetter(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && (isLetter(s[n]) || isDigit(s[n])) {
		n++
	}
	if n >= len(s) || s[n] != ';' {
		return 0
	}
	return n
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
