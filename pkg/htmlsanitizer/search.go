package htmlsanitizer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSearchValidChars is the character set kept in search tags when the
// caller does not configure one.
const DefaultSearchValidChars = "abcdefghijklmnopqrstuvwxyzäöüß0123456789"

// MinSearchTagLength is the minimum number of characters of a search tag.
const MinSearchTagLength = 4

var stripper = New(nil)

// SearchTags extracts the distinct plain-text words of markup that are at
// least MinSearchTagLength characters long once every character outside
// validChars has been removed. Words are lower-cased and returned in order
// of first appearance.
func SearchTags(markup, validChars string) []string {
	if validChars == "" {
		validChars = DefaultSearchValidChars
	}
	text := html.UnescapeString(stripper.Sanitize(cases.Lower(language.Und).String(markup)))

	var tags []string
	seen := make(map[string]struct{})
	for word := range strings.FieldsSeq(text) {
		word = strings.Map(func(r rune) rune {
			if strings.ContainsRune(validChars, r) {
				return r
			}
			return -1
		}, word)
		if utf8.RuneCountInString(word) < MinSearchTagLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
	}
	return tags
}
