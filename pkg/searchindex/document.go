package searchindex

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/bones/pkg/bone"
)

// TagsField holds the search tags of a document.
const TagsField = "search_tags"

// FieldName returns the document property of a search field. Per-language
// fields are suffixed with the language ("body_en").
func FieldName(f bone.SearchField) string {
	if f.Language == "" {
		return f.Name
	}
	return f.Name + "_" + f.Language
}

// DocumentBuilder turns bone search fields into an index document.
type DocumentBuilder struct {
	policy *bluemonday.Policy
}

// NewDocumentBuilder returns a builder that reduces HTML fields to plain
// text.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{policy: bluemonday.StrictPolicy()}
}

// Build returns the document for fields and tags. HTML values are stripped
// of markup and entities with whitespace collapsed; empty values are left
// out.
func (b *DocumentBuilder) Build(fields []bone.SearchField, tags []string) map[string]any {
	doc := make(map[string]any, len(fields)+1)
	for _, f := range fields {
		switch f.Kind {
		case bone.HTMLField:
			if text := b.plainText(toString(f.Value)); text != "" {
				doc[FieldName(f)] = text
			}
		case bone.TextField:
			if text := toString(f.Value); text != "" {
				doc[FieldName(f)] = text
			}
		default:
			if f.Value != nil {
				doc[FieldName(f)] = f.Value
			}
		}
	}
	if tags == nil {
		tags = []string{}
	}
	doc[TagsField] = tags
	return doc
}

func (b *DocumentBuilder) plainText(markup string) string {
	// Block elements separate words even without surrounding whitespace.
	markup = strings.ReplaceAll(markup, "<", " <")
	text := html.UnescapeString(b.policy.Sanitize(markup))
	return strings.Join(strings.Fields(text), " ")
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}
