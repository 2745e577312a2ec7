package bone

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// DefaultTextMaxLength is the maximum number of characters of a text value.
const DefaultTextMaxLength = 200000

const blobPathPrefix = "/file/download/"

// TextConfig configures a Text bone. The zero value sanitizes with
// htmlsanitizer.DefaultPolicy and stores a single language.
type TextConfig struct {
	// Policy replaces the default markup policy.
	Policy *htmlsanitizer.Policy
	// StripTags removes all markup; Policy is ignored.
	StripTags bool
	// Languages makes the bone store one value per language.
	Languages []string
	// MaxLength defaults to DefaultTextMaxLength.
	MaxLength int
	// SearchValidChars defaults to htmlsanitizer.DefaultSearchValidChars.
	SearchValidChars string
}

// Text holds sanitized HTML, optionally one value per language. A
// multi-language value is a map[string]string keyed by language.
type Text struct {
	Base
	languages  []string
	maxLength  int
	validChars string
	html       bool
	sanitizer  *htmlsanitizer.Sanitizer
}

// NewText returns a text bone. The Multiple option is not supported and
// ignored.
func NewText(cfg TextConfig, opts ...Option) *Text {
	b := &Text{
		Base:       newBase(opts),
		languages:  cfg.Languages,
		maxLength:  cfg.MaxLength,
		validChars: cfg.SearchValidChars,
	}
	b.Multiple = false
	if b.maxLength <= 0 {
		b.maxLength = DefaultTextMaxLength
	}

	policy := cfg.Policy
	if policy == nil {
		policy = htmlsanitizer.DefaultPolicy()
	}
	if cfg.StripTags {
		policy = nil
	}
	b.html = policy != nil
	b.sanitizer = htmlsanitizer.New(policy, htmlsanitizer.WithLogger(b.logger))

	if b.DefaultValue == nil {
		if b.languages != nil {
			b.DefaultValue = map[string]string{}
		} else {
			b.DefaultValue = ""
		}
	}
	return b
}

// Languages returns the configured languages, nil for a single-language bone.
func (b *Text) Languages() []string { return b.languages }

func (b *Text) FromClient(_ context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	if b.languages == nil {
		raw, ok := data[name]
		if !ok || isBlank(raw) {
			sk.Set(name, "")
			return ReadFromClientErrors{validator.EmptyError(name, "")}
		}
		value, err := cast.ToStringE(raw)
		if err != nil {
			return ReadFromClientErrors{validator.InvalidError(name, "Invalid value entered")}
		}
		if msg := b.invalid(value); msg != "" {
			return ReadFromClientErrors{validator.InvalidError(name, msg)}
		}
		sk.Set(name, b.sanitizer.Sanitize(value))
		return nil
	}

	var errs ReadFromClientErrors
	values := make(map[string]string, len(b.languages))
	for _, lang := range b.languages {
		raw, ok := data[name+"."+lang]
		if !ok {
			continue
		}
		if raw == nil {
			errs = append(errs, validator.InvalidError(name, "No value entered"))
			continue
		}
		value, err := cast.ToStringE(raw)
		if err != nil {
			errs = append(errs, validator.InvalidError(name, "Invalid value entered"))
			continue
		}
		if msg := b.invalid(value); msg != "" {
			errs = append(errs, validator.InvalidError(name, msg))
			continue
		}
		values[lang] = b.sanitizer.Sanitize(value)
	}
	sk.Set(name, values)

	if len(errs) == 0 && !hasNonEmpty(values) {
		errs = append(errs, validator.EmptyError(name, "No / invalid values entered"))
	}
	return errs
}

func (b *Text) invalid(value string) string {
	if err := validator.First(validator.MaxLenString("", value, b.maxLength)); err != nil {
		return err.Message
	}
	return b.check(value)
}

func (b *Text) Serialize(sk *Skeleton, name string) bool {
	v, ok := sk.Values[name]
	if !ok {
		return false
	}
	if b.languages == nil {
		sk.Entity[name] = v
		return true
	}

	for k := range sk.Entity {
		if k == name || strings.HasPrefix(k, name+".") || strings.HasPrefix(k, name+"_") {
			delete(sk.Entity, k)
		}
	}
	values, _ := toStringMap(v)
	for _, lang := range b.languages {
		val := values[lang]
		if val == "" {
			continue
		}
		// Markup without text, such as an empty paragraph, is not stored
		// unless it carries an image.
		if strings.TrimSpace(htmlsanitizer.Sanitize(val, nil)) == "" && !strings.Contains(val, "<img ") {
			continue
		}
		sk.Entity[name+"_"+lang] = val
	}
	return true
}

func (b *Text) Unserialize(sk *Skeleton, name string) bool {
	if b.languages == nil {
		v, ok := sk.Entity[name]
		if !ok {
			return false
		}
		sk.Set(name, toString(v))
		return true
	}

	values := make(map[string]string, len(b.languages))
	if stored, ok := toStringMap(sk.Entity[name]); ok {
		maps.Copy(values, stored)
	} else {
		for _, lang := range b.languages {
			if v, ok := sk.Entity[name+"_"+lang]; ok {
				values[lang] = toString(v)
			}
		}
		if len(values) == 0 {
			// Stored before the bone became multi-language.
			if v, ok := sk.Entity[name]; ok && v != nil {
				values[b.languages[0]] = toString(v)
			}
		}
	}
	sk.Set(name, values)
	return true
}

// texts returns the stored value of every language, or the single value.
func (b *Text) texts(sk *Skeleton, name string) []string {
	v, ok := sk.Values[name]
	if !ok || v == nil {
		return nil
	}
	if b.languages == nil {
		return []string{toString(v)}
	}
	values, _ := toStringMap(v)
	out := make([]string, 0, len(values))
	for _, lang := range b.languages {
		if val, ok := values[lang]; ok {
			out = append(out, val)
		}
	}
	return out
}

func (b *Text) SearchTags(sk *Skeleton, name string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, text := range b.texts(sk, name) {
		for _, tag := range htmlsanitizer.SearchTags(text, b.validChars) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func (b *Text) SearchFields(sk *Skeleton, name, prefix string) []SearchField {
	v, ok := sk.Values[name]
	if !ok || v == nil {
		return nil
	}
	kind := TextField
	if b.html {
		kind = HTMLField
	}
	if b.languages == nil {
		return []SearchField{{Name: prefix + name, Kind: kind, Value: toString(v)}}
	}
	values, _ := toStringMap(v)
	fields := make([]SearchField, 0, len(b.languages))
	for _, lang := range b.languages {
		fields = append(fields, SearchField{Name: prefix + name, Kind: kind, Value: values[lang], Language: lang})
	}
	return fields
}

// ReferencedBlobs returns the file keys linked through /file/download/
// paths, in order of appearance.
func (b *Text) ReferencedBlobs(sk *Skeleton, name string) []string {
	var keys []string
	for _, text := range b.texts(sk, name) {
		for _, key := range blobKeys(text) {
			if !slices.Contains(keys, key) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

// blobKeys extracts the key following each /file/download/ up to the next
// '/' or '"'.
func blobKeys(text string) []string {
	var keys []string
	for {
		_, rest, ok := strings.Cut(text, blobPathPrefix)
		if !ok {
			return keys
		}
		end := strings.IndexAny(rest, `/"`)
		if end < 0 {
			end = len(rest)
		}
		if key := rest[:end]; key != "" && !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
		text = rest[end:]
	}
}

func hasNonEmpty(values map[string]string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}
