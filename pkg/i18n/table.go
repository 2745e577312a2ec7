package i18n

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Table holds translations as language code → key → text. Keys are flat;
// nested documents are flattened with dots when parsed.
type Table map[string]map[string]string

// Merge copies every translation of other into t, overwriting existing keys.
func (t Table) Merge(other Table) {
	for lang, entries := range other {
		if t[lang] == nil {
			t[lang] = make(map[string]string, len(entries))
		}
		maps.Copy(t[lang], entries)
	}
}

// Languages returns the sorted language codes of t.
func (t Table) Languages() []string {
	langs := make([]string, 0, len(t))
	for lang := range t {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// normalize returns a copy of t with canonical language codes and
// lower-case keys.
func (t Table) normalize() (Table, error) {
	out := make(Table, len(t))
	for lang, entries := range t {
		code := NormalizeLanguage(lang)
		if code == "" {
			return nil, ErrEmptyLanguageCode
		}
		if out[code] == nil {
			out[code] = make(map[string]string, len(entries))
		}
		for key, text := range entries {
			out[code][strings.ToLower(key)] = text
		}
	}
	return out, nil
}

// NormalizeLanguage returns the lower-case BCP 47 form of lang, so "en_US"
// and "EN-us" both become "en-us". Codes that do not parse are only trimmed
// and lower-cased.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return strings.ToLower(lang)
	}
	return strings.ToLower(tag.String())
}

// baseLanguage returns the language subtag of lang ("de" for "de-at").
func baseLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// flatten converts nested maps into dot separated keys.
func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				converted[fmt.Sprint(mk)] = mv
			}
			flatten(key, converted, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
