package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/bones/pkg/logger"
)

// DefaultLanguage is used when neither the context nor the options name one.
const DefaultLanguage = "en"

// Translator resolves translation keys against a table loaded from an
// adapter. The table is replaced as a whole on Reload; lookups never see a
// partially loaded table. Translator is safe for concurrent use.
type Translator struct {
	mu             sync.RWMutex
	table          Table
	adapter        TranslationAdapter
	defaultLang    string
	aliases        map[string]string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator creates a Translator and performs the initial load.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:       adapter,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload fetches the table from the adapter again and swaps it in. On error
// the previous table stays active.
func (t *Translator) Reload(ctx context.Context) error {
	raw, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	table, err := raw.normalize()
	if err != nil {
		return err
	}
	if len(table) == 0 {
		t.logger.WarnContext(ctx, "No translations provided")
	}
	t.expandAliases(table)

	t.mu.Lock()
	t.table = table
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "Translations loaded", "languages", table.Languages())
	return nil
}

// expandAliases gives every alias language the entries of its target that
// it does not define itself.
func (t *Translator) expandAliases(table Table) {
	for src, dst := range t.aliases {
		target, ok := table[dst]
		if !ok {
			continue
		}
		merged := make(map[string]string, len(target))
		for k, v := range target {
			merged[k] = v
		}
		for k, v := range table[src] {
			merged[k] = v
		}
		table[src] = merged
	}
}

// DefaultLanguage returns the configured default language code.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the sorted language codes with translations,
// alias languages included.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Languages()
}

// resolveLanguage maps lang onto a language of the table: the language
// itself, its alias target, then its base language. Callers hold t.mu.
func (t *Translator) resolveLanguage(lang string) (map[string]string, bool) {
	code := NormalizeLanguage(lang)
	if entries, ok := t.table[code]; ok {
		return entries, true
	}
	if dst, ok := t.aliases[code]; ok {
		if entries, ok := t.table[dst]; ok {
			return entries, true
		}
	}
	if base := baseLanguage(code); base != "" && base != code {
		if entries, ok := t.table[base]; ok {
			return entries, true
		}
	}
	return nil, false
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries, ok := t.resolveLanguage(lang)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("Language not supported", logger.Language(lang), logger.Key(key))
		}
		return "", false
	}
	text, ok := entries[strings.ToLower(key)]
	if !ok && t.missingLogMode {
		t.logger.Warn("Translation not found", logger.Language(lang), logger.Key(key))
	}
	return text, ok
}

// HasTranslation checks if a translation exists for the given language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key for lang. Arguments are name/value pairs substituted into
// {{name}} (or %{name}) placeholders:
//
//	// "welcome": "Hello, {{name}}!"
//	translator.T("en", "welcome", "name", "John") // "Hello, John!"
//
// A missing translation yields the key when fallback to key is enabled,
// otherwise an empty string.
func (t *Translator) T(lang, key string, args ...string) string {
	if text, ok := t.lookup(lang, key); ok {
		return substitute(text, pairs(args))
	}
	if t.fallbackToKey {
		return substitute(key, pairs(args))
	}
	return ""
}

// Translate translates key for lang and falls back to defaultText, or to the
// key when defaultText is empty.
func (t *Translator) Translate(lang, key, defaultText string, args ...string) string {
	if text, ok := t.lookup(lang, key); ok {
		return substitute(text, pairs(args))
	}
	if defaultText == "" {
		defaultText = key
	}
	return substitute(defaultText, pairs(args))
}

// N translates key with pluralization. For n=0 it tries key+".zero" then
// key+".other", for n=1 key+".one", otherwise key+".other", and finally the
// bare key. The count is available to the template as {{count}}.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	params := pairs(args)
	if _, ok := params["count"]; !ok {
		params["count"] = strconv.Itoa(n)
	}

	var forms []string
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one"}
	default:
		forms = []string{key + ".other"}
	}
	forms = append(forms, key)

	for _, form := range forms {
		if text, ok := t.lookup(lang, form); ok {
			return substitute(text, params)
		}
	}
	if t.fallbackToKey {
		return substitute(key, params)
	}
	return ""
}

// Tc translates a key using the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(t.localeOf(ctx), key, args...)
}

// Nc translates a plural key using the language stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(t.localeOf(ctx), key, n, args...)
}

func (t *Translator) localeOf(ctx context.Context) string {
	if lang, ok := LocaleFromContext(ctx); ok {
		return lang
	}
	return t.defaultLang
}

// ExportJSON returns all translations of a language as a JSON object.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries, ok := t.resolveLanguage(lang)
	if !ok {
		return "", &ErrLanguageNotSupported{Lang: lang}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(data), nil
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

// Vars converts arbitrary values into the name/value pairs accepted by T.
func Vars(vars map[string]any) []string {
	args := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		args = append(args, k, fmt.Sprint(v))
	}
	return args
}

var paramRegex = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}|%\{([^}]+)\}`)

// substitute replaces {{name}} and %{name} placeholders. Unknown names are
// left untouched.
func substitute(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.ContainsAny(tmpl, "{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		groups := paramRegex.FindStringSubmatch(match)
		name := groups[1]
		if name == "" {
			name = groups[2]
		}
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}
