package i18n

import (
	"context"
	"strings"
)

// Translation is a translatable text declared in code: a lookup key, the
// text used when no translation exists, and a hint for translators.
type Translation struct {
	Key         string
	DefaultText string
	Hint        string
}

// NewTranslation returns a Translation; keys are case-insensitive.
func NewTranslation(key, defaultText, hint string) Translation {
	return Translation{Key: strings.ToLower(key), DefaultText: defaultText, Hint: hint}
}

// In resolves the translation for lang using t. A nil translator yields the
// default text.
func (tr Translation) In(t *Translator, lang string, args ...string) string {
	if t == nil {
		return tr.fallback(args)
	}
	return t.Translate(lang, tr.Key, tr.DefaultText, args...)
}

// String resolves the translation with the translator and locale of ctx.
// Without a translator the default text, or the key, is returned.
func (tr Translation) String(ctx context.Context) string {
	return tr.Format(ctx, nil)
}

// Format is String with {{name}} placeholders replaced by vars.
func (tr Translation) Format(ctx context.Context, vars map[string]any) string {
	t, ok := TranslatorFromContext(ctx)
	if !ok {
		return tr.fallback(Vars(vars))
	}
	return tr.In(t, t.localeOf(ctx), Vars(vars)...)
}

func (tr Translation) fallback(args []string) string {
	text := tr.DefaultText
	if text == "" {
		text = tr.Key
	}
	return substitute(text, pairs(args))
}
