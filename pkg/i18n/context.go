package i18n

import (
	"context"
)

type localeContextKey struct{}

type translatorContextKey struct{}

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, NormalizeLanguage(locale))
}

// LocaleFromContext returns the locale stored with SetLocale.
func LocaleFromContext(ctx context.Context) (string, bool) {
	locale, ok := ctx.Value(localeContextKey{}).(string)
	return locale, ok && locale != ""
}

// GetLocale returns the locale from the context, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if locale, ok := LocaleFromContext(ctx); ok {
		return locale
	}
	return DefaultLanguage
}

// WithTranslator stores t in the context for Translation.String.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, translatorContextKey{}, t)
}

// TranslatorFromContext returns the translator stored with WithTranslator.
func TranslatorFromContext(ctx context.Context) (*Translator, bool) {
	t, ok := ctx.Value(translatorContextKey{}).(*Translator)
	return t, ok && t != nil
}
