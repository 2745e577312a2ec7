package i18n

import (
	"log/slog"

	"github.com/dmitrymomot/bones/pkg/logger"
)

// Option is a function that configures a Translator instance.
type Option func(*Translator)

// WithDefaultLanguage sets the language used by the context helpers when the
// context carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if code := NormalizeLanguage(lang); code != "" {
			t.defaultLang = code
		}
	}
}

// WithAliasMap makes every source language serve the translations of its
// target language, e.g. {"de-at": "de", "de-ch": "de"}.
func WithAliasMap(aliases map[string]string) Option {
	return func(t *Translator) {
		t.aliases = make(map[string]string, len(aliases))
		for src, dst := range aliases {
			t.aliases[NormalizeLanguage(src)] = NormalizeLanguage(dst)
		}
	}
}

// WithFallbackToKey determines whether T returns the key when a translation
// is not found. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger provides a customizable logger for the translator.
// If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging controls whether missing translations
// are logged. Default is false to avoid excessive logging.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// WithNoLogging is a convenience option that disables all logging.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = logger.Discard()
		t.missingLogMode = false
	}
}
