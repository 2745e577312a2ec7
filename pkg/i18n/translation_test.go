package i18n_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/bones/pkg/i18n"
)

func TestTranslation(t *testing.T) {
	t.Parallel()

	translator := newTestTranslator(t)
	tooShort := i18n.NewTranslation("server.bones.passwordBone.tooShortMessage",
		"The entered password is to short - it requires at least {{length}} characters.", "")
	unknown := i18n.NewTranslation("does.not.exist", "", "")

	t.Run("key lower-cased", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "server.bones.passwordbone.tooshortmessage", tooShort.Key)
	})

	t.Run("without translator", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		assert.Equal(t, "The entered password is to short - it requires at least 8 characters.",
			tooShort.Format(ctx, map[string]any{"length": 8}))
		assert.Equal(t, "does.not.exist", unknown.String(ctx))
		assert.Equal(t, "does.not.exist", unknown.In(nil, "en"))
	})

	t.Run("with translator in context", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithTranslator(i18n.SetLocale(context.Background(), "en"), translator)
		assert.Equal(t, "At least 8 characters.", tooShort.Format(ctx, map[string]any{"length": 8}))
	})

	t.Run("language without translation uses default text", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithTranslator(i18n.SetLocale(context.Background(), "de"), translator)
		assert.Equal(t, "The entered password is to short - it requires at least 10 characters.",
			tooShort.Format(ctx, map[string]any{"length": 10}))
	})

	t.Run("context translator lookup", func(t *testing.T) {
		t.Parallel()
		_, ok := i18n.TranslatorFromContext(context.Background())
		assert.False(t, ok)
		got, ok := i18n.TranslatorFromContext(i18n.WithTranslator(context.Background(), translator))
		assert.True(t, ok)
		assert.Same(t, translator, got)
	})
}

func TestStrfTime(t *testing.T) {
	t.Parallel()

	translator := newTranslatorWithDates(t)
	tm := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name   string
		lang   string
		format string
		want   string
	}{
		{"untranslated names", "en", "%a %A %b %B", "Tue Tuesday Mar March"},
		{"translated names", "de", "%a, %d. %B %Y", "Di, 05. März 2024"},
		{"localized date format", "de", "%x", "05.03.2024"},
		{"default date format", "en", "%x", "03/05/2024"},
		{"default time format", "en", "%X", "14:07:09"},
		{"default datetime format", "en", "%c", "Tue Mar 05 14:07:09 2024"},
		{"localized datetime format", "de", "%c", "Di 05.03.2024 14:07"},
		{"numeric directives", "en", "%j %w %y %I %p %e %z %Z", "065 2 24 02 PM  5 +0000 UTC"},
		{"escapes and unknown", "en", "100%% %Q done%", "100% %Q done%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, translator.StrfTime(tt.lang, tm, tt.format))
		})
	}
}

func TestStrfTime_NilTranslator(t *testing.T) {
	t.Parallel()

	var translator *i18n.Translator
	tm := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sun 01 Dec", translator.StrfTime("en", tm, "%a %d %b"))
}

func newTranslatorWithDates(t *testing.T) *i18n.Translator {
	t.Helper()
	translator, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: i18n.Table{
		"de": {
			"const_day_2_short":    "Di",
			"const_month_3_long":   "März",
			"const_dateformat":     "%d.%m.%Y",
			"const_datetimeformat": "%a %d.%m.%Y %H:%M",
		},
		"en": {},
	}})
	if err != nil {
		t.Fatal(err)
	}
	return translator
}
