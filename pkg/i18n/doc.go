// Package i18n loads translation tables and resolves translated texts for
// field messages, templates and localized dates.
//
// A Translator owns one immutable Table (language → key → text) obtained
// from a TranslationAdapter. Tables are replaced atomically by Reload, so a
// long-running process can pick up edited translations without restarts and
// without any package-level state.
//
// # Adapters
//
//   - MapAdapter    – fixed in-memory table
//   - FileAdapter   – one JSON or YAML file, parser chosen by extension
//   - FSAdapter     – every JSON/YAML file of a directory in an fs.FS
//     (NewDirectoryAdapter wraps a directory on disk)
//   - MongoAdapter  – one document per key: {key, translations: {lang: text}}
//   - CachedAdapter – Redis (or any SnapshotStore) snapshot in front of
//     another adapter
//
// # Languages
//
// Language codes are normalized to lower-case BCP 47 ("en_US" → "en-us").
// A lookup tries the language itself, its alias target (WithAliasMap) and
// finally its base language, so "de-at" falls back to "de".
//
// # Usage
//
//	translator, err := i18n.NewTranslator(ctx, i18n.NewFileAdapter(nil, "translations.yaml"),
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithAliasMap(map[string]string{"de-at": "de"}),
//	)
//	if err != nil {
//		return err
//	}
//
//	translator.T("de", "welcome", "name", "Jana") // "Willkommen, Jana!"
//
//	tooWeak := i18n.NewTranslation("server.bones.passwordBone.tooWeakMessage",
//		"The entered password is too weak.", "")
//	ctx = i18n.WithTranslator(i18n.SetLocale(ctx, "de"), translator)
//	msg := tooWeak.String(ctx)
//
// Placeholders use the {{name}} form; %{name} is accepted as well.
//
// StrfTime formats times with localized day and month names taken from the
// const_day_* and const_month_* keys.
package i18n
