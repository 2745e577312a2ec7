package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bones/pkg/i18n"
)

const yamlTranslations = `
en:
  greeting: Hello
  datetime:
    days: "{{count}} days"
de:
  greeting: Hallo
`

const jsonTranslations = `{
	"en": {"farewell": "Goodbye", "server.bones.selectBone.invalid": "No or invalid value selected"},
	"fr": {"farewell": "Au revoir"}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMapAdapter(t *testing.T) {
	t.Parallel()

	table, err := (&i18n.MapAdapter{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table)

	data := i18n.Table{"en": {"a": "b"}}
	table, err = (&i18n.MapAdapter{Data: data}).Load(context.Background())
	require.NoError(t, err)
	table["en"]["a"] = "changed"
	assert.Equal(t, "b", data["en"]["a"], "Load must return a copy")
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("yaml with nested keys", func(t *testing.T) {
		t.Parallel()
		adapter := i18n.NewFileAdapter(nil, writeFile(t, dir, "a.yaml", yamlTranslations))
		require.NotNil(t, adapter)

		table, err := adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello", table["en"]["greeting"])
		assert.Equal(t, "{{count}} days", table["en"]["datetime.days"])
		assert.Equal(t, "Hallo", table["de"]["greeting"])
	})

	t.Run("json with dotted keys", func(t *testing.T) {
		t.Parallel()
		adapter := i18n.NewFileAdapter(i18n.NewJSONParser(), writeFile(t, dir, "b.json", jsonTranslations))

		table, err := adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "No or invalid value selected", table["en"]["server.bones.selectBone.invalid"])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFileAdapter(nil, filepath.Join(dir, "missing.yaml")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFileAdapter(nil, writeFile(t, dir, "empty.yaml", "")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrEmptyFile)
	})

	t.Run("invalid content", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFileAdapter(nil, writeFile(t, dir, "bad.json", "{")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFileAdapter(nil, writeFile(t, dir, "c.yaml", yamlTranslations)).Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})

	t.Run("constructor guards", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, i18n.NewFileAdapter(nil, ""))
		assert.Nil(t, i18n.NewFileAdapter(nil, "translations.txt"))
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/1-base.yaml":  {Data: []byte(yamlTranslations)},
		"locales/2-extra.json": {Data: []byte(`{"en": {"greeting": "Hi"}}`)},
		"locales/readme.md":    {Data: []byte("ignored")},
		"locales/empty.yml":    {Data: nil},
	}

	t.Run("merges files in order", func(t *testing.T) {
		t.Parallel()
		table, err := i18n.NewFSAdapter(nil, fsys, "locales").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hi", table["en"]["greeting"])
		assert.Equal(t, "Hallo", table["de"]["greeting"])
	})

	t.Run("parser restricts extensions", func(t *testing.T) {
		t.Parallel()
		table, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "locales").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello", table["en"]["greeting"])
	})

	t.Run("no usable files", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFSAdapter(nil, fstest.MapFS{"x/readme.md": {}}, "x").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("broken file reported", func(t *testing.T) {
		t.Parallel()
		broken := fstest.MapFS{"x/bad.yaml": {Data: []byte("en: [")}}
		_, err := i18n.NewFSAdapter(nil, broken, "x").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("directory on disk", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "en.json", jsonTranslations)
		table, err := i18n.NewDirectoryAdapter(nil, dir).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Au revoir", table["fr"]["farewell"])
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewDirectoryAdapter(nil, filepath.Join(t.TempDir(), "nope")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})
}

func TestParsers(t *testing.T) {
	t.Parallel()

	assert.True(t, i18n.NewJSONParser().SupportsFileExtension(".JSON"))
	assert.False(t, i18n.NewJSONParser().SupportsFileExtension("yaml"))
	assert.True(t, i18n.NewYAMLParser().SupportsFileExtension("yml"))
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("x/de.YML"))
	assert.Nil(t, i18n.NewParserForFile("x/de.toml"))

	_, err := i18n.NewYAMLParser().Parse(context.Background(), []byte("en: text"))
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	table, err := i18n.NewJSONParser().Parse(context.Background(), []byte(`{"en": {"n": 5, "nil": null}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "5"}, table["en"])
}

func TestTableFromDocuments(t *testing.T) {
	t.Parallel()

	table := i18n.TableFromDocuments([]i18n.TranslationDocument{
		{Key: "hello", Translations: map[string]string{"en": "Hello", "de": "Hallo"}},
		{Key: "bye", Translations: map[string]string{"en": "Bye"}},
		{Key: "", Translations: map[string]string{"en": "ignored"}},
	})

	assert.Equal(t, i18n.Table{
		"en": {"hello": "Hello", "bye": "Bye"},
		"de": {"hello": "Hallo"},
	}, table)
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := i18n.Table{"en": {"a": "1"}}
	table.Merge(i18n.Table{"en": {"a": "2", "b": "3"}, "de": {"a": "4"}})
	assert.Equal(t, i18n.Table{"en": {"a": "2", "b": "3"}, "de": {"a": "4"}}, table)
	assert.Equal(t, []string{"de", "en"}, table.Languages())
}
