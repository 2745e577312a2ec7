package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bones/pkg/bone"
	"github.com/dmitrymomot/bones/pkg/config"
	"github.com/dmitrymomot/bones/pkg/htmlsanitizer"
	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// dirs is an in-memory tree: parent key -> child name -> child key.
type dirs map[string]map[string]string

func (d dirs) NodeExists(_ context.Context, key string) (bool, error) {
	_, ok := d[key]
	return ok, nil
}

func (d dirs) FindChild(_ context.Context, parentKey, name string) (string, bool, error) {
	key, ok := d[parentKey][name]
	return key, ok, nil
}

func testApp() *app {
	return &app{
		framework: config.Framework{
			SearchValidChars:  "abcdefghijklmnopqrstuvwxyz",
			MaxPasswordLength: 8,
			Languages:         []string{"de", "en"},
			TextMaxLength:     5,
		},
		log: logger.Discard(),
	}
}

func TestSchemas_Page(t *testing.T) {
	t.Parallel()

	tree := dirs{"root": {"docs": "d1"}, "d1": {}}
	page, err := testApp().schema("page", tree, htmlsanitizer.DefaultPolicy())
	require.NoError(t, err)

	body, ok := page.Bone("body")
	require.True(t, ok)
	assert.Equal(t, []string{"de", "en"}, body.(*bone.Text).Languages())

	t.Run("framework text length", func(t *testing.T) {
		t.Parallel()
		sk := page.NewSkeleton()
		errs := page.FromClient(context.Background(), sk, map[string]any{
			"title":   "longer than five",
			"body.de": "Hallo",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, []string{"title"}, errs.Fields())
		assert.Equal(t, []string{"Maximum length exceeded"}, errs.Get("title"))
		assert.Equal(t, map[string]string{"de": "Hallo"}, sk.Values["body"])
		assert.Equal(t, "draft", sk.Values["status"])
	})

	t.Run("folder resolved through the tree", func(t *testing.T) {
		t.Parallel()
		sk := page.NewSkeleton()
		errs := page.FromClient(context.Background(), sk, map[string]any{
			"title":  "Intro",
			"folder": "root/docs",
			"price":  "9,99",
		})
		require.Empty(t, errs)
		assert.Equal(t, "root/docs", sk.Values["folder"])
		assert.Equal(t, 9.99, sk.Values["price"])
	})

	t.Run("unknown folder", func(t *testing.T) {
		t.Parallel()
		errs := page.FromClient(context.Background(), page.NewSkeleton(), map[string]any{
			"title":  "Intro",
			"folder": "root/missing",
		})
		assert.Equal(t, []string{"Invalid path supplied"}, errs.Get("folder"))
	})
}

func TestSchemas_UserPasswordLength(t *testing.T) {
	t.Parallel()

	user, err := testApp().schema("user", dirs{}, nil)
	require.NoError(t, err)

	sk := user.NewSkeleton()
	errs := user.FromClient(context.Background(), sk, map[string]any{
		"name":     "ann",
		"password": "Abcdef12XYZ",
		"access":   []string{"root", "page-view"},
	})
	require.Empty(t, errs)
	user.Serialize(sk)

	// Only the first MaxPasswordLength characters are hashed.
	assert.True(t, bone.VerifyPassword(sk.Entity["password"], "Abcdef12---", 8))
	assert.False(t, bone.VerifyPassword(sk.Entity["password"], "Abcdef1", 8))
	assert.Equal(t, []string{"root", "page-view"}, sk.Values["access"])
}

func TestSchema_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := testApp().schema("invoice", dirs{}, nil)
	assert.ErrorContains(t, err, `unknown kind "invoice"`)
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	raw, err := parseFilters([]string{"price$ge=10", "title$lk=In=tro", "orderby=price"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"price$ge": "10", "title$lk": "In=tro", "orderby": "price"}, raw)

	_, err = parseFilters([]string{"price"})
	assert.Error(t, err)
	_, err = parseFilters([]string{"=1"})
	assert.Error(t, err)
}

func TestPrintValidationErrors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		validator.EmptyError("title", ""),
		validator.InvalidError("price", "too high"),
		validator.InvalidError("title", "too long"),
	}
	var buf bytes.Buffer
	printValidationErrors(&buf, errs)
	assert.Equal(t, "title: No value entered; too long\nprice: too high\n", buf.String())
}

func TestPrintSkeleton(t *testing.T) {
	t.Parallel()

	sk := bone.NewSkeleton()
	sk.Key = "k1"
	sk.Set("title", "Intro")
	sk.Set("price", int64(3))

	var buf bytes.Buffer
	require.NoError(t, printSkeleton(&buf, sk))
	assert.JSONEq(t, `{"key": "k1", "title": "Intro", "price": 3}`, buf.String())
}
