package bone_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bones/pkg/bone"
)

func newPageSchema() *bone.Schema {
	return bone.NewSchema("page").
		Add("title", bone.NewText(bone.TextConfig{StripTags: true}, bone.Required(), bone.Searchable())).
		Add("body", bone.NewText(bone.TextConfig{Languages: []string{"de", "en"}}, bone.Searchable())).
		Add("price", bone.NewNumeric(bone.NumericConfig{Precision: 2}, bone.Searchable())).
		Add("status", bone.NewSelect(bone.Choices("draft", "published"), bone.WithDefault("draft"))).
		Add("notes", bone.NewText(bone.TextConfig{}, bone.NotIndexed()))
}

func TestSchema_NewSkeleton(t *testing.T) {
	t.Parallel()

	sk := newPageSchema().NewSkeleton()
	assert.Equal(t, "", sk.Values["title"])
	assert.Equal(t, map[string]string{}, sk.Values["body"])
	assert.Equal(t, "draft", sk.Values["status"])
	_, ok := sk.Values["price"]
	assert.False(t, ok)
}

func TestSchema_FromClient(t *testing.T) {
	t.Parallel()

	schema := newPageSchema()

	t.Run("optional bones may be missing", func(t *testing.T) {
		t.Parallel()
		sk := schema.NewSkeleton()
		errs := schema.FromClient(context.Background(), sk, map[string]any{"title": "Hello"})
		assert.Empty(t, errs)
		assert.Equal(t, "Hello", sk.Values["title"])
		assert.Equal(t, "draft", sk.Values["status"])
	})

	t.Run("required bone reported", func(t *testing.T) {
		t.Parallel()
		errs := schema.FromClient(context.Background(), schema.NewSkeleton(), map[string]any{})
		require.Len(t, errs, 1)
		assert.Equal(t, "title", errs[0].Field)
		assert.Equal(t, bone.SeverityEmpty, errs[0].Severity)
	})

	t.Run("invalid values always reported", func(t *testing.T) {
		t.Parallel()
		errs := schema.FromClient(context.Background(), schema.NewSkeleton(), map[string]any{
			"title":  "Hello",
			"status": "archived",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "status", errs[0].Field)
		assert.True(t, errs.HasSeverity(bone.SeverityInvalid))
		assert.ErrorContains(t, errs, "status: No or invalid value selected")
	})
}

func TestSchema_RoundTrip(t *testing.T) {
	t.Parallel()

	schema := newPageSchema()
	sk := schema.NewSkeleton()
	require.Empty(t, schema.FromClient(context.Background(), sk, map[string]any{
		"title":   "Quarterly <b>Report</b>",
		"body.de": "<p>Zusammenfassung</p>",
		"body.en": `<p>Summary <img src="/file/download/img1/x.png"></p>`,
		"price":   "19,999",
		"status":  "published",
	}))
	schema.Serialize(sk)

	assert.Equal(t, bone.Entity{
		"title":   "Quarterly  Report ",
		"body_de": "<p>Zusammenfassung</p>",
		"body_en": `<p>Summary <img src="/file/download/img1/x.png"></p>`,
		"price":   20.0,
		"status":  "published",
		"notes":   "",
	}, sk.Entity)

	loaded := bone.NewSkeleton()
	loaded.Entity = sk.Entity
	schema.Unserialize(loaded)
	assert.Equal(t, sk.Values, loaded.Values)

	assert.Equal(t, []string{"quarterly", "report", "zusammenfassung", "summary"}, schema.SearchTags(loaded))
	assert.Equal(t, []string{"img1"}, schema.ReferencedBlobs(loaded))

	fields := schema.SearchFields(loaded)
	require.Len(t, fields, 4)
	assert.Equal(t, bone.SearchField{Name: "title", Kind: bone.TextField, Value: "Quarterly  Report "}, fields[0])
	assert.Equal(t, bone.SearchField{Name: "price", Kind: bone.NumberField, Value: 20.0}, fields[3])
}

func TestSchema_BuildQuery(t *testing.T) {
	t.Parallel()

	schema := newPageSchema()

	q, err := schema.BuildQuery(map[string]any{
		"title$lk": "Quar",
		"price$ge": "5",
		"price$lt": "10.5",
		"notes":    "not indexed",
		"orderby":  "price",
		"orderdir": "desc",
		"amount":   "500",
	})
	require.NoError(t, err)
	assert.Equal(t, []bone.Filter{
		{Field: "title", Op: bone.OpPrefix, Value: "Quar"},
		{Field: "price", Op: bone.OpGreaterEqual, Value: 5.0},
		{Field: "price", Op: bone.OpLess, Value: 10.5},
	}, q.Filters)
	assert.Equal(t, []bone.Order{{Field: "price", Descending: true}}, q.Orders)
	assert.Equal(t, int64(bone.MaxAmount), q.Limit)

	q, err = schema.BuildQuery(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, q.Filters)
	assert.Equal(t, int64(bone.DefaultAmount), q.Limit)

	_, err = schema.BuildQuery(map[string]any{"orderby": "notes"})
	assert.ErrorIs(t, err, bone.ErrInvalidOrder)

	_, err = schema.BuildQuery(map[string]any{"price": "cheap"})
	assert.ErrorIs(t, err, bone.ErrInvalidFilter)
}

func TestSchema_Add(t *testing.T) {
	t.Parallel()

	schema := bone.NewSchema("x").Add("a", bone.NewBase()).Add("b", bone.NewBase())
	assert.Equal(t, []string{"a", "b"}, schema.Names())

	b, ok := schema.Bone("a")
	assert.True(t, ok)
	assert.NotNil(t, b)

	assert.PanicsWithError(t, "bone name already registered: a", func() {
		schema.Add("a", bone.NewBase())
	})
}

func TestBase_FromClient(t *testing.T) {
	t.Parallel()

	b := bone.NewBase(bone.WithCheck(func(v any) string {
		if v == "bad" {
			return "rejected"
		}
		return ""
	}))

	sk := bone.NewSkeleton()
	assert.Empty(t, b.FromClient(context.Background(), sk, "x", map[string]any{"x": 7}))
	assert.Equal(t, 7, sk.Values["x"])

	errs := b.FromClient(context.Background(), sk, "x", map[string]any{"x": "bad"})
	require.Len(t, errs, 1)
	assert.Equal(t, "rejected", errs[0].Message)

	errs = b.FromClient(context.Background(), sk, "x", map[string]any{"x": nil})
	require.Len(t, errs, 1)
	assert.Equal(t, bone.SeverityEmpty, errs[0].Severity)
}
