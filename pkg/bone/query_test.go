package bone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/bones/pkg/bone"
)

func TestQuery_BSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query *bone.Query
		want  bson.D
	}{
		{
			name:  "empty",
			query: bone.NewQuery(),
			want:  bson.D{},
		},
		{
			name:  "plain equality",
			query: bone.NewQuery().Filter("status", bone.OpEqual, "draft"),
			want:  bson.D{{Key: "status", Value: "draft"}},
		},
		{
			name: "range merged per field",
			query: bone.NewQuery().
				Filter("price", bone.OpGreaterEqual, 5).
				Filter("status", bone.OpNotEqual, "deleted").
				Filter("price", bone.OpLess, 10),
			want: bson.D{
				{Key: "price", Value: bson.D{{Key: "$gte", Value: 5}, {Key: "$lt", Value: 10}}},
				{Key: "status", Value: bson.D{{Key: "$ne", Value: "deleted"}}},
			},
		},
		{
			name:  "equality combined with other operators",
			query: bone.NewQuery().Filter("n", bone.OpEqual, 1).Filter("n", bone.OpLessEqual, 2).Filter("n", bone.OpGreater, 0),
			want:  bson.D{{Key: "n", Value: bson.D{{Key: "$eq", Value: 1}, {Key: "$lte", Value: 2}, {Key: "$gt", Value: 0}}}},
		},
		{
			name:  "prefix is quoted",
			query: bone.NewQuery().Filter("title", bone.OpPrefix, "v1.0 (beta)"),
			want:  bson.D{{Key: "title", Value: bson.D{{Key: "$regex", Value: bson.Regex{Pattern: `^v1\.0 \(beta\)`}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.query.BSON())
		})
	}
}

func TestQuery_Sort(t *testing.T) {
	t.Parallel()

	assert.Nil(t, bone.NewQuery().Sort())

	q := bone.NewQuery().OrderBy("price", true).OrderBy("title", false).SetLimit(10)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "title", Value: 1}}, q.Sort())
	assert.Equal(t, int64(10), q.Limit)
}

func TestBase_BuildDBFilter(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"name":     "x",
		"name$lt":  "m",
		"name$lk":  "Jo",
		"name$foo": "ignored",
		"names":    "other bone",
	}

	q := bone.NewQuery()
	require.NoError(t, bone.NewBase().BuildDBFilter("name", q, raw))
	assert.Equal(t, []bone.Filter{
		{Field: "name", Op: bone.OpEqual, Value: "x"},
		{Field: "name", Op: bone.OpPrefix, Value: "Jo"},
		{Field: "name", Op: bone.OpLess, Value: "m"},
	}, q.Filters)

	q = bone.NewQuery()
	require.NoError(t, bone.NewBase(bone.NotIndexed()).BuildDBFilter("name", q, raw))
	assert.Empty(t, q.Filters)
}
