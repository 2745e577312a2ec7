package bone

import (
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func toString(v any) string {
	return cast.ToString(v)
}

// toStringMap converts the nested documents the datastore returns into a
// string map.
func toStringMap(v any) (map[string]string, bool) {
	switch val := v.(type) {
	case map[string]string:
		return val, true
	case bson.D:
		out := make(map[string]string, len(val))
		for _, e := range val {
			out[e.Key] = cast.ToString(e.Value)
		}
		return out, true
	case bson.M:
		return cast.ToStringMapString(map[string]any(val)), true
	case map[string]any:
		return cast.ToStringMapString(val), true
	}
	return nil, false
}

// toStringSlice converts a scalar or list to a list of strings. Nil yields
// an empty list.
func toStringSlice(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return val
	case bson.A:
		return cast.ToStringSlice([]any(val))
	case []any:
		return cast.ToStringSlice(val)
	}
	return []string{cast.ToString(v)}
}
