package bone

import (
	"iter"
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	// OpPrefix matches strings starting with the value.
	OpPrefix Operator = "prefix"
)

// filterSuffixes maps the suffix of a raw filter key ("price$lt") to its
// operator.
var filterSuffixes = map[string]Operator{
	"$lt": OpLess,
	"$gt": OpGreater,
	"$le": OpLessEqual,
	"$ge": OpGreaterEqual,
	"$ne": OpNotEqual,
	"$lk": OpPrefix,
}

var mongoOperators = map[Operator]string{
	OpEqual:        "$eq",
	OpNotEqual:     "$ne",
	OpLess:         "$lt",
	OpGreater:      "$gt",
	OpLessEqual:    "$lte",
	OpGreaterEqual: "$gte",
}

// Filter is a single condition on a property.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Order sorts by a property.
type Order struct {
	Field      string
	Descending bool
}

// Query collects filters and sort orders for a datastore lookup.
type Query struct {
	Filters []Filter
	Orders  []Order
	Limit   int64
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Filter adds a condition.
func (q *Query) Filter(field string, op Operator, value any) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderBy adds a sort order.
func (q *Query) OrderBy(field string, descending bool) *Query {
	q.Orders = append(q.Orders, Order{Field: field, Descending: descending})
	return q
}

// SetLimit caps the number of results. Zero means no limit.
func (q *Query) SetLimit(n int64) *Query {
	q.Limit = n
	return q
}

// BSON renders the filters as a MongoDB filter document. Conditions on the
// same field are merged into one operator document; a lone equality is
// rendered as a plain value.
func (q *Query) BSON() bson.D {
	var fields []string
	byField := make(map[string][]Filter)
	for _, f := range q.Filters {
		if _, ok := byField[f.Field]; !ok {
			fields = append(fields, f.Field)
		}
		byField[f.Field] = append(byField[f.Field], f)
	}

	doc := make(bson.D, 0, len(fields))
	for _, field := range fields {
		filters := byField[field]
		if len(filters) == 1 && filters[0].Op == OpEqual {
			doc = append(doc, bson.E{Key: field, Value: filters[0].Value})
			continue
		}
		var cond bson.D
		for _, f := range filters {
			if f.Op == OpPrefix {
				cond = append(cond, bson.E{Key: "$regex", Value: bson.Regex{Pattern: "^" + regexp.QuoteMeta(toString(f.Value))}})
				continue
			}
			cond = append(cond, bson.E{Key: mongoOperators[f.Op], Value: f.Value})
		}
		doc = append(doc, bson.E{Key: field, Value: cond})
	}
	return doc
}

// Sort renders the sort orders as a MongoDB sort document.
func (q *Query) Sort() bson.D {
	if len(q.Orders) == 0 {
		return nil
	}
	doc := make(bson.D, 0, len(q.Orders))
	for _, o := range q.Orders {
		dir := 1
		if o.Descending {
			dir = -1
		}
		doc = append(doc, bson.E{Key: o.Field, Value: dir})
	}
	return doc
}

// filtersFor yields the raw filter entries addressed to name, either as the
// plain name or as name followed by an operator suffix. Keys are visited in
// sorted order so the resulting query is deterministic.
func filtersFor(name string, raw map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		keys := make([]string, 0, len(raw))
		for key := range raw {
			if key == name || strings.HasPrefix(key, name+"$") {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !yield(key, raw[key]) {
				return
			}
		}
	}
}

func operatorFor(key, name string) (Operator, bool) {
	if key == name {
		return OpEqual, true
	}
	op, ok := filterSuffixes[strings.TrimPrefix(key, name)]
	return op, ok
}
