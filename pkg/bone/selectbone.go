package bone

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrymomot/bones/pkg/validator"
)

// Choice is one selectable value.
type Choice struct {
	Key   string
	Label string
}

// Choices returns choices whose labels equal their keys.
func Choices(keys ...string) []Choice {
	out := make([]Choice, len(keys))
	for i, k := range keys {
		out[i] = Choice{Key: k, Label: k}
	}
	return out
}

// ChoicesFromMap returns the entries of m sorted by label, or by key when
// sortByKeys is set.
func ChoicesFromMap(m map[string]string, sortByKeys bool) []Choice {
	out := make([]Choice, 0, len(m))
	for k, v := range m {
		out = append(out, Choice{Key: k, Label: v})
	}
	slices.SortFunc(out, func(a, b Choice) int {
		if sortByKeys {
			return cmp.Compare(a.Key, b.Key)
		}
		return cmp.Or(cmp.Compare(a.Label, b.Label), cmp.Compare(a.Key, b.Key))
	})
	return out
}

// Select holds one key of a fixed list of choices, or a list of keys when
// created with the Multiple option.
type Select struct {
	Base
	choices []Choice
	keys    []string
}

// NewSelect returns a select bone offering choices in the given order.
func NewSelect(choices []Choice, opts ...Option) *Select {
	b := &Select{Base: newBase(opts), choices: slices.Clone(choices)}
	b.keys = make([]string, len(b.choices))
	for i, c := range b.choices {
		b.keys[i] = c.Key
	}
	if b.DefaultValue == nil && b.Multiple {
		b.DefaultValue = []string{}
	}
	return b
}

// accessRights are the suffixes NewSelectAccess offers for every module.
var accessRights = []string{"add", "delete", "view", "edit"}

// NewSelectAccess returns a multiple select of the access rights
// "<module>-add", "-delete", "-view" and "-edit" for each module, preceded
// by the plain entries given in extra (for example "root" or "admin").
func NewSelectAccess(modules []string, extra []string, opts ...Option) *Select {
	var choices []Choice
	choices = append(choices, Choices(extra...)...)
	for _, module := range modules {
		for _, right := range accessRights {
			choices = append(choices, Choices(module+"-"+right)...)
		}
	}
	return NewSelect(choices, append(opts, Multiple())...)
}

// Choices returns the configured choices.
func (b *Select) Choices() []Choice {
	return slices.Clone(b.choices)
}

func (b *Select) FromClient(_ context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	raw, ok := data[name]
	if !ok {
		return ReadFromClientErrors{validator.NotSetError(name)}
	}
	if isBlank(raw) {
		if b.Multiple && !b.Required {
			sk.Set(name, []string{})
		}
		return ReadFromClientErrors{validator.EmptyError(name, "No value selected")}
	}

	if !b.Multiple {
		key := toString(raw)
		if err := validator.First(validator.InList(name, key, b.keys)); err != nil {
			return ReadFromClientErrors{validator.InvalidError(name, "No or invalid value selected")}
		}
		if msg := b.check(key); msg != "" {
			return ReadFromClientErrors{validator.InvalidError(name, msg)}
		}
		sk.Set(name, key)
		return nil
	}

	var submitted []string
	switch v := raw.(type) {
	case string:
		submitted = strings.Split(v, ":")
	case []string, []any:
		submitted = toStringSlice(v)
	}

	// Keys are kept in declared order, not submission order.
	selected := []string{}
	var errs ReadFromClientErrors
	for _, key := range b.keys {
		if !slices.Contains(submitted, key) {
			continue
		}
		if msg := b.check(key); msg != "" {
			errs = append(errs, validator.InvalidError(name, msg))
			continue
		}
		selected = append(selected, key)
	}
	sk.Set(name, selected)
	if len(errs) > 0 {
		return errs
	}
	if err := validator.First(validator.NotEmptySlice(name, selected)); err != nil {
		return ReadFromClientErrors{*err}
	}
	return nil
}

func (b *Select) Unserialize(sk *Skeleton, name string) bool {
	v, ok := sk.Entity[name]
	if !ok {
		return false
	}
	values := toStringSlice(v)
	if b.Multiple {
		sk.Set(name, values)
		return true
	}
	if len(values) == 0 {
		sk.Set(name, nil)
		return true
	}
	sk.Set(name, values[0])
	return true
}

// BuildDBFilter matches single selects by equality. For multiple selects the
// filter value must be contained in the stored list, which MongoDB equality
// on an array field provides.
func (b *Select) BuildDBFilter(name string, q *Query, raw map[string]any) error {
	if !b.Multiple {
		return b.Base.BuildDBFilter(name, q, raw)
	}
	if !b.Indexed {
		return nil
	}
	if v, ok := raw[name]; ok {
		q.Filter(name, OpEqual, toString(v))
	}
	return nil
}
