package bone

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// DefaultNumericLimit bounds numeric values in both directions unless Min
// and Max are configured.
const DefaultNumericLimit = 1 << 30

// NumericConfig configures a Numeric bone.
type NumericConfig struct {
	// Precision is the number of decimal places kept. Zero stores int64
	// values, anything else float64.
	Precision int
	// Min and Max are inclusive. When both are zero they default to
	// -DefaultNumericLimit and DefaultNumericLimit.
	Min, Max float64
}

// Numeric holds an int64 or float64.
type Numeric struct {
	Base
	precision int32
	min, max  float64
}

func NewNumeric(cfg NumericConfig, opts ...Option) *Numeric {
	b := &Numeric{
		Base:      newBase(opts),
		precision: int32(max(cfg.Precision, 0)),
		min:       cfg.Min,
		max:       cfg.Max,
	}
	if b.min == 0 && b.max == 0 {
		b.min, b.max = -DefaultNumericLimit, DefaultNumericLimit
	}
	return b
}

func (b *Numeric) FromClient(_ context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	raw, ok := data[name]
	if !ok {
		return ReadFromClientErrors{validator.NotSetError(name)}
	}

	value, f, ok := b.parse(raw)
	if ok && validator.First(validator.RangeNum(name, f, b.min, b.max)) != nil {
		ok = false
	}
	if !ok {
		sk.Set(name, nil)
		return ReadFromClientErrors{validator.EmptyError(name, "")}
	}
	if msg := b.check(value); msg != "" {
		return ReadFromClientErrors{validator.InvalidError(name, msg)}
	}
	sk.Set(name, value)
	return nil
}

// parse accepts digits with an optional leading minus and, for bones with a
// precision, one decimal separator ('.' or ','). It returns the stored value
// and the unrounded number for the range check.
func (b *Numeric) parse(raw any) (any, float64, bool) {
	s := strings.TrimSpace(cast.ToString(raw))
	if s == "" {
		return nil, 0, false
	}
	s = strings.Replace(s, ",", ".", 1)

	digits := strings.Replace(s, "-", "", 1)
	if b.precision > 0 {
		digits = strings.Replace(digits, ".", "", 1)
	}
	if digits == "" || strings.TrimFunc(digits, isDigitRune) != "" {
		return nil, 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, 0, false
	}
	if b.precision == 0 {
		return d.IntPart(), d.InexactFloat64(), true
	}
	return d.Round(b.precision).InexactFloat64(), d.InexactFloat64(), true
}

func (b *Numeric) Unserialize(sk *Skeleton, name string) bool {
	v, ok := sk.Entity[name]
	if !ok {
		return false
	}
	if s, isString := v.(string); isString {
		digits := strings.Replace(strings.TrimLeft(s, "-"), ".", "", 1)
		if digits == "" || strings.TrimFunc(digits, isDigitRune) != "" {
			return false
		}
	}
	value, err := b.coerce(v)
	if err != nil {
		return false
	}
	sk.Set(name, value)
	return true
}

// coerce converts v to the stored type of the bone. Integers stay exact;
// strings and floats go through float64 and are truncated.
func (b *Numeric) coerce(v any) (any, error) {
	if b.precision == 0 {
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return cast.ToInt64E(v)
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, err
	}
	if b.precision > 0 {
		return f, nil
	}
	return int64(math.Trunc(f)), nil
}

func (b *Numeric) BuildDBFilter(name string, q *Query, raw map[string]any) error {
	if !b.Indexed {
		return nil
	}
	for key, value := range filtersFor(name, raw) {
		op, ok := operatorFor(key, name)
		if !ok {
			continue
		}
		converted, err := b.filterValue(value)
		if err != nil {
			b.logger.Warn("invalid filter on numeric bone", logger.Bone(name), logger.Error(err))
			return errors.Join(ErrInvalidFilter, fmt.Errorf("%s: %w", key, err))
		}
		q.Filter(name, op, converted)
	}
	return nil
}

func (b *Numeric) filterValue(v any) (any, error) {
	if b.precision > 0 {
		return cast.ToFloat64E(v)
	}
	return cast.ToInt64E(v)
}

func (b *Numeric) SearchFields(sk *Skeleton, name, prefix string) []SearchField {
	switch v := sk.Values[name].(type) {
	case int64, float64:
		return []SearchField{{Name: prefix + name, Kind: NumberField, Value: v}}
	}
	return nil
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}
