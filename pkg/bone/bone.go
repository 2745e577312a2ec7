package bone

import (
	"context"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/validator"
)

// Entity is the stored form of a skeleton: a document keyed by property name.
type Entity map[string]any

// Skeleton carries one record through a request. Entity holds what is read
// from or written to the datastore, Values the decoded bone values.
// A bone value is considered accessed once it is present in Values.
type Skeleton struct {
	Key    string
	Entity Entity
	Values map[string]any
}

// NewSkeleton returns an empty skeleton.
func NewSkeleton() *Skeleton {
	return &Skeleton{Entity: make(Entity), Values: make(map[string]any)}
}

// Get returns the decoded value of a bone.
func (s *Skeleton) Get(name string) (any, bool) {
	v, ok := s.Values[name]
	return v, ok
}

// Set stores the decoded value of a bone.
func (s *Skeleton) Set(name string, value any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[name] = value
}

// Clone returns a copy with shallow-copied maps.
func (s *Skeleton) Clone() *Skeleton {
	return &Skeleton{Key: s.Key, Entity: maps.Clone(s.Entity), Values: maps.Clone(s.Values)}
}

// Bone is a typed field of a Schema. Every method receives the name the bone
// is registered under.
type Bone interface {
	// FromClient validates the submitted data and stores the accepted value
	// in sk.Values. It returns nil when the value was accepted.
	FromClient(ctx context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors
	// Serialize writes the value to sk.Entity and reports whether it did.
	Serialize(sk *Skeleton, name string) bool
	// Unserialize reads the value from sk.Entity and reports whether it did.
	Unserialize(sk *Skeleton, name string) bool
	// BuildDBFilter adds the filters of raw that target this bone to q.
	BuildDBFilter(name string, q *Query, raw map[string]any) error
	SearchTags(sk *Skeleton, name string) []string
	SearchFields(sk *Skeleton, name, prefix string) []SearchField
	// Common exposes the settings shared by every bone.
	Common() *Base
}

// Check inspects an accepted value and returns an error message, or "" when
// the value is valid.
type Check func(value any) string

// Option configures the Base of a bone.
type Option func(*Base)

// WithDescr sets the human readable description.
func WithDescr(descr string) Option {
	return func(b *Base) { b.Descr = descr }
}

// Required makes empty submissions fail Schema.FromClient.
func Required() Option {
	return func(b *Base) { b.Required = true }
}

// Multiple lets the bone hold a list of values.
func Multiple() Option {
	return func(b *Base) { b.Multiple = true }
}

// NotIndexed excludes the bone from query filters and sort orders.
func NotIndexed() Option {
	return func(b *Base) { b.Indexed = false }
}

// Searchable includes the bone in search tags and search documents.
func Searchable() Option {
	return func(b *Base) { b.Searchable = true }
}

// WithDefault sets the value of new skeletons.
func WithDefault(v any) Option {
	return func(b *Base) { b.DefaultValue = v }
}

// WithCheck adds a custom validation run on accepted values.
func WithCheck(check Check) Option {
	return func(b *Base) {
		if check != nil {
			b.checks = append(b.checks, check)
		}
	}
}

// WithLogger sets the logger used for rejected filters and lookup failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Base) {
		if l != nil {
			b.logger = l
		}
	}
}

// Base implements the behaviour shared by all bones: plain value
// (un)serialization and comparison filters.
type Base struct {
	Descr        string
	Required     bool
	Multiple     bool
	Indexed      bool
	Searchable   bool
	DefaultValue any

	checks []Check
	logger *slog.Logger
}

// NewBase returns an untyped bone storing submitted values unchanged.
func NewBase(opts ...Option) *Base {
	b := newBase(opts)
	return &b
}

func newBase(opts []Option) Base {
	b := Base{Indexed: true, logger: logger.Discard()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Base) Common() *Base { return b }

// check runs the custom checks and returns the first message.
func (b *Base) check(value any) string {
	for _, c := range b.checks {
		if msg := c(value); msg != "" {
			return msg
		}
	}
	return ""
}

func (b *Base) FromClient(_ context.Context, sk *Skeleton, name string, data map[string]any) ReadFromClientErrors {
	v, ok := data[name]
	if !ok {
		return ReadFromClientErrors{validator.NotSetError(name)}
	}
	if isBlank(v) {
		return ReadFromClientErrors{validator.EmptyError(name, "")}
	}
	if msg := b.check(v); msg != "" {
		return ReadFromClientErrors{validator.InvalidError(name, msg)}
	}
	sk.Set(name, v)
	return nil
}

func (b *Base) Serialize(sk *Skeleton, name string) bool {
	v, ok := sk.Values[name]
	if !ok {
		return false
	}
	sk.Entity[name] = v
	return true
}

func (b *Base) Unserialize(sk *Skeleton, name string) bool {
	v, ok := sk.Entity[name]
	if !ok {
		return false
	}
	sk.Set(name, v)
	return true
}

func (b *Base) BuildDBFilter(name string, q *Query, raw map[string]any) error {
	if !b.Indexed {
		return nil
	}
	for key, value := range filtersFor(name, raw) {
		op, ok := operatorFor(key, name)
		if !ok {
			continue
		}
		q.Filter(name, op, value)
	}
	return nil
}

func (b *Base) SearchTags(*Skeleton, string) []string { return nil }

func (b *Base) SearchFields(*Skeleton, string, string) []SearchField { return nil }

// isBlank reports whether a submitted value counts as not entered.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}
