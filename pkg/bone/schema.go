package bone

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cast"
)

const (
	// DefaultAmount is the result size of BuildQuery without "amount".
	DefaultAmount = 30
	// MaxAmount caps the "amount" a client may request.
	MaxAmount = 100
)

// Schema is an ordered set of named bones describing one kind of entity.
// A Schema is not safe for concurrent modification; build it once at
// startup.
type Schema struct {
	// Kind names the entity type; the datastore uses it as collection name.
	Kind  string
	names []string
	bones map[string]Bone
}

// NewSchema returns an empty schema for kind.
func NewSchema(kind string) *Schema {
	return &Schema{Kind: kind, bones: make(map[string]Bone)}
}

// Add registers b under name. It panics when name is taken.
func (s *Schema) Add(name string, b Bone) *Schema {
	if _, ok := s.bones[name]; ok {
		panic(fmt.Errorf("%w: %s", ErrDuplicateBone, name))
	}
	s.names = append(s.names, name)
	s.bones[name] = b
	return s
}

// Names returns the bone names in registration order.
func (s *Schema) Names() []string {
	return slices.Clone(s.names)
}

// Bone returns the bone registered under name.
func (s *Schema) Bone(name string) (Bone, bool) {
	b, ok := s.bones[name]
	return b, ok
}

// NewSkeleton returns a skeleton holding the default value of every bone
// that has one.
func (s *Schema) NewSkeleton() *Skeleton {
	sk := NewSkeleton()
	for _, name := range s.names {
		if def := s.bones[name].Common().DefaultValue; def != nil {
			sk.Set(name, def)
		}
	}
	return sk
}

// FromClient reads every bone from data. NotSet and Empty errors of bones
// that are not required are dropped; everything else is returned.
func (s *Schema) FromClient(ctx context.Context, sk *Skeleton, data map[string]any) ReadFromClientErrors {
	var errs ReadFromClientErrors
	for _, name := range s.names {
		b := s.bones[name]
		for _, err := range b.FromClient(ctx, sk, name, data) {
			if err.Severity != SeverityInvalid && !b.Common().Required {
				continue
			}
			errs = append(errs, err)
		}
	}
	return errs
}

// Serialize writes every accessed bone value to sk.Entity.
func (s *Schema) Serialize(sk *Skeleton) {
	if sk.Entity == nil {
		sk.Entity = make(Entity)
	}
	for _, name := range s.names {
		s.bones[name].Serialize(sk, name)
	}
}

// Unserialize decodes sk.Entity into sk.Values.
func (s *Schema) Unserialize(sk *Skeleton) {
	for _, name := range s.names {
		s.bones[name].Unserialize(sk, name)
	}
}

// BuildQuery turns client supplied filter parameters into a query. Besides
// the bone filters it understands "orderby" (an indexed bone name),
// "orderdir" ("1" or "desc" for descending) and "amount".
func (s *Schema) BuildQuery(raw map[string]any) (*Query, error) {
	q := NewQuery()
	for _, name := range s.names {
		if err := s.bones[name].BuildDBFilter(name, q, raw); err != nil {
			return nil, err
		}
	}

	if v, ok := raw["orderby"]; ok {
		field := cast.ToString(v)
		b, ok := s.bones[field]
		if !ok || !b.Common().Indexed {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, field)
		}
		dir := cast.ToString(raw["orderdir"])
		q.OrderBy(field, dir == "1" || dir == "desc")
	}

	amount := int64(DefaultAmount)
	if v, ok := raw["amount"]; ok {
		if n, err := cast.ToInt64E(v); err == nil && n > 0 {
			amount = min(n, MaxAmount)
		}
	}
	q.SetLimit(amount)
	return q, nil
}

// SearchTags collects the distinct search tags of all searchable bones.
func (s *Schema) SearchTags(sk *Skeleton) []string {
	var tags []string
	for _, name := range s.names {
		b := s.bones[name]
		if !b.Common().Searchable {
			continue
		}
		for _, tag := range b.SearchTags(sk, name) {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// SearchFields collects the search document fields of all searchable bones.
func (s *Schema) SearchFields(sk *Skeleton) []SearchField {
	var fields []SearchField
	for _, name := range s.names {
		b := s.bones[name]
		if b.Common().Searchable {
			fields = append(fields, b.SearchFields(sk, name, "")...)
		}
	}
	return fields
}

// BlobReferencer is implemented by bones whose values link stored files.
type BlobReferencer interface {
	ReferencedBlobs(sk *Skeleton, name string) []string
}

// ReferencedBlobs collects the file keys referenced by the bone values.
func (s *Schema) ReferencedBlobs(sk *Skeleton) []string {
	var keys []string
	for _, name := range s.names {
		ref, ok := s.bones[name].(BlobReferencer)
		if !ok {
			continue
		}
		for _, key := range ref.ReferencedBlobs(sk, name) {
			if !slices.Contains(keys, key) {
				keys = append(keys, key)
			}
		}
	}
	return keys
}
