package datastore

import (
	"fmt"
	"maps"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/bones/pkg/bone"
)

const (
	// KeyField holds the entity key.
	KeyField = "_id"
	// SearchTagsField holds the search tags of all searchable bones.
	SearchTagsField = "search_tags"
)

// Document returns the stored form of a serialized skeleton: the entity
// properties plus its key and search tags.
func Document(key string, entity bone.Entity, tags []string) bson.M {
	doc := make(bson.M, len(entity)+2)
	maps.Copy(doc, entity)
	doc[KeyField] = key
	if tags == nil {
		tags = []string{}
	}
	doc[SearchTagsField] = tags
	return doc
}

// EntityFromDocument splits a stored document into its key and the entity
// properties bones unserialize from.
func EntityFromDocument(doc bson.M) (string, bone.Entity) {
	entity := make(bone.Entity, len(doc))
	var key string
	for k, v := range doc {
		switch k {
		case KeyField:
			if s, ok := v.(string); ok {
				key = s
			} else {
				key = fmt.Sprint(v)
			}
		case SearchTagsField:
		default:
			entity[k] = v
		}
	}
	return key, entity
}
