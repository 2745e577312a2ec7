package i18n

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DefaultTranslationsCollection is the collection MongoAdapter reads from.
const DefaultTranslationsCollection = "translations"

// TranslationDocument is one translated key as stored in MongoDB.
type TranslationDocument struct {
	Key          string            `bson:"key" json:"key"`
	Translations map[string]string `bson:"translations" json:"translations"`
	Hint         string            `bson:"hint,omitempty" json:"hint,omitempty"`
}

// MongoAdapter loads translations stored one document per key.
type MongoAdapter struct {
	collection *mongo.Collection
}

// NewMongoAdapter reads from the given collection of db, or from
// DefaultTranslationsCollection when collection is empty.
func NewMongoAdapter(db *mongo.Database, collection string) *MongoAdapter {
	if db == nil {
		return nil
	}
	if collection == "" {
		collection = DefaultTranslationsCollection
	}
	return &MongoAdapter{collection: db.Collection(collection)}
}

func (a *MongoAdapter) Load(ctx context.Context) (Table, error) {
	cursor, err := a.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Join(ErrFailedToQueryTranslations, err)
	}

	var docs []TranslationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrFailedToQueryTranslations, err)
	}
	return TableFromDocuments(docs), nil
}

// TableFromDocuments pivots per-key documents into a per-language table.
// Documents without a key are skipped.
func TableFromDocuments(docs []TranslationDocument) Table {
	table := make(Table)
	for _, doc := range docs {
		if doc.Key == "" {
			continue
		}
		for lang, text := range doc.Translations {
			if table[lang] == nil {
				table[lang] = make(map[string]string)
			}
			table[lang][doc.Key] = text
		}
	}
	return table
}
