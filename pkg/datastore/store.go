package datastore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/bones/pkg/bone"
	"github.com/dmitrymomot/bones/pkg/logger"
)

// SearchIndexer mirrors stored entities into a full-text index.
type SearchIndexer interface {
	Index(ctx context.Context, id string, fields []bone.SearchField, tags []string) error
	Delete(ctx context.Context, id string) error
}

// StoreOption configures an EntityStore.
type StoreOption func(*EntityStore)

// WithIndexer keeps the search index in sync with Put and Delete.
func WithIndexer(indexer SearchIndexer) StoreOption {
	return func(s *EntityStore) { s.indexer = indexer }
}

// WithStoreLogger sets the logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *EntityStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// EntityStore persists skeletons of one schema in the collection named after
// the schema kind.
type EntityStore struct {
	schema     *bone.Schema
	collection *mongo.Collection
	indexer    SearchIndexer
	logger     *slog.Logger
}

func NewEntityStore(db *mongo.Database, schema *bone.Schema, opts ...StoreOption) *EntityStore {
	s := &EntityStore{
		schema:     schema,
		collection: db.Collection(schema.Kind),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema returns the schema the store was created for.
func (s *EntityStore) Schema() *bone.Schema { return s.schema }

// Put serializes sk and writes it, replacing any stored version. A skeleton
// without a key receives a new random one.
func (s *EntityStore) Put(ctx context.Context, sk *bone.Skeleton) error {
	if sk.Key == "" {
		sk.Key = uuid.NewString()
	}
	s.schema.Serialize(sk)
	tags := s.schema.SearchTags(sk)

	_, err := s.collection.ReplaceOne(ctx,
		bson.D{{Key: KeyField, Value: sk.Key}},
		Document(sk.Key, sk.Entity, tags),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrFailedToStore, err)
	}

	if s.indexer != nil {
		if err := s.indexer.Index(ctx, sk.Key, s.schema.SearchFields(sk), tags); err != nil {
			s.logger.WarnContext(ctx, "search index update failed",
				logger.Collection(s.schema.Kind), logger.Key(sk.Key), logger.Error(err))
			return errors.Join(ErrFailedToIndex, err)
		}
	}
	return nil
}

// Get loads and unserializes the entity stored under key.
func (s *EntityStore) Get(ctx context.Context, key string) (*bone.Skeleton, error) {
	var doc bson.M
	err := s.collection.FindOne(ctx, bson.D{{Key: KeyField, Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return s.skeleton(doc), nil
}

// Delete removes the entity stored under key.
func (s *EntityStore) Delete(ctx context.Context, key string) error {
	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: KeyField, Value: key}})
	if err != nil {
		return errors.Join(ErrFailedToDelete, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	if s.indexer != nil {
		if err := s.indexer.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "search index delete failed",
				logger.Collection(s.schema.Kind), logger.Key(key), logger.Error(err))
			return errors.Join(ErrFailedToIndex, err)
		}
	}
	return nil
}

// Run executes q and returns the matching entities in query order.
func (s *EntityStore) Run(ctx context.Context, q *bone.Query) ([]*bone.Skeleton, error) {
	opts := options.Find()
	if sort := q.Sort(); sort != nil {
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.collection.Find(ctx, q.BSON(), opts)
	if err != nil {
		return nil, errors.Join(ErrFailedToQuery, err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Join(ErrFailedToQuery, err)
	}

	result := make([]*bone.Skeleton, 0, len(docs))
	for _, doc := range docs {
		result = append(result, s.skeleton(doc))
	}
	return result, nil
}

// Query builds a query from client filter parameters and runs it.
func (s *EntityStore) Query(ctx context.Context, raw map[string]any) ([]*bone.Skeleton, error) {
	q, err := s.schema.BuildQuery(raw)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, q)
}

func (s *EntityStore) skeleton(doc bson.M) *bone.Skeleton {
	sk := bone.NewSkeleton()
	sk.Key, sk.Entity = EntityFromDocument(doc)
	s.schema.Unserialize(sk)
	return sk
}
