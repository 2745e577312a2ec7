package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/bones/pkg/logger"
)

// DefaultSnapshotKey is the cache key CachedAdapter stores tables under.
const DefaultSnapshotKey = "i18n:translations"

// SnapshotStore keeps serialized translation tables.
// Get returns ErrCacheMiss when nothing is stored under key.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedAdapter serves the table from a SnapshotStore and falls back to the
// wrapped adapter on a miss, caching what it loaded. Store failures are
// logged and never fail Load.
type CachedAdapter struct {
	next   TranslationAdapter
	store  SnapshotStore
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// CachedAdapterOption configures a CachedAdapter.
type CachedAdapterOption func(*CachedAdapter)

// WithSnapshotKey overrides DefaultSnapshotKey.
func WithSnapshotKey(key string) CachedAdapterOption {
	return func(a *CachedAdapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithSnapshotLogger sets the logger used for store failures.
func WithSnapshotLogger(l *slog.Logger) CachedAdapterOption {
	return func(a *CachedAdapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewCachedAdapter wraps next. A ttl of zero caches without expiry.
func NewCachedAdapter(next TranslationAdapter, store SnapshotStore, ttl time.Duration, opts ...CachedAdapterOption) *CachedAdapter {
	a := &CachedAdapter{
		next:   next,
		store:  store,
		key:    DefaultSnapshotKey,
		ttl:    ttl,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *CachedAdapter) Load(ctx context.Context) (Table, error) {
	data, err := a.store.Get(ctx, a.key)
	switch {
	case err == nil:
		var table Table
		if err := json.Unmarshal(data, &table); err == nil {
			return table, nil
		}
		a.logger.WarnContext(ctx, "discarding corrupt translation snapshot", logger.Key(a.key))
	case !errors.Is(err, ErrCacheMiss):
		a.logger.WarnContext(ctx, "translation snapshot unavailable", logger.Key(a.key), logger.Error(err))
	}

	table, err := a.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(table); err == nil {
		if err := a.store.Set(ctx, a.key, data, a.ttl); err != nil {
			a.logger.WarnContext(ctx, "failed to cache translation snapshot", logger.Key(a.key),
				logger.Error(errors.Join(ErrFailedToCacheSnapshot, err)))
		}
	}
	return table, nil
}

// Invalidate removes the snapshot so the next Load reaches the wrapped adapter.
func (a *CachedAdapter) Invalidate(ctx context.Context) error {
	return a.store.Delete(ctx, a.key)
}

// RedisStore is a SnapshotStore backed by Redis.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
