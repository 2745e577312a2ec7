package i18n_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bones/pkg/i18n"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, i18n.ErrCacheMiss
	}
	return v, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type countingAdapter struct {
	calls int
	table i18n.Table
}

func (a *countingAdapter) Load(context.Context) (i18n.Table, error) {
	a.calls++
	return a.table, nil
}

func TestCachedAdapter(t *testing.T) {
	t.Parallel()

	t.Run("miss loads and stores", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore()
		next := &countingAdapter{table: i18n.Table{"en": {"a": "b"}}}
		adapter := i18n.NewCachedAdapter(next, store, time.Hour)

		table, err := adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "b", table["en"]["a"])
		assert.Equal(t, 1, next.calls)
		assert.JSONEq(t, `{"en":{"a":"b"}}`, string(store.data[i18n.DefaultSnapshotKey]))
		assert.Equal(t, time.Hour, store.ttls[i18n.DefaultSnapshotKey])

		table, err = adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "b", table["en"]["a"])
		assert.Equal(t, 1, next.calls, "second load must be served from the store")
	})

	t.Run("invalidate forces reload", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore()
		next := &countingAdapter{table: i18n.Table{"en": {"a": "b"}}}
		adapter := i18n.NewCachedAdapter(next, store, 0, i18n.WithSnapshotKey("custom"))

		_, err := adapter.Load(context.Background())
		require.NoError(t, err)
		require.Contains(t, store.data, "custom")
		require.NoError(t, adapter.Invalidate(context.Background()))
		_, err = adapter.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("store failures fall through", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore()
		store.getErr = errors.New("connection refused")
		store.setErr = errors.New("connection refused")
		next := &countingAdapter{table: i18n.Table{"en": {"a": "b"}}}

		table, err := i18n.NewCachedAdapter(next, store, time.Minute).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "b", table["en"]["a"])
	})

	t.Run("corrupt snapshot ignored", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore()
		store.data[i18n.DefaultSnapshotKey] = []byte("{not json")
		next := &countingAdapter{table: i18n.Table{"en": {"a": "b"}}}

		table, err := i18n.NewCachedAdapter(next, store, time.Minute).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "b", table["en"]["a"])
		assert.Equal(t, 1, next.calls)
	})

	t.Run("works with translator reload", func(t *testing.T) {
		t.Parallel()
		store := newMemoryStore()
		next := &countingAdapter{table: i18n.Table{"en": {"hello": "Hello"}}}
		adapter := i18n.NewCachedAdapter(next, store, time.Minute)

		translator, err := i18n.NewTranslator(context.Background(), adapter)
		require.NoError(t, err)
		require.NoError(t, translator.Reload(context.Background()))
		assert.Equal(t, "Hello", translator.T("en", "hello"))
		assert.Equal(t, 1, next.calls)
	})
}
