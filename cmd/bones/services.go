package main

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/bones/pkg/config"
	"github.com/dmitrymomot/bones/pkg/datastore"
	"github.com/dmitrymomot/bones/pkg/i18n"
	"github.com/dmitrymomot/bones/pkg/logger"
	"github.com/dmitrymomot/bones/pkg/redis"
	"github.com/dmitrymomot/bones/pkg/searchindex"
)

// database connects to MongoDB. The returned func disconnects the client.
func (a *app) database(ctx context.Context) (*mongo.Database, func(), error) {
	var cfg datastore.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}
	db, err := datastore.ConnectDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
			a.log.WarnContext(ctx, "mongodb disconnect failed", logger.Error(err))
		}
	}, nil
}

// indexer connects to OpenSearch and makes sure the index of kind exists.
func (a *app) indexer(ctx context.Context, kind string) (*searchindex.Indexer, error) {
	var cfg searchindex.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := searchindex.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ix := searchindex.NewIndexer(client, cfg.Index+"-"+kind, searchindex.WithLogger(a.log))
	if err := ix.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return ix, nil
}

// cachedTranslations reads translations from MongoDB behind the Redis
// snapshot cache. The returned func closes both connections.
func (a *app) cachedTranslations(ctx context.Context) (*i18n.CachedAdapter, func(), error) {
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, err
	}

	db, closeDB, err := a.database(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	adapter := i18n.NewCachedAdapter(
		i18n.NewMongoAdapter(db, ""),
		i18n.NewRedisStore(client),
		redisCfg.SnapshotTTL,
		i18n.WithSnapshotLogger(a.log),
	)
	return adapter, func() {
		if err := client.Close(); err != nil {
			a.log.WarnContext(ctx, "redis close failed", logger.Error(err))
		}
		closeDB()
	}, nil
}
