// Package redis connects to the Redis server that caches translation
// snapshots.
//
// Connect retries the initial ping according to Config and returns a ready
// go-redis client. Healthcheck wraps a ping for readiness probes.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	adapter := i18n.NewCachedAdapter(mongoAdapter, i18n.NewRedisStore(client), cfg.SnapshotTTL)
package redis
