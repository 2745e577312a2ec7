package redis

import "time"

// Config describes the Redis connection used for translation snapshots.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL has the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	SnapshotTTL    time.Duration `env:"REDIS_TRANSLATIONS_TTL" envDefault:"10m"` // SnapshotTTL is how long a cached translation table stays valid.
}
