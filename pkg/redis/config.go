package redis

import "time"

// Config describes how to reach the Redis server diagnostic notifications
// are published to.
type Config struct {
	ConnectionURL  string        `env:"GAUNTLET_REDIS_URL" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/0
	RetryAttempts  int           `env:"GAUNTLET_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"GAUNTLET_REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"GAUNTLET_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}
