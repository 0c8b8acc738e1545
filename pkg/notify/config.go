package notify

import (
	"errors"
	"time"

	"github.com/dmitrymomot/gauntlet/pkg/config"
)

// Config controls the diagnostic channel. It is meant to be read once at
// startup and handed to machines through statemachine.WithDiagnostics.
type Config struct {
	// PostTestNotifications enables will/did transition notifications.
	PostTestNotifications bool `env:"GAUNTLET_POST_TEST_NOTIFICATIONS" envDefault:"false"`
	// RedisChannel is the pub/sub channel used by RedisPoster.
	RedisChannel string `env:"GAUNTLET_NOTIFY_REDIS_CHANNEL" envDefault:"gauntlet:notifications"`
	// PublishTimeout bounds each Redis publish. Zero disables the bound.
	PublishTimeout time.Duration `env:"GAUNTLET_NOTIFY_PUBLISH_TIMEOUT" envDefault:"500ms"`
	// BufferSize is the per-observer buffer of the in-process Center.
	BufferSize int `env:"GAUNTLET_NOTIFY_BUFFER_SIZE" envDefault:"64"`
}

// LoadConfig reads Config from the environment (and a .env file, if present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, errors.Join(ErrLoadingConfig, err)
	}
	return cfg, nil
}
