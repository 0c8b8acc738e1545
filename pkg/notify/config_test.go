package notify_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gauntlet/pkg/config"
	"github.com/dmitrymomot/gauntlet/pkg/notify"
)

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetenv(t,
			"GAUNTLET_POST_TEST_NOTIFICATIONS",
			"GAUNTLET_NOTIFY_REDIS_CHANNEL",
			"GAUNTLET_NOTIFY_BUFFER_SIZE",
			"GAUNTLET_NOTIFY_PUBLISH_TIMEOUT",
		)
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := notify.LoadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.PostTestNotifications)
		assert.Equal(t, "gauntlet:notifications", cfg.RedisChannel)
		assert.Equal(t, 64, cfg.BufferSize)
		assert.Equal(t, notify.DefaultPublishTimeout, cfg.PublishTimeout)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("GAUNTLET_POST_TEST_NOTIFICATIONS", "true")
		t.Setenv("GAUNTLET_NOTIFY_REDIS_CHANNEL", "ci:transitions")
		t.Setenv("GAUNTLET_NOTIFY_BUFFER_SIZE", "8")
		t.Setenv("GAUNTLET_NOTIFY_PUBLISH_TIMEOUT", "2s")
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := notify.LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.PostTestNotifications)
		assert.Equal(t, "ci:transitions", cfg.RedisChannel)
		assert.Equal(t, 8, cfg.BufferSize)
		assert.Equal(t, 2*time.Second, cfg.PublishTimeout)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("GAUNTLET_POST_TEST_NOTIFICATIONS", "maybe")
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		_, err := notify.LoadConfig()
		assert.ErrorIs(t, err, notify.ErrLoadingConfig)
	})
}
