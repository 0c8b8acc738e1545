// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the environment.
//   - Load parses the environment into any struct annotated with `env` tags
//     and caches the result per type, so repeated calls are cheap and
//     consistent for the lifetime of the process.
//   - Reload and ResetCache bypass or clear the cache, mostly for tests.
//   - MustLoad and MustLoadEnv panic on failure for configuration the
//     process cannot start without.
//
// Usage:
//
//	type Config struct {
//	    PostTestNotifications bool `env:"GAUNTLET_POST_TEST_NOTIFICATIONS" envDefault:"false"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Configuration that drives state machine diagnostics is read once here at
// startup and injected into machines; machines never read the environment.
package config
