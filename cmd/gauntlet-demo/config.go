package main

import (
	"github.com/dmitrymomot/gauntlet/pkg/config"
	"github.com/dmitrymomot/gauntlet/pkg/notify"
	"github.com/dmitrymomot/gauntlet/pkg/redis"
)

// Config is the demo's settings. Nested structs carry their own env tags.
type Config struct {
	Env          string   `env:"GAUNTLET_ENV" envDefault:"development"`
	LogLevel     string   `env:"GAUNTLET_LOG_LEVEL"`
	LogFormat    string   `env:"GAUNTLET_LOG_FORMAT"`
	WorkflowPath string   `env:"GAUNTLET_DEMO_WORKFLOW"`
	Requests     []string `env:"GAUNTLET_DEMO_REQUESTS" envDefault:"done,working" envSeparator:","`
	PublishRedis bool     `env:"GAUNTLET_DEMO_PUBLISH_REDIS" envDefault:"false"`

	Notify notify.Config
	Redis  redis.Config
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
