package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)

	defaultEnvLoaded sync.Once
)

// Load parses environment variables into v using `env` struct tags.
//
// The default .env file in the working directory is loaded on first use if it
// exists. Each configuration type is parsed once; later calls for the same
// type receive the cached copy until Reload or ResetCache is called.
//
// Example:
//
//	type DiagnosticsConfig struct {
//		Enabled bool   `env:"GAUNTLET_POST_TEST_NOTIFICATIONS" envDefault:"false"`
//		Channel string `env:"GAUNTLET_NOTIFY_REDIS_CHANNEL" envDefault:"gauntlet:notifications"`
//	}
//
//	var cfg DiagnosticsConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		// The default .env file is optional.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	return parse(key, v)
}

// Reload parses the environment into v even if T is already cached, and
// replaces the cached copy.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(typeKey[T](), v)
}

// MustLoad works like Load but panics if parsing fails. Use it for
// configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv loads variables from the given .env files into the process
// environment. Later files override earlier ones and override variables
// already set. With no arguments the default .env file is loaded without
// overriding the environment.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Overload(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on error.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("failed to load env files: %v", err))
	}
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cache)
}

func parse[T any](key reflect.Type, v *T) error {
	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	cache[key] = parsed
	cacheMu.Unlock()

	*v = parsed
	return nil
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
