// Command gauntlet-demo runs a string-state machine loaded from a YAML
// workflow and logs every transition it delivers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gauntlet/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		slog.Error("invalid log configuration", logger.Error(err))
		os.Exit(1)
	}
	logger.SetAsDefault(log)

	wf, err := LoadWorkflow(cfg.WorkflowPath)
	if err != nil {
		log.Error("failed to load workflow", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, wf, log); err != nil {
		log.Error("demo failed", logger.Error(err))
		os.Exit(1)
	}
}

// newLogger applies the environment preset, then any explicit level or
// format, and tags every record with a per-process run id.
func newLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "gauntlet-demo"),
		logger.WithAttr(slog.String("run_id", uuid.NewString())),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(lvl))
	}
	if cfg.LogFormat != "" {
		f := logger.Format(cfg.LogFormat)
		if f != logger.FormatJSON && f != logger.FormatText {
			return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
		}
		opts = append(opts, logger.WithFormat(f))
	}
	return logger.New(opts...), nil
}
