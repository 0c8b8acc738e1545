// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers that keep key names consistent across the
// state machine, run loop and notification packages.
//
// Usage:
//
//	log := logger.New(logger.WithDevelopment("gauntlet-demo"))
//	logger.SetAsDefault(log)
//
//	log.Debug("transition applied",
//	    logger.Machine("traffic"),
//	    logger.From(Red),
//	    logger.To(Green),
//	)
//
// Options:
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets.
//   - WithFormat, WithLevel: override a preset when applied after it.
//   - WithOutput, WithAttr.
//
// Error returns an empty attribute for a nil error, so
//
//	log.Warn("post failed", logger.Error(err))
//
// needs no extra nil check.
package logger
