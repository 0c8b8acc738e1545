package runloop

import "log/slog"

// Option is a functional option for configuring a Loop.
type Option func(*loopOptions)

type loopOptions struct {
	logger  *slog.Logger
	onPanic func(recovered any, stack []byte)
}

// WithLogger sets the logger used for panics and lifecycle records.
func WithLogger(l *slog.Logger) Option {
	return func(o *loopOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPanicHandler replaces the default behaviour for a panicking task,
// which is to log it at error level with its stack. The loop keeps running
// either way.
func WithPanicHandler(fn func(recovered any, stack []byte)) Option {
	return func(o *loopOptions) {
		if fn != nil {
			o.onPanic = fn
		}
	}
}
