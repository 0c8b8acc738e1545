package statemachine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gauntlet/pkg/notify"
)

// Option configures a state machine during construction.
type Option func(*options) error

type options struct {
	name        string
	logger      *slog.Logger
	diagnostics bool
	poster      notify.Poster
}

// WithName sets the name reported in log records and diagnostic
// notifications. Defaults to a random UUID.
func WithName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return ErrEmptyName
		}
		o.name = name
		return nil
	}
}

// WithLogger sets the logger used for transition records.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

// WithDiagnostics enables the will/did transition notifications when enabled
// is true. The flag is meant to be read once at startup by the host (see
// notify.LoadConfig) and injected here; the machine never reads the environment.
func WithDiagnostics(enabled bool, poster notify.Poster) Option {
	return func(o *options) error {
		if !enabled {
			o.diagnostics = false
			o.poster = nil
			return nil
		}
		if poster == nil {
			return ErrNilPoster
		}
		o.diagnostics = true
		o.poster = poster
		return nil
	}
}

// New creates a machine for a state type that carries its own guard.
// The initial state is set directly: the guard is not consulted and no
// transition is published.
func New[S Transitionable[S]](initial S, sched Scheduler, opts ...Option) (*Machine[S], error) {
	return NewWithGuard(initial, guardOf[S](), sched, opts...)
}

// NewWithGuard creates a machine whose legality rule is supplied separately
// from the state type.
func NewWithGuard[S any](initial S, guard GuardFunc[S], sched Scheduler, opts ...Option) (*Machine[S], error) {
	if guard == nil {
		return nil, ErrNilGuard
	}
	if sched == nil {
		return nil, ErrNilScheduler
	}

	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.name == "" {
		o.name = uuid.NewString()
	}

	return newMachine(initial, guard, sched, o), nil
}

// MustNew is like New but panics on error, following the fail-fast pattern
// for misconfiguration at startup.
func MustNew[S Transitionable[S]](initial S, sched Scheduler, opts ...Option) *Machine[S] {
	m, err := New(initial, sched, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// MustNewWithGuard is like NewWithGuard but panics on error.
func MustNewWithGuard[S any](initial S, guard GuardFunc[S], sched Scheduler, opts ...Option) *Machine[S] {
	m, err := NewWithGuard(initial, guard, sched, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}
