package statemachine

import "errors"

var (
	ErrNilScheduler  = errors.New("statemachine: scheduler cannot be nil")
	ErrNilGuard      = errors.New("statemachine: guard cannot be nil")
	ErrNilPoster     = errors.New("statemachine: diagnostics enabled without a poster")
	ErrEmptyName     = errors.New("statemachine: machine name cannot be empty")
	ErrNilMachine    = errors.New("statemachine: machine cannot be nil")
	ErrNoSourceState = errors.New("statemachine: target state added before a source state")
)
