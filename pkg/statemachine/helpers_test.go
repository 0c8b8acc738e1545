package statemachine_test

import (
	"fmt"
	"sync"

	"github.com/dmitrymomot/gauntlet/pkg/logger"
	"github.com/dmitrymomot/gauntlet/pkg/runloop"
	"github.com/dmitrymomot/gauntlet/pkg/statemachine"
)

type phase string

const (
	ready   phase = "ready"
	working phase = "working"
	done    phase = "done"
)

// ShouldTransition allows ready->working->done->ready and nothing else.
func (p phase) ShouldTransition(to phase) bool {
	switch p {
	case ready:
		return to == working
	case working:
		return to == done
	case done:
		return to == ready
	}
	return false
}

func anyTransition[S any](_, _ S) bool { return true }

func newLoop() *runloop.Loop {
	return runloop.New(runloop.WithLogger(logger.Discard()))
}

func newPhaseMachine(loop *runloop.Loop, opts ...statemachine.Option) *statemachine.Machine[phase] {
	opts = append([]statemachine.Option{statemachine.WithLogger(logger.Discard())}, opts...)
	return statemachine.MustNew(ready, loop, opts...)
}

// journal records events from several subscribers in one sequence.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) handler(name string) statemachine.Handler[phase] {
	return func(from, to phase) {
		j.add("%s %s->%s", name, from, to)
	}
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *journal) len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
