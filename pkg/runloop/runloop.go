package runloop

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/dmitrymomot/gauntlet/pkg/logger"
)

// Loop is a single-consumer FIFO task queue: the host execution context a
// state machine defers delivery onto.
//
// Schedule never blocks and never runs the task inline. Tasks run one at a
// time, in scheduling order, either on the goroutine calling Run or on the
// goroutine calling Turn or Drain. Only one consumer may be active at a time.
type Loop struct {
	mu        sync.Mutex
	tasks     []func()
	consuming bool
	closed    bool
	wake      chan struct{}
	done      chan struct{}

	logger  *slog.Logger
	onPanic func(recovered any, stack []byte)
}

// New creates an empty loop.
func New(opts ...Option) *Loop {
	o := &loopOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	return &Loop{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		logger:  o.logger,
		onPanic: o.onPanic,
	}
}

// Schedule appends task to the queue. Tasks scheduled after Close are dropped.
func (l *Loop) Schedule(task func()) {
	if task == nil {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug("task dropped on closed loop", logger.Component("runloop"))
		return
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of tasks waiting to run.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Turn runs the tasks that were queued when it was called and returns how
// many ran. Tasks they schedule wait for the next turn. Turn returns 0
// without running anything if another consumer is active, which includes a
// call made from inside a running task.
func (l *Loop) Turn() int {
	if !l.acquire() {
		return 0
	}
	defer l.release()

	return l.turn()
}

// Drain runs turns until the queue is empty or at least limit tasks have run
// (limit <= 0 means no limit). It returns the number of tasks run.
func (l *Loop) Drain(limit int) int {
	if !l.acquire() {
		return 0
	}
	defer l.release()

	total := 0
	for limit <= 0 || total < limit {
		n := l.turn()
		if n == 0 {
			break
		}
		total += n
	}
	return total
}

// Run consumes tasks until ctx is done or the loop is closed. It returns
// ctx.Err() when the context ends, nil after Close, and ErrAlreadyRunning if
// another consumer is active.
func (l *Loop) Run(ctx context.Context) error {
	if !l.acquire() {
		return ErrAlreadyRunning
	}
	defer l.release()

	l.logger.Debug("run loop started", logger.Component("runloop"))
	defer l.logger.Debug("run loop stopped", logger.Component("runloop"))

	for {
		if l.turn() > 0 {
			// Give cancellation a chance between turns of a busy loop.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.done:
				return nil
			default:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wake:
		}
	}
}

// Close drops queued tasks, stops Run and rejects further tasks.
// Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	dropped := len(l.tasks)
	l.tasks = nil
	close(l.done)

	l.logger.Debug("run loop closed", logger.Component("runloop"), logger.Queued(dropped))
}

func (l *Loop) acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.consuming {
		return false
	}
	l.consuming = true
	return true
}

func (l *Loop) release() {
	l.mu.Lock()
	l.consuming = false
	l.mu.Unlock()
}

func (l *Loop) turn() int {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for i, task := range batch {
		if l.isClosed() {
			return i
		}
		l.run(task)
	}
	return len(batch)
}

func (l *Loop) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Loop) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			if l.onPanic != nil {
				l.onPanic(r, stack)
				return
			}
			l.logger.Error("task panicked",
				logger.Component("runloop"),
				slog.Any("panic", r),
				slog.String("stack", string(stack)))
		}
	}()

	task()
}
