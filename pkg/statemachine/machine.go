package statemachine

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/gauntlet/pkg/logger"
	"github.com/dmitrymomot/gauntlet/pkg/notify"
)

// Machine tracks a single current state, admits or rejects transition
// requests through its guard, and publishes accepted transitions to
// subscribers on its scheduler.
//
// Accepted transitions are applied synchronously: CurrentState reflects them
// as soon as RequestTransition returns. Delivery to subscribers is always
// deferred to a later scheduler turn, so handlers may request further
// transitions without growing the stack. A handler may therefore observe a
// CurrentState that is already ahead of the transition it was handed.
//
// All methods are safe for concurrent use, but ordering is only meaningful
// when requests are confined to the goroutine that drives the scheduler.
type Machine[S any] struct {
	name   string
	guard  GuardFunc[S]
	sched  Scheduler
	logger *slog.Logger
	poster notify.Poster // nil when diagnostics are disabled

	mu        sync.Mutex
	state     S
	seq       uint64 // sequence number of the last accepted transition
	pending   []queued[S]
	scheduled bool // a delivery task is queued or running
	subs      []entry[S]
	delegate  *Subscription
	closed    bool
}

// queued is an accepted transition waiting for delivery.
type queued[S any] struct {
	Transition[S]
	seq uint64
}

type entry[S any] struct {
	sub   *Subscription
	fn    Handler[S]
	since uint64 // transitions with a higher seq reach this subscriber
}

func newMachine[S any](initial S, guard GuardFunc[S], sched Scheduler, o *options) *Machine[S] {
	m := &Machine[S]{
		name:   o.name,
		guard:  guard,
		sched:  sched,
		logger: o.logger,
		state:  initial,
	}
	if o.diagnostics {
		m.poster = o.poster
	}
	return m
}

// Name returns the machine name used in logs and diagnostic notifications.
func (m *Machine[S]) Name() string {
	return m.name
}

// CurrentState returns the most recently accepted state.
func (m *Machine[S]) CurrentState() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Pending returns the number of accepted transitions waiting for a delivery task.
func (m *Machine[S]) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// RequestTransition asks the machine to move to the given state.
//
// If the guard rejects the pair (current, to) nothing happens: the state is
// unchanged, nothing is queued and nobody is notified. Rejection is routine
// control flow, not an error; the returned bool only reports whether the
// request was accepted and may be ignored.
//
// If the guard accepts, the state is replaced before RequestTransition returns
// and the transition is queued for delivery on the scheduler. Requests made
// after Close are ignored.
//
// A panicking guard propagates to the caller.
func (m *Machine[S]) RequestTransition(to S) bool {
	from, accepted, schedule := m.apply(to)
	if !accepted {
		return false
	}

	m.post(notify.WillTransition, from, to)
	if schedule {
		m.schedule()
	}
	return true
}

func (m *Machine[S]) apply(to S) (from S, accepted, schedule bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return from, false, false
	}

	from = m.state
	if !m.guard(from, to) {
		m.logger.Debug("transition rejected",
			logger.Machine(m.name), logger.From(from), logger.To(to))
		return from, false, false
	}

	m.state = to
	m.seq++
	m.pending = append(m.pending, queued[S]{
		Transition: Transition[S]{From: from, To: to},
		seq:        m.seq,
	})
	m.logger.Debug("transition applied",
		logger.Machine(m.name), logger.From(from), logger.To(to))

	// Deliveries coalesce into one task per burst.
	if m.scheduled {
		return from, true, false
	}
	m.scheduled = true
	return from, true, true
}

// Subscribe registers fn to receive every transition accepted after this
// call, in acceptance order. Subscribers are notified in registration order.
// Transitions already accepted but not yet delivered are not replayed to it,
// so a subscriber registered during delivery starts with the next
// transition.
//
// Subscribing to a closed machine, or with a nil handler, returns an already
// cancelled subscription.
func (m *Machine[S]) Subscribe(fn Handler[S]) *Subscription {
	sub := newSubscription()
	if fn == nil {
		sub.cancelled.Store(true)
		return sub
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		sub.cancelled.Store(true)
		return sub
	}

	sub.detach = func() { m.remove(sub) }
	m.subs = append(m.subs, entry[S]{sub: sub, fn: fn, since: m.seq})
	m.logger.Debug("subscriber registered",
		logger.Machine(m.name), logger.SubscriptionID(sub.id))

	return sub
}

// Close discards pending transitions and cancels every subscription. A
// delivery task already handed to the scheduler becomes a no-op, and a
// delivery interrupted by Close posts no further notifications. Close is
// idempotent and is the only way to release a machine with queued work.
func (m *Machine[S]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	dropped := len(m.pending)
	m.pending = nil
	subs := m.subs
	m.subs = nil
	m.delegate = nil
	m.mu.Unlock()

	for _, e := range subs {
		e.sub.cancelled.Store(true)
	}

	m.logger.Debug("state machine closed",
		logger.Machine(m.name), slog.Int("dropped", dropped))
}

func (m *Machine[S]) remove(sub *Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs = slices.DeleteFunc(m.subs, func(e entry[S]) bool {
		return e.sub == sub
	})
	if m.delegate == sub {
		m.delegate = nil
	}
}

// schedule hands one delivery task to the scheduler. The task keeps the
// machine alive until it runs; Close turns it into a no-op.
func (m *Machine[S]) schedule() {
	m.sched.Schedule(m.deliver)
}

// deliver runs one delivery task. It takes the transitions queued so far and
// hands each to every live subscriber before moving on to the next one.
// Transitions accepted while it runs are left for a follow-up task on the
// next scheduler turn.
func (m *Machine[S]) deliver() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	batch := m.pending
	m.pending = nil
	// Subscribers registered from here on have a since at or above every
	// seq in the batch, so the snapshot covers everyone it must.
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	started := 0
	defer func() {
		// Runs on panic too, so a failing handler cannot wedge delivery.
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		if rest := batch[started:]; len(rest) > 0 {
			m.pending = append(slices.Clone(rest), m.pending...)
		}
		next := len(m.pending) > 0
		m.scheduled = next
		m.mu.Unlock()

		if next {
			m.schedule()
		}
	}()

	for _, q := range batch {
		started++
		if m.isClosed() {
			return
		}

		for _, e := range subs {
			if q.seq > e.since && e.sub.Active() {
				e.fn(q.From, q.To)
			}
		}

		// A handler may have closed the machine mid-pass.
		if m.isClosed() {
			return
		}
		m.post(notify.DidTransition, q.From, q.To)
	}
}

func (m *Machine[S]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Machine[S]) post(name notify.Name, from, to S) {
	if m.poster == nil {
		return
	}

	n := notify.Notification{
		Name:   name,
		Object: m.name,
		From:   from,
		To:     to,
		At:     time.Now(),
	}
	if err := m.poster.Post(context.Background(), n); err != nil {
		m.logger.Warn("failed to post transition notification",
			logger.Machine(m.name), logger.Signal(string(name)), logger.Error(err))
	}
}
