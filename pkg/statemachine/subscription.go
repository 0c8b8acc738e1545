package statemachine

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Machine.Subscribe.
type Subscription struct {
	id        string
	cancelled atomic.Bool
	detach    func()
}

func newSubscription() *Subscription {
	return &Subscription{id: uuid.NewString()}
}

// ID returns a unique identifier for the subscription, used in log records.
func (s *Subscription) ID() string {
	return s.id
}

// Active reports whether the subscription still receives transitions.
func (s *Subscription) Active() bool {
	return !s.cancelled.Load()
}

// Cancel stops delivery to the subscriber. Once Cancel returns, no further
// transition reaches the handler; a call already in progress completes.
// Cancel may be called from inside any handler, including the subscriber's
// own, and is idempotent.
func (s *Subscription) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}
	if s.detach != nil {
		s.detach()
	}
}
