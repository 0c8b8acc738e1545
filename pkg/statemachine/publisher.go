package statemachine

import (
	"context"

	"github.com/dmitrymomot/gauntlet/pkg/broadcast"
	"github.com/dmitrymomot/gauntlet/pkg/logger"
)

// Publisher forwards the transitions of a machine to channel subscribers,
// for consumers that live on other goroutines than the machine's scheduler.
//
// Transitions reach the publisher in acceptance order, on the scheduler.
// A channel subscriber that falls more than the buffer size behind misses
// transitions; it is never blocked on and never blocks the machine.
type Publisher[S any] struct {
	m   *Machine[S]
	sub *Subscription
	b   *broadcast.MemoryBroadcaster[Transition[S]]
}

// NewPublisher subscribes to m and returns a publisher fed by it.
func NewPublisher[S any](m *Machine[S], bufferSize int) (*Publisher[S], error) {
	if m == nil {
		return nil, ErrNilMachine
	}

	p := &Publisher[S]{
		m: m,
		b: broadcast.NewMemoryBroadcaster[Transition[S]](bufferSize),
	}
	p.sub = m.Subscribe(p.forward)
	return p, nil
}

// Subscribe returns a channel subscriber that receives every transition
// delivered after this call, until ctx is cancelled or it is closed.
func (p *Publisher[S]) Subscribe(ctx context.Context) broadcast.Subscriber[Transition[S]] {
	return p.b.Subscribe(ctx)
}

// Close detaches the publisher from the machine and closes every channel
// subscriber.
func (p *Publisher[S]) Close() error {
	p.sub.Cancel()
	return p.b.Close()
}

func (p *Publisher[S]) forward(from, to S) {
	msg := broadcast.Message[Transition[S]]{Data: Transition[S]{From: from, To: to}}
	if err := p.b.Broadcast(context.Background(), msg); err != nil {
		p.m.logger.Warn("failed to publish transition",
			logger.Machine(p.m.name), logger.From(from), logger.To(to), logger.Error(err))
	}
}
