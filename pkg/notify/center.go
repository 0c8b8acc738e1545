package notify

import (
	"context"
	"errors"

	"github.com/dmitrymomot/gauntlet/pkg/broadcast"
)

// DefaultBufferSize is the per-observer buffer used when NewCenter gets a
// non-positive size.
const DefaultBufferSize = 64

// Center is an in-process hub for named diagnostic signals. Posting never
// blocks; every observer receives notifications in posting order on its own
// goroutine.
type Center struct {
	b *broadcast.MemoryBroadcaster[Notification]
}

// NewCenter creates a notification center. bufferSize bounds how many
// notifications each observer may lag behind before it starts missing them.
func NewCenter(bufferSize int) *Center {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Center{b: broadcast.NewMemoryBroadcaster[Notification](bufferSize)}
}

// Post implements Poster.
func (c *Center) Post(ctx context.Context, n Notification) error {
	if err := c.b.Broadcast(ctx, broadcast.Message[Notification]{Data: n}); err != nil {
		if errors.Is(err, broadcast.ErrBroadcasterClosed) {
			return ErrCenterClosed
		}
		return err
	}
	return nil
}

// Observe calls fn for every notification with the given name until ctx is
// cancelled, the returned stop function is called, or the center is closed.
// An empty name observes every notification.
func (c *Center) Observe(ctx context.Context, name Name, fn func(Notification)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	sub := c.b.Subscribe(ctx)

	go func() {
		for msg := range sub.Receive(ctx) {
			if name == "" || msg.Data.Name == name {
				fn(msg.Data)
			}
		}
	}()

	return cancel
}

// Expect registers interest in the first notification with the given name
// that satisfies match (nil matches anything). Registration happens before
// Expect returns, so the transition under test can be triggered afterwards.
func (c *Center) Expect(name Name, match func(Notification) bool) *Expectation {
	ctx, cancel := context.WithCancel(context.Background())
	return &Expectation{
		name:   name,
		match:  match,
		sub:    c.b.Subscribe(ctx),
		cancel: cancel,
	}
}

// Close stops the center and every observer. It is idempotent.
func (c *Center) Close() error {
	return c.b.Close()
}

// Expectation waits for one matching notification.
type Expectation struct {
	name   Name
	match  func(Notification) bool
	sub    broadcast.Subscriber[Notification]
	cancel context.CancelFunc
}

// Wait blocks until a matching notification arrives, ctx is done, or the
// center is closed. The expectation is released when Wait returns.
func (e *Expectation) Wait(ctx context.Context) (Notification, error) {
	defer e.cancel()

	ch := e.sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			return Notification{}, ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return Notification{}, ErrCenterClosed
			}
			if msg.Data.Name != e.name {
				continue
			}
			if e.match == nil || e.match(msg.Data) {
				return msg.Data, nil
			}
		}
	}
}
