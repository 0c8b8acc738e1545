package broadcast

import (
	"context"
	"slices"
	"sync"
)

// MemoryBroadcaster fans messages out to in-process subscribers over buffered
// channels. Subscribers are served in registration order; a subscriber whose
// buffer is full misses the message but stays subscribed.
// All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers []*subscriber[T]
	bufferSize  int
	closed      bool
	mu          sync.Mutex
}

// NewMemoryBroadcaster creates a new in-memory broadcaster.
// bufferSize is the channel buffer of each subscriber; values below 1 are raised to 1.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe creates a new subscriber. The subscription is removed when ctx
// is cancelled or the subscriber is closed. Subscribing to a closed
// broadcaster returns a closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := newSubscriber[T](b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		_ = sub.Close()
		return sub
	}
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	sub.mu.Lock()
	// The broadcaster may have closed it in between.
	if !sub.closed {
		sub.onClose = func() { b.unsubscribe(sub) }
		sub.stop = context.AfterFunc(ctx, func() { _ = sub.Close() })
	}
	sub.mu.Unlock()

	return sub
}

// Broadcast sends msg to every active subscriber. It never blocks and
// returns ErrBroadcasterClosed once Close has been called.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBroadcasterClosed
	}
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.send(msg)
	}

	return nil
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers.
// It is safe to call Close multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.subscribers
	b.subscribers = nil
	b.mu.Unlock()

	for _, sub := range subs {
		_ = sub.Close()
	}

	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = slices.DeleteFunc(b.subscribers, func(s *subscriber[T]) bool {
		return s == sub
	})
}
