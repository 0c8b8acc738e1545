// Package broadcast provides type-safe, in-memory message fan-out.
//
// A MemoryBroadcaster hands every message to each subscriber's buffered
// channel without blocking the sender. Subscribers see messages in the order
// they were broadcast; a subscriber whose buffer is full misses that message
// and keeps receiving later ones.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](10)
//	defer b.Close()
//
//	ctx := context.Background()
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// Subscriptions end when:
//   - the subscriber's context is cancelled
//   - the subscriber is closed
//   - the broadcaster is closed
package broadcast
