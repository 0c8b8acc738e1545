// Package runloop provides the host execution context state machines defer
// delivery onto: an unbounded, single-consumer FIFO of tasks.
//
// A long-running host drives the loop from one goroutine:
//
//	loop := runloop.New(runloop.WithLogger(log))
//	defer loop.Close()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return loop.Run(ctx) })
//
// Tests drive it by hand, one turn at a time, which makes "delivered on the
// next turn" observable:
//
//	m.RequestTransition(Working) // applied now
//	loop.Turn()                  // subscribers see (Ready, Working)
//
// Schedule never blocks and never runs a task inline, so a task may schedule
// further tasks freely; they run on a later turn. A panicking task is
// recovered and logged, and the loop moves on to the next one.
package runloop
