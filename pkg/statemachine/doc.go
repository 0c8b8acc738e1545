// Package statemachine implements a finite state machine whose legality rule
// lives with the state type, and whose subscribers are notified on a later
// turn of a host scheduler rather than inside the call that changed state.
//
// # Guards
//
// A state type can decide for itself which transitions are legal by
// implementing Transitionable; New builds a machine for such a type. Any
// other type can supply a GuardFunc to NewWithGuard, and Table turns a plain
// adjacency list into one:
//
//	table, err := statemachine.NewBuilder[string]().
//		Allow("ready", "working").
//		Allow("working", "done", "ready").
//		Build()
//
// Rejected requests are silent. The state is unchanged and nobody is told.
//
// # Delivery
//
// An accepted request replaces the current state before RequestTransition
// returns. The transition is queued and delivered to every live subscriber
// by a task handed to the Scheduler, so a handler may request further
// transitions without nesting:
//
//	loop := runloop.New()
//	m := statemachine.MustNew(Ready, loop)
//	m.Subscribe(func(from, to Phase) {
//		if to == Working {
//			m.RequestTransition(Done)
//		}
//	})
//	m.RequestTransition(Working)
//	loop.Drain(0) // handler sees ready->working, then working->done
//
// Transitions are delivered in acceptance order. Each delivery task hands
// out the transitions pending when it started; transitions accepted by its
// handlers go to a follow-up task on the next turn. A subscription only hears
// transitions accepted after it was registered, and a cancelled one hears
// nothing more, even within the pass it was cancelled in.
//
// A queued delivery task keeps the machine alive until it runs, so accepted
// transitions are delivered even if the owner has already let go of the
// machine. Call Close to discard them.
//
// # Diagnostics
//
// WithDiagnostics makes the machine post notify.WillTransition once a
// transition is accepted, before RequestTransition returns, and
// notify.DidTransition after every subscriber has seen it. Posting happens
// outside the machine lock, so a slow poster never blocks CurrentState. The flag is read once by the host, typically from
// notify.LoadConfig.
//
// # Adapters
//
// SetDelegate installs a single replaceable callback, and Publisher fans
// transitions out to channel subscribers on other goroutines.
package statemachine
