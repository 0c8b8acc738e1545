package statemachine

// Transitionable is implemented by state types that decide for themselves
// which transitions are legal. The receiver is the state being left.
//
// ShouldTransition must be total and pure: defined for every pair, free of
// side effects, and terminating. It may be called under the machine's lock,
// so it must not call back into the machine.
type Transitionable[S any] interface {
	ShouldTransition(to S) bool
}

// GuardFunc decides whether moving from one state to another is legal.
// It carries the same contract as Transitionable.ShouldTransition.
type GuardFunc[S any] func(from, to S) bool

// Transition is one accepted state change. Values are delivered to every
// live subscriber exactly once and are never modified after creation.
type Transition[S any] struct {
	From S
	To   S
}

// Handler receives accepted transitions in the order they were accepted.
type Handler[S any] func(from, to S)

// Scheduler is the host execution context the machine defers delivery onto.
// Implementations must run tasks one at a time, in the order they were
// scheduled, on a later turn than the call to Schedule.
type Scheduler interface {
	Schedule(task func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(task func())

func (f SchedulerFunc) Schedule(task func()) {
	f(task)
}

// guardOf turns a Transitionable state type into a GuardFunc.
func guardOf[S Transitionable[S]]() GuardFunc[S] {
	return func(from, to S) bool {
		return from.ShouldTransition(to)
	}
}
