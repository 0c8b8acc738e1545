package statemachine

import "slices"

// Table lists, for each state, the states it may move to. It is the guard
// for state types that cannot carry their own rule, such as plain strings
// loaded from configuration.
//
// A state absent from the table has no outgoing transitions. Self
// transitions are only legal when listed.
type Table[S comparable] map[S][]S

// Allows reports whether the table lists to as a target of from.
func (t Table[S]) Allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

// Guard returns the table as a GuardFunc. The table must not be modified
// while a machine uses it.
func (t Table[S]) Guard() GuardFunc[S] {
	return t.Allows
}

// Builder provides a fluent API for building transition tables.
type Builder[S comparable] struct {
	table   Table[S]
	from    S
	hasFrom bool
	err     error
}

// NewBuilder creates an empty table builder.
func NewBuilder[S comparable]() *Builder[S] {
	return &Builder[S]{table: make(Table[S])}
}

// From sets the source state for the following To calls.
func (b *Builder[S]) From(state S) *Builder[S] {
	b.from = state
	b.hasFrom = true
	if _, ok := b.table[state]; !ok {
		b.table[state] = nil
	}
	return b
}

// To allows moving from the current source state to each of states.
func (b *Builder[S]) To(states ...S) *Builder[S] {
	if !b.hasFrom {
		if b.err == nil {
			b.err = ErrNoSourceState
		}
		return b
	}
	for _, s := range states {
		if !slices.Contains(b.table[b.from], s) {
			b.table[b.from] = append(b.table[b.from], s)
		}
	}
	return b
}

// Allow is shorthand for From(from).To(to...).
func (b *Builder[S]) Allow(from S, to ...S) *Builder[S] {
	return b.From(from).To(to...)
}

// Build returns the constructed table, or the first error recorded while
// building it.
func (b *Builder[S]) Build() (Table[S], error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.table, nil
}
