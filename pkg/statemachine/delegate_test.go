package statemachine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachine_SetDelegate(t *testing.T) {
	t.Parallel()

	t.Run("delegate receives transitions", func(t *testing.T) {
		t.Parallel()
		loop := newLoop()
		m := newPhaseMachine(loop)

		var j journal
		assert.False(t, m.HasDelegate())
		m.SetDelegate(j.handler("delegate"))
		assert.True(t, m.HasDelegate())

		m.RequestTransition(working)
		loop.Drain(0)
		assert.Equal(t, []string{"delegate ready->working"}, j.all())
	})

	t.Run("replacing silences the previous delegate", func(t *testing.T) {
		t.Parallel()
		loop := newLoop()
		m := newPhaseMachine(loop)

		var j journal
		m.SetDelegate(j.handler("first"))
		m.Subscribe(j.handler("sub"))
		m.SetDelegate(j.handler("second"))

		m.RequestTransition(working)
		loop.Drain(0)
		assert.Equal(t, []string{"sub ready->working", "second ready->working"}, j.all())
	})

	t.Run("nil removes the delegate", func(t *testing.T) {
		t.Parallel()
		loop := newLoop()
		m := newPhaseMachine(loop)

		var j journal
		m.SetDelegate(j.handler("delegate"))
		m.SetDelegate(nil)
		assert.False(t, m.HasDelegate())

		m.RequestTransition(working)
		loop.Drain(0)
		assert.Empty(t, j.all())
	})

	t.Run("delegate replaced from inside itself", func(t *testing.T) {
		t.Parallel()
		loop := newLoop()
		m := newPhaseMachine(loop)

		var j journal
		m.SetDelegate(func(from, to phase) {
			j.add("first %s->%s", from, to)
			m.SetDelegate(j.handler("second"))
			m.RequestTransition(done)
		})

		m.RequestTransition(working)
		loop.Drain(0)
		assert.Equal(t, []string{"first ready->working", "second working->done"}, j.all())
	})

	t.Run("closed machine has no delegate", func(t *testing.T) {
		t.Parallel()
		m := newPhaseMachine(newLoop())
		m.SetDelegate(func(_, _ phase) {})
		m.Close()

		assert.False(t, m.HasDelegate())
		m.SetDelegate(func(_, _ phase) {})
		assert.False(t, m.HasDelegate())
	})
}
