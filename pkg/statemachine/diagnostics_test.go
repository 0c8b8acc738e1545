package statemachine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gauntlet/pkg/notify"
	"github.com/dmitrymomot/gauntlet/pkg/statemachine"
)

func TestMachine_Diagnostics(t *testing.T) {
	t.Parallel()

	t.Run("will before request returns, did after every subscriber", func(t *testing.T) {
		t.Parallel()

		var j journal
		poster := notify.PosterFunc(func(_ context.Context, n notify.Notification) error {
			j.add("%s %v->%v", n.Name, n.From, n.To)
			return nil
		})

		loop := newLoop()
		m := newPhaseMachine(loop, statemachine.WithDiagnostics(true, poster))
		m.Subscribe(j.handler("a"))
		m.Subscribe(j.handler("b"))

		m.RequestTransition(working)
		assert.Equal(t, []string{fmt.Sprintf("%s ready->working", notify.WillTransition)}, j.all())

		loop.Drain(0)
		assert.Equal(t, []string{
			fmt.Sprintf("%s ready->working", notify.WillTransition),
			"a ready->working",
			"b ready->working",
			fmt.Sprintf("%s ready->working", notify.DidTransition),
		}, j.all())
	})

	t.Run("rejected requests post nothing", func(t *testing.T) {
		t.Parallel()

		var j journal
		poster := notify.PosterFunc(func(_ context.Context, n notify.Notification) error {
			j.add("%s", n.Name)
			return nil
		})

		loop := newLoop()
		m := newPhaseMachine(loop, statemachine.WithDiagnostics(true, poster))
		m.RequestTransition(done)
		loop.Drain(0)
		assert.Empty(t, j.all())
	})

	t.Run("disabled posts nothing", func(t *testing.T) {
		t.Parallel()

		var j journal
		poster := notify.PosterFunc(func(_ context.Context, n notify.Notification) error {
			j.add("%s", n.Name)
			return nil
		})

		loop := newLoop()
		m := newPhaseMachine(loop, statemachine.WithDiagnostics(false, poster))
		m.RequestTransition(working)
		loop.Drain(0)
		assert.Empty(t, j.all())
	})

	t.Run("enabled without poster is an error", func(t *testing.T) {
		t.Parallel()

		_, err := statemachine.New(ready, newLoop(), statemachine.WithDiagnostics(true, nil))
		assert.ErrorIs(t, err, statemachine.ErrNilPoster)
	})

	t.Run("post failure does not affect the machine", func(t *testing.T) {
		t.Parallel()

		poster := notify.PosterFunc(func(context.Context, notify.Notification) error {
			return errors.New("observer gone")
		})

		loop := newLoop()
		m := newPhaseMachine(loop, statemachine.WithDiagnostics(true, poster))

		var j journal
		m.Subscribe(j.handler("a"))

		assert.True(t, m.RequestTransition(working))
		loop.Drain(0)
		assert.Equal(t, working, m.CurrentState())
		assert.Equal(t, []string{"a ready->working"}, j.all())
	})

	t.Run("center observers see named notifications", func(t *testing.T) {
		t.Parallel()

		center := notify.NewCenter(16)
		defer center.Close()

		loop := newLoop()
		m := newPhaseMachine(loop,
			statemachine.WithName("checkout"),
			statemachine.WithDiagnostics(true, center),
		)

		will := center.Expect(notify.WillTransition, func(n notify.Notification) bool {
			return n.To == working
		})
		did := center.Expect(notify.DidTransition, func(n notify.Notification) bool {
			return n.To == working
		})

		m.RequestTransition(working)
		loop.Drain(0)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		n, err := will.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "checkout", n.Object)
		assert.Equal(t, ready, n.From)

		n, err = did.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, notify.DidTransition, n.Name)
		assert.False(t, n.At.IsZero())
	})

	t.Run("slow poster does not block state reads", func(t *testing.T) {
		t.Parallel()

		entered := make(chan struct{})
		release := make(chan struct{})
		poster := notify.PosterFunc(func(_ context.Context, n notify.Notification) error {
			if n.Name == notify.WillTransition {
				close(entered)
				<-release
			}
			return nil
		})

		m := newPhaseMachine(newLoop(), statemachine.WithDiagnostics(true, poster))
		defer close(release)

		go m.RequestTransition(working)
		<-entered

		got := make(chan phase, 1)
		go func() { got <- m.CurrentState() }()

		select {
		case state := <-got:
			assert.Equal(t, working, state)
		case <-time.After(time.Second):
			t.Fatal("CurrentState blocked while a notification was being posted")
		}
	})

	t.Run("close from a handler suppresses did", func(t *testing.T) {
		t.Parallel()

		var j journal
		poster := notify.PosterFunc(func(_ context.Context, n notify.Notification) error {
			j.add("%s", n.Name)
			return nil
		})

		loop := newLoop()
		m := newPhaseMachine(loop, statemachine.WithDiagnostics(true, poster))
		m.Subscribe(func(_, _ phase) { m.Close() })

		m.RequestTransition(working)
		loop.Drain(0)

		assert.Equal(t, []string{string(notify.WillTransition)}, j.all())
	})
}
