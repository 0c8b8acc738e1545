package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gauntlet/pkg/notify"
)

func post(t *testing.T, c *notify.Center, name notify.Name, to string) {
	t.Helper()
	require.NoError(t, c.Post(context.Background(), notify.Notification{
		Name:   name,
		Object: "machine",
		To:     to,
		At:     time.Now(),
	}))
}

func TestCenter_Observe(t *testing.T) {
	t.Parallel()

	t.Run("filters by name and keeps order", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		var mu sync.Mutex
		var got []any
		stop := c.Observe(context.Background(), notify.DidTransition, func(n notify.Notification) {
			mu.Lock()
			got = append(got, n.To)
			mu.Unlock()
		})
		defer stop()

		post(t, c, notify.WillTransition, "a")
		post(t, c, notify.DidTransition, "a")
		post(t, c, notify.WillTransition, "b")
		post(t, c, notify.DidTransition, "b")

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == 2
		}, time.Second, 5*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []any{"a", "b"}, got)
	})

	t.Run("empty name observes everything", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		var mu sync.Mutex
		var names []notify.Name
		stop := c.Observe(context.Background(), "", func(n notify.Notification) {
			mu.Lock()
			names = append(names, n.Name)
			mu.Unlock()
		})
		defer stop()

		post(t, c, notify.WillTransition, "a")
		post(t, c, notify.DidTransition, "a")

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(names) == 2
		}, time.Second, 5*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []notify.Name{notify.WillTransition, notify.DidTransition}, names)
	})

	t.Run("stop ends observation", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		var mu sync.Mutex
		count := 0
		stop := c.Observe(context.Background(), "", func(notify.Notification) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		post(t, c, notify.DidTransition, "a")
		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return count == 1
		}, time.Second, 5*time.Millisecond)

		stop()
		// Removal happens on the AfterFunc goroutine; wait for a post to be ignored.
		time.Sleep(20 * time.Millisecond)
		post(t, c, notify.DidTransition, "b")
		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, count)
	})
}

func TestCenter_Expect(t *testing.T) {
	t.Parallel()

	t.Run("returns first matching notification", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		exp := c.Expect(notify.DidTransition, func(n notify.Notification) bool {
			return n.To == "done"
		})

		post(t, c, notify.WillTransition, "done")
		post(t, c, notify.DidTransition, "working")
		post(t, c, notify.DidTransition, "done")

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		n, err := exp.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, notify.DidTransition, n.Name)
		assert.Equal(t, "done", n.To)
	})

	t.Run("nil match accepts any", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		exp := c.Expect(notify.WillTransition, nil)
		post(t, c, notify.WillTransition, "x")

		n, err := exp.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "x", n.To)
	})

	t.Run("times out", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)
		defer c.Close()

		exp := c.Expect(notify.DidTransition, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := exp.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("center closed while waiting", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(16)

		exp := c.Expect(notify.DidTransition, nil)
		require.NoError(t, c.Close())

		_, err := exp.Wait(context.Background())
		assert.ErrorIs(t, err, notify.ErrCenterClosed)
	})
}

func TestCenter_Post(t *testing.T) {
	t.Parallel()

	t.Run("without observers", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(0)
		defer c.Close()
		post(t, c, notify.DidTransition, "a")
	})

	t.Run("after close", func(t *testing.T) {
		t.Parallel()
		c := notify.NewCenter(1)
		require.NoError(t, c.Close())

		err := c.Post(context.Background(), notify.Notification{Name: notify.DidTransition})
		assert.ErrorIs(t, err, notify.ErrCenterClosed)
	})
}
