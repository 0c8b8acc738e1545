// Package notify carries the optional diagnostic side channel of state
// machines: two named signals, WillTransition and DidTransition, posted with
// the (from, to) pair of every accepted transition.
//
// The channel exists for test harnesses that need to synchronise on
// transition completion without polling. It is disabled unless the host turns
// it on, usually from the GAUNTLET_POST_TEST_NOTIFICATIONS environment
// variable read once at startup:
//
//	cfg, err := notify.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	center := notify.NewCenter(cfg.BufferSize)
//	defer center.Close()
//
//	m := statemachine.MustNew(Ready, loop,
//	    statemachine.WithDiagnostics(cfg.PostTestNotifications, center),
//	)
//
//	done := center.Expect(notify.DidTransition, func(n notify.Notification) bool {
//	    return n.To == Working
//	})
//	m.RequestTransition(Working)
//	_, err = done.Wait(ctx)
//
// Posters:
//   - Center delivers in-process, one goroutine per observer.
//   - RedisPoster publishes JSON on a Redis channel for out-of-process harnesses.
//   - Multi fans out to several posters.
package notify
