package main

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/gauntlet/pkg/logger"
	"github.com/dmitrymomot/gauntlet/pkg/notify"
	"github.com/dmitrymomot/gauntlet/pkg/redis"
	"github.com/dmitrymomot/gauntlet/pkg/runloop"
	"github.com/dmitrymomot/gauntlet/pkg/statemachine"
)

// run drives one machine through cfg.Requests on a run loop and returns once
// every resulting transition, follow-ups included, has been delivered.
func run(ctx context.Context, cfg Config, wf Workflow, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := runloop.New(runloop.WithLogger(log))
	defer loop.Close()

	poster, closePoster, err := diagnostics(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePoster()

	m, err := statemachine.NewWithGuard(wf.Initial, wf.Transitions.Guard(), loop,
		statemachine.WithName("demo"),
		statemachine.WithLogger(log),
		statemachine.WithDiagnostics(poster != nil, poster),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	m.SetDelegate(func(from, to string) {
		log.Info("transition delivered", logger.Machine(m.Name()), logger.From(from), logger.To(to))
		if next, ok := wf.Follow[to]; ok {
			m.RequestTransition(next)
		}
	})

	pub, err := statemachine.NewPublisher(m, 16)
	if err != nil {
		return err
	}
	defer pub.Close()
	feed := pub.Subscribe(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		for msg := range feed.Receive(ctx) {
			log.Debug("transition published",
				logger.From(msg.Data.From), logger.To(msg.Data.To))
		}
		return nil
	})

	loop.Schedule(func() {
		for _, to := range cfg.Requests {
			accepted := m.RequestTransition(to)
			log.Info("transition requested",
				logger.To(to),
				slog.Bool("accepted", accepted),
				slog.String("state", m.CurrentState()))
		}
		awaitIdle(loop, m, func() {
			log.Info("demo finished", slog.String("state", m.CurrentState()))
			_ = feed.Close()
			cancel()
		})
	})

	return g.Wait()
}

// awaitIdle calls fn on the loop once m has nothing left to deliver.
func awaitIdle[S any](loop *runloop.Loop, m *statemachine.Machine[S], fn func()) {
	var check func()
	check = func() {
		if m.Pending() > 0 {
			loop.Schedule(check)
			return
		}
		fn()
	}
	loop.Schedule(check)
}

// diagnostics builds the poster for the transition notifications, or nil
// when they are disabled. Notifications are logged through an in-process
// center and, if configured, published to Redis.
func diagnostics(ctx context.Context, cfg Config, log *slog.Logger) (notify.Poster, func(), error) {
	if !cfg.Notify.PostTestNotifications {
		return nil, func() {}, nil
	}

	center := notify.NewCenter(cfg.Notify.BufferSize)
	stop := center.Observe(ctx, "", func(n notify.Notification) {
		log.Debug("diagnostic notification",
			logger.Signal(string(n.Name)), logger.From(n.From), logger.To(n.To))
	})
	closers := []func(){stop, func() { _ = center.Close() }}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if !cfg.PublishRedis {
		return center, closeAll, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = client.Close() })

	if err := redis.Healthcheck(client)(ctx); err != nil {
		closeAll()
		return nil, nil, err
	}

	rp, err := notify.NewRedisPoster(client, cfg.Notify.RedisChannel,
		notify.WithPublishTimeout(cfg.Notify.PublishTimeout))
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	log.Info("publishing diagnostics to redis", slog.String("channel", rp.Channel()))

	return notify.Multi(center, rp), closeAll, nil
}
