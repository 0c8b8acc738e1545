// Package redis connects to the Redis server used as an out-of-process sink
// for state machine diagnostic notifications (see notify.RedisPoster).
//
// Config is populated from environment variables with pkg/config:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	poster, err := notify.NewRedisPoster(client, "gauntlet:notifications")
//
// Healthcheck wraps a client ping for readiness probes. Errors are sentinel
// values joined with the underlying go-redis error, so errors.Is works on both.
package redis
