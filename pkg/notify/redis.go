package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher is the subset of redis.UniversalClient used by RedisPoster.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// DefaultPublishTimeout bounds a single publish when no timeout is configured.
const DefaultPublishTimeout = 500 * time.Millisecond

// RedisPoster publishes notifications as JSON on a Redis pub/sub channel so
// a harness in another process can wait for transitions.
type RedisPoster struct {
	client  RedisPublisher
	channel string
	timeout time.Duration
}

// RedisOption configures a RedisPoster.
type RedisOption func(*RedisPoster)

// WithPublishTimeout bounds every publish. Zero or negative values disable
// the bound and leave the caller's context in charge.
func WithPublishTimeout(d time.Duration) RedisOption {
	return func(p *RedisPoster) {
		p.timeout = d
	}
}

// NewRedisPoster creates a poster publishing to channel.
func NewRedisPoster(client RedisPublisher, channel string, opts ...RedisOption) (*RedisPoster, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	p := &RedisPoster{client: client, channel: channel, timeout: DefaultPublishTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Post implements Poster. Machines post with a background context, so the
// publish timeout is what keeps an unreachable server from stalling them.
func (p *RedisPoster) Post(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Channel returns the Redis channel notifications are published on.
func (p *RedisPoster) Channel() string {
	return p.channel
}
