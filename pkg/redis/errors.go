package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis: connection URL cannot be empty")
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection URL")
	ErrRedisNotReady                = errors.New("redis: server not ready before retries ran out")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
)
