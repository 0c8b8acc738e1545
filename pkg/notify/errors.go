package notify

import "errors"

var (
	ErrCenterClosed  = errors.New("notify: center is closed")
	ErrEmptyChannel  = errors.New("notify: redis channel cannot be empty")
	ErrNilClient     = errors.New("notify: redis client cannot be nil")
	ErrEncode        = errors.New("notify: failed to encode notification")
	ErrPublishFailed = errors.New("notify: failed to publish notification")
	ErrLoadingConfig = errors.New("notify: failed to load configuration")
)
