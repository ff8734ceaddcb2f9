package redisqueue

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redisqueue: empty connection URL")
	ErrFailedToParseURL   = errors.New("redisqueue: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redisqueue: failed to establish connection")
	ErrHealthcheckFailed  = errors.New("redisqueue: healthcheck failed")
	ErrEnqueueFailed      = errors.New("redisqueue: failed to enqueue message")
	ErrDecodeFailed       = errors.New("redisqueue: failed to decode queued message")
	ErrDeliveryFailed     = errors.New("redisqueue: delivery failed")
	ErrNoTransport        = errors.New("redisqueue: worker requires a delivery transport")
)
