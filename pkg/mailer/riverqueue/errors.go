package riverqueue

import "errors"

var (
	// ErrPoolRequired is returned when a transport or queue is created
	// without a database pool.
	ErrPoolRequired = errors.New("riverqueue: pool is required")

	// ErrNoTransport is returned when a queue is created without a
	// delivery transport.
	ErrNoTransport = errors.New("riverqueue: delivery transport is required")

	// ErrEmptyJob is returned by the worker for a job without a message.
	ErrEmptyJob = errors.New("riverqueue: job has no message")

	ErrAlreadyStarted    = errors.New("riverqueue: already started")
	ErrNotStarted        = errors.New("riverqueue: not started")
	ErrEnqueueFailed     = errors.New("riverqueue: failed to enqueue message")
	ErrHealthcheckFailed = errors.New("riverqueue: healthcheck failed")
)
