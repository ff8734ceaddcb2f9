package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailtmpl/pkg/logger"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

const requeueTimeout = 5 * time.Second

// Worker drains the outbox into a delivery transport.
// Messages that fail MaxAttempts times move to the dead-letter list.
type Worker struct {
	client      Client
	delivery    mailer.Transport
	log         *slog.Logger
	key         string
	deadKey     string
	poll        time.Duration
	maxAttempts int
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithKey sets the outbox list key.
func WithKey(key string) WorkerOption {
	return func(w *Worker) {
		if key != "" {
			w.key = key
			w.deadKey = key + ":dead"
		}
	}
}

// WithPollTimeout bounds each blocking pop. Default: 5 seconds.
func WithPollTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) {
		if d > 0 {
			w.poll = d
		}
	}
}

// WithMaxAttempts sets how often a message is retried before it is dead-lettered.
// Default: 3
func WithMaxAttempts(n int) WorkerOption {
	return func(w *Worker) {
		if n > 0 {
			w.maxAttempts = n
		}
	}
}

// WithWorkerLogger sets the logger.
func WithWorkerLogger(l *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorker creates a worker delivering through delivery.
func NewWorker(client Client, delivery mailer.Transport, opts ...WorkerOption) (*Worker, error) {
	if delivery == nil {
		return nil, ErrNoTransport
	}
	w := &Worker{
		client:      client,
		delivery:    delivery,
		log:         logger.NewNope(),
		key:         DefaultKey,
		deadKey:     DefaultKey + ":dead",
		poll:        5 * time.Second,
		maxAttempts: 3,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run processes messages until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "outbox worker started", slog.String("key", w.key))
	for {
		if ctx.Err() != nil {
			w.log.InfoContext(ctx, "outbox worker stopped", slog.String("key", w.key))
			return nil
		}
		if _, err := w.ProcessOne(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.log.ErrorContext(ctx, "outbox delivery failed", slog.Any("error", err))
			if wait(ctx, time.Second) != nil {
				return nil
			}
		}
	}
}

// ProcessOne pops and delivers a single message. It reports false when the
// poll timed out with an empty queue.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	vals, err := w.client.BLPop(ctx, w.poll, w.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(vals) != 2 {
		return false, ErrDecodeFailed
	}

	var env Envelope
	if err := json.Unmarshal([]byte(vals[1]), &env); err != nil || env.Message == nil {
		w.log.ErrorContext(ctx, "dropping undecodable outbox entry", slog.Any("error", err))
		return true, errors.Join(ErrDecodeFailed, err)
	}

	env.Attempt++
	_, sendErr := w.delivery.Send(ctx, env.Message)
	if sendErr == nil {
		w.log.DebugContext(ctx, "outbox message delivered",
			slog.String("id", env.ID),
			slog.Int("attempt", env.Attempt))
		return true, nil
	}

	target := w.key
	if env.Attempt >= w.maxAttempts {
		target = w.deadKey
	}
	// The entry is already off the list; put it back even when ctx was
	// cancelled mid-delivery.
	requeueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requeueTimeout)
	defer cancel()
	if err := push(requeueCtx, w.client, target, env); err != nil {
		return true, errors.Join(ErrDeliveryFailed, sendErr, err)
	}
	return true, errors.Join(ErrDeliveryFailed, sendErr)
}
