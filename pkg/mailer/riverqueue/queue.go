package riverqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

const defaultMaxWorkers = 10

// Option configures a Queue.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	queue      string
	enqueue    []EnqueueOption
	maxWorkers int
}

// WithLogger sets the logger for the queue and its River client.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxWorkers sets how many messages are delivered concurrently.
// Default: 10
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

// WithQueueName sets the queue the Queue inserts into and works.
// Default: QueueMail
func WithQueueName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.queue = name
		}
	}
}

// WithEnqueueOptions sets options applied to every inserted message.
func WithEnqueueOptions(opts ...EnqueueOption) Option {
	return func(c *config) {
		c.enqueue = append(c.enqueue, opts...)
	}
}

// Queue both inserts and works delivery jobs. It is a mailer.Transport:
// use it with mailer.WithTransport to make every send asynchronous.
type Queue struct {
	*Transport
	pool   *pgxpool.Pool
	client *river.Client[pgx.Tx]
	logger *slog.Logger
	mu     sync.Mutex

	started bool
}

// NewQueue creates a queue delivering through delivery. Jobs can be
// inserted before Start; they are delivered once it runs.
func NewQueue(pool *pgxpool.Pool, delivery mailer.Transport, opts ...Option) (*Queue, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if delivery == nil {
		return nil, ErrNoTransport
	}

	cfg := &config{queue: QueueMail, maxWorkers: defaultMaxWorkers}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewWorker(delivery, cfg.logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			cfg.queue: {MaxWorkers: cfg.maxWorkers},
		},
		Workers: workers,
		Logger:  cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("riverqueue: create client: %w", err)
	}

	return &Queue{
		Transport: &Transport{
			client: client,
			opts:   append([]EnqueueOption{InQueue(cfg.queue)}, cfg.enqueue...),
		},
		pool:   pool,
		client: client,
		logger: cfg.logger,
	}, nil
}

// Start begins delivering queued messages.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return ErrAlreadyStarted
	}
	if err := q.client.Start(ctx); err != nil {
		return fmt.Errorf("riverqueue: start client: %w", err)
	}

	q.started = true
	q.logger.Info("mail queue started")
	return nil
}

// Stop waits for in-flight deliveries to finish.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.started {
		return ErrNotStarted
	}
	if err := q.client.Stop(ctx); err != nil {
		return fmt.Errorf("riverqueue: stop client: %w", err)
	}

	q.started = false
	q.logger.Info("mail queue stopped")
	return nil
}

// Healthcheck returns a check that fails unless q is started and its
// database is reachable.
func Healthcheck(q *Queue) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if q == nil {
			return errors.Join(ErrHealthcheckFailed, errors.New("queue is nil"))
		}

		q.mu.Lock()
		started := q.started
		q.mu.Unlock()

		if !started {
			return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
		}
		if err := q.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Migrate applies River's schema migrations to the database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return ErrPoolRequired
	}
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("riverqueue: create migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return fmt.Errorf("riverqueue: migrate: %w", err)
	}
	return nil
}
