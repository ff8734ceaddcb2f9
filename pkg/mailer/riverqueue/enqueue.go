package riverqueue

import (
	"time"

	"github.com/riverqueue/river"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

type enqueueConfig struct {
	scheduledAt *time.Time
	queue       string
	uniqueKey   string
	tags        []string
	maxAttempts int
	uniqueFor   time.Duration
	priority    int
}

// EnqueueOption configures how a message is inserted as a job.
type EnqueueOption func(*enqueueConfig)

// InQueue specifies which queue to use for the job.
// Default: QueueMail
func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) {
		if name != "" {
			c.queue = name
		}
	}
}

// ScheduledAt delays delivery until t.
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) {
		c.scheduledAt = &t
	}
}

// ScheduledIn delays delivery by d.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		t := time.Now().Add(d)
		c.scheduledAt = &t
	}
}

// MaxAttempts sets the maximum number of delivery attempts.
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// Priority sets the job priority (1 is highest, 4 is lowest).
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) {
		if p >= 1 && p <= 4 {
			c.priority = p
		}
	}
}

// Tags attaches job tags for filtering in River UI.
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.tags = append(c.tags, tags...)
	}
}

// UniqueFor drops messages with identical content inserted within d.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueFor = d
	}
}

// UniqueKey adds key to the uniqueness check of UniqueFor, so identical
// messages with different keys are all delivered. Ignored without UniqueFor.
func UniqueKey(key string) EnqueueOption {
	return func(c *enqueueConfig) {
		c.uniqueKey = key
	}
}

func buildJobArgs(msg *mailer.Message, opts ...EnqueueOption) (SendArgs, *river.InsertOpts) {
	cfg := &enqueueConfig{queue: QueueMail}
	for _, opt := range opts {
		opt(cfg)
	}

	args := SendArgs{Message: msg}
	insertOpts := &river.InsertOpts{Queue: cfg.queue}
	if cfg.scheduledAt != nil {
		insertOpts.ScheduledAt = *cfg.scheduledAt
	}
	if cfg.maxAttempts > 0 {
		insertOpts.MaxAttempts = cfg.maxAttempts
	}
	if cfg.priority > 0 {
		insertOpts.Priority = cfg.priority
	}
	if len(cfg.tags) > 0 {
		insertOpts.Tags = cfg.tags
	}
	if cfg.uniqueFor > 0 {
		insertOpts.UniqueOpts = river.UniqueOpts{ByArgs: true, ByPeriod: cfg.uniqueFor}
		args.UniqueKey = cfg.uniqueKey
	}

	return args, insertOpts
}
