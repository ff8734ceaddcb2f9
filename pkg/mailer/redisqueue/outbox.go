package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// DefaultKey is the list messages are queued on.
const DefaultKey = "mailtmpl:outbox"

// Client is the subset of redis.UniversalClient the outbox needs.
type Client interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Envelope is the queued form of a message.
type Envelope struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Message    *mailer.Message `json:"message"`
	ID         string          `json:"id"`
	Attempt    int             `json:"attempt"`
}

// Transport queues messages on a Redis list instead of delivering them.
// A Worker drains the list into a delivery transport.
type Transport struct {
	client Client
	key    string
	now    func() time.Time
}

var _ mailer.Transport = (*Transport)(nil)

// NewTransport creates an outbox transport. An empty key uses DefaultKey.
func NewTransport(client Client, key string) *Transport {
	if key == "" {
		key = DefaultKey
	}
	return &Transport{client: client, key: key, now: time.Now}
}

// Send implements mailer.Transport. The result's MessageID is the queue entry ID.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	env := Envelope{
		ID:         uuid.NewString(),
		Message:    msg,
		EnqueuedAt: t.now().UTC(),
	}
	if err := push(ctx, t.client, t.key, env); err != nil {
		return nil, err
	}

	envelope := mailer.EnvelopeOf(msg)
	return &mailer.SendResult{
		MessageID: env.ID,
		Envelope:  envelope,
		Response:  "queued",
	}, nil
}

func push(ctx context.Context, client Client, key string, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return errors.Join(ErrEnqueueFailed, err)
	}
	if err := client.RPush(ctx, key, payload).Err(); err != nil {
		return errors.Join(ErrEnqueueFailed, err)
	}
	return nil
}
