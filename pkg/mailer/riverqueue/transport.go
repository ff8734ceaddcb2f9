package riverqueue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// inserter is the part of *river.Client the transport needs.
type inserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
	InsertTx(ctx context.Context, tx pgx.Tx, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// Transport inserts messages as River jobs. Delivery happens in a Queue
// running on the same or another process.
type Transport struct {
	client inserter
	opts   []EnqueueOption
}

var _ mailer.Transport = (*Transport)(nil)

// NewTransport creates an insert-only transport. opts apply to every message.
func NewTransport(pool *pgxpool.Pool, logger *slog.Logger, opts ...EnqueueOption) (*Transport, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{Logger: logger})
	if err != nil {
		return nil, errors.Join(ErrEnqueueFailed, err)
	}
	return &Transport{client: client, opts: opts}, nil
}

// Send implements mailer.Transport. MessageID is the River job ID.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	return t.insert(ctx, nil, msg)
}

// SendTx inserts the message within tx. The job becomes visible, and the
// message deliverable, only after tx commits.
func (t *Transport) SendTx(ctx context.Context, tx pgx.Tx, msg *mailer.Message, opts ...EnqueueOption) (*mailer.SendResult, error) {
	return t.insert(ctx, tx, msg, opts...)
}

func (t *Transport) insert(ctx context.Context, tx pgx.Tx, msg *mailer.Message, extra ...EnqueueOption) (*mailer.SendResult, error) {
	args, insertOpts := buildJobArgs(msg, slices.Concat(t.opts, extra)...)

	var (
		res *rivertype.JobInsertResult
		err error
	)
	if tx != nil {
		res, err = t.client.InsertTx(ctx, tx, args, insertOpts)
	} else {
		res, err = t.client.Insert(ctx, args, insertOpts)
	}
	if err != nil {
		return nil, errors.Join(ErrEnqueueFailed, err)
	}

	out := &mailer.SendResult{
		Envelope: mailer.EnvelopeOf(msg),
		Response: "queued",
	}
	if res != nil && res.Job != nil {
		out.MessageID = strconv.FormatInt(res.Job.ID, 10)
		if res.UniqueSkippedAsDuplicate {
			out.Response = "duplicate"
		}
	}
	return out, nil
}
