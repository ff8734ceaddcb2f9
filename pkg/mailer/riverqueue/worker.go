package riverqueue

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// Worker delivers SendArgs jobs through a transport. A failed delivery
// returns the error so River retries with its backoff.
type Worker struct {
	river.WorkerDefaults[SendArgs]
	delivery mailer.Transport
	logger   *slog.Logger
}

// NewWorker creates a worker. Register it with river.AddWorker when
// composing a custom River client; Queue does this itself.
func NewWorker(delivery mailer.Transport, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{delivery: delivery, logger: logger}
}

// Work implements river.Worker.
func (w *Worker) Work(ctx context.Context, job *river.Job[SendArgs]) error {
	if job.Args.Message == nil {
		return river.JobCancel(ErrEmptyJob)
	}

	res, err := w.delivery.Send(ctx, job.Args.Message)
	if err != nil {
		w.logger.ErrorContext(ctx, "mail delivery failed",
			slog.Int64("job_id", job.ID),
			slog.Int("attempt", job.Attempt),
			slog.Any("error", err),
		)
		return err
	}

	attrs := []any{slog.Int64("job_id", job.ID), slog.Int("attempt", job.Attempt)}
	if res != nil {
		attrs = append(attrs, slog.String("message_id", res.MessageID))
	}
	w.logger.DebugContext(ctx, "mail delivered", attrs...)
	return nil
}
