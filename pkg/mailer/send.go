package mailer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/mailtmpl/pkg/logger"
)

// Send merges params over the configured defaults, assembles the message and
// delivers it. When sending is disabled the Mailer switches, for this and
// every later call, to a JSONTransport that only records messages.
// The returned result points at the exact message handed to the transport.
func (m *Mailer) Send(ctx context.Context, params SendParams) (*SendResult, error) {
	if params.Template.Path != "" {
		ctx = logger.WithTemplate(ctx, params.Template.Path)
	}

	attachments := params.Message.Attachments
	if len(attachments) == 0 {
		attachments = m.cfg.Message.Attachments
	}

	merged := mergeMessage(params.Message, m.cfg.Message)
	locals := mergeLocals(m.cfg.Views.Locals, params.Locals)
	merged.Attachments = attachments
	msg := &merged

	assembled, err := m.Assemble(ctx, params.Template, locals, merged)
	if err != nil {
		m.cfg.Metrics.observeSend(resultError)
		return nil, err
	}
	// Assemble already kept caller fields; its parts carry the subject
	// prefix, the derived text and the text-only rule.
	msg.Subject, msg.HTML, msg.Text = assembled.Subject, assembled.HTML, assembled.Text

	if m.cfg.Preview != nil {
		snapshot := cloneMessage(*msg)
		go m.preview(context.WithoutCancel(ctx), &snapshot)
	}

	result := resultOK
	transport := m.Transport()
	if !m.cfg.Send {
		transport = m.useDryRun()
		result = resultDry
	}
	if transport == nil {
		m.cfg.Metrics.observeSend(resultError)
		return nil, ErrNoTransport
	}

	res, err := transport.Send(ctx, msg)
	if err != nil {
		m.cfg.Metrics.observeSend(resultError)
		m.log.ErrorContext(ctx, "send failed",
			slog.String("error", err.Error()),
		)
		return nil, errors.Join(ErrSendFailed, err)
	}
	if res == nil {
		res = &SendResult{Envelope: EnvelopeOf(msg)}
	}
	res.OriginalMessage = msg

	m.cfg.Metrics.observeSend(result)
	m.log.DebugContext(ctx, "message sent",
		slog.String("message_id", res.MessageID),
	)
	return res, nil
}

func (m *Mailer) preview(ctx context.Context, msg *Message) {
	if err := m.cfg.Preview.Preview(ctx, msg); err != nil {
		m.log.WarnContext(ctx, "preview failed",
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
	}
}
