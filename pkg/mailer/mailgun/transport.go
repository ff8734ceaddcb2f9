package mailgun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

const euAPIBase = "https://api.eu.mailgun.net/v3"

// Configuration and input errors.
var (
	ErrMissingAPIKey = errors.New("mailgun: api key is required")
	ErrMissingDomain = errors.New("mailgun: domain is required")
	ErrNoRecipients  = errors.New("mailgun: at least one recipient is required")
)

// Transport implements mailer.Transport using the Mailgun API.
type Transport struct {
	client *mailgun.MailgunImpl
	config Config
}

var _ mailer.Transport = (*Transport)(nil)

// New creates a Mailgun transport.
func New(cfg Config) (*Transport, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Domain == "" {
		return nil, ErrMissingDomain
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		mg.SetAPIBase(cfg.BaseURL)
	case cfg.Region == "eu":
		mg.SetAPIBase(euAPIBase)
	}

	return &Transport{client: mg, config: cfg}, nil
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = mailer.Recipient(t.config.SenderName, t.config.SenderEmail)
	}

	m := t.client.NewMessage(from, msg.Subject, msg.Text, msg.To...)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}
	for _, cc := range msg.CC {
		m.AddCC(cc)
	}
	for _, bcc := range msg.BCC {
		m.AddBCC(bcc)
	}
	if msg.ReplyTo != "" {
		m.SetReplyTo(msg.ReplyTo)
	}
	for k, v := range msg.Headers {
		m.AddHeader(k, v)
	}
	if tags := tagNames(msg.Tags); len(tags) > 0 {
		if err := m.AddTag(tags...); err != nil {
			return nil, fmt.Errorf("mailgun: %w", err)
		}
	}
	for _, a := range msg.Attachments {
		if a.ContentID != "" {
			m.AddReaderInline(a.Filename, io.NopCloser(bytes.NewReader(a.Content)))
			continue
		}
		m.AddBufferAttachment(a.Filename, a.Content)
	}

	resp, id, err := t.client.Send(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("mailgun: failed to send email: %w", err)
	}

	env := mailer.EnvelopeOf(msg)
	env.From = from
	return &mailer.SendResult{
		MessageID: id,
		Envelope:  env,
		Accepted:  env.To,
		Response:  resp,
	}, nil
}

// tagNames flattens tags to names, the only form Mailgun accepts.
func tagNames(tags mailer.Tags) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
