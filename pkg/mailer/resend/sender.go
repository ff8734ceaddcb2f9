package resend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// ErrInvalidBaseURL is returned by New when Config.BaseURL does not parse.
var ErrInvalidBaseURL = errors.New("resend: invalid base url")

// Transport implements mailer.Transport using the Resend API.
type Transport struct {
	client *resend.Client
	config Config
}

var _ mailer.Transport = (*Transport)(nil)

// New creates a new Resend transport.
func New(cfg Config) (*Transport, error) {
	client := resend.NewClient(cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, errors.Join(ErrInvalidBaseURL, err)
		}
		client.BaseURL = u
	}
	return &Transport{client: client, config: cfg}, nil
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	from := msg.From
	if from == "" {
		from = mailer.Recipient(t.config.SenderName, t.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		Cc:      msg.CC,
		Bcc:     msg.BCC,
		Headers: msg.Headers,
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = convertAttachments(msg.Attachments)
	}
	if len(msg.Tags) > 0 {
		req.Tags = convertTags(msg.Tags)
	}

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend: failed to send email: %w", err)
	}

	env := mailer.EnvelopeOf(msg)
	env.From = from
	return &mailer.SendResult{
		MessageID: resp.Id,
		Envelope:  env,
		Accepted:  env.To,
	}, nil
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
