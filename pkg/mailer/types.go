package mailer

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// This abstraction works across different email providers:
//   - Mailgun: uses only tag names
//   - Resend: uses name-value pairs (presence-only tags become name="true")
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
// These are converted to appropriate format by each provider adapter.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is an outbound email. Empty strings mean the field is absent.
type Message struct {
	Headers     map[string]string `json:"headers,omitempty"`
	Tags        Tags              `json:"tags,omitempty"`
	From        string            `json:"from,omitempty"`
	ReplyTo     string            `json:"reply_to,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	HTML        string            `json:"html,omitempty"`
	Text        string            `json:"text,omitempty"`
	To          []string          `json:"to,omitempty"`
	CC          []string          `json:"cc,omitempty"`
	BCC         []string          `json:"bcc,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string `json:"filename"`               // Display name for the attachment
	ContentType string `json:"content_type,omitempty"` // MIME type (e.g., "application/pdf")
	ContentID   string `json:"content_id,omitempty"`   // Optional Content-ID for inline attachments
	Content     []byte `json:"content"`                // Raw file content
}

// Kind is one of the three renderable parts of a message.
type Kind string

const (
	KindSubject Kind = "subject"
	KindHTML    Kind = "html"
	KindText    Kind = "text"
)

// Kinds lists every renderable part in assembly order.
var Kinds = []Kind{KindSubject, KindHTML, KindText}

// Template references a view, optionally with per-call CSS resource overrides.
type Template struct {
	Path      string
	Resources *inliner.Options
}

// T is shorthand for a template reference without resource overrides.
func T(path string) Template {
	return Template{Path: path}
}

// Locals are the values a template renders against.
type Locals = map[string]any

// PathFunc builds the view path of a message part.
type PathFunc func(kind Kind, template string) string

// DefaultGetPath places each part in a directory named after the template,
// e.g. "welcome/html".
func DefaultGetPath(kind Kind, template string) string {
	return path.Join(template, string(kind))
}

// RenderFunc replaces the built-in engine dispatcher.
type RenderFunc func(ctx context.Context, tmpl Template, locals Locals) (string, error)

// LocaleContext activates a locale for one render.
type LocaleContext interface {
	SetLocale(locale string)
}

// Localizer registers translation helpers into render locals.
type Localizer interface {
	Register(locals map[string]any) LocaleContext
	LastLocaleField() string
}

// Previewer shows a message to a developer before it is handed to the transport.
type Previewer interface {
	Preview(ctx context.Context, msg *Message) error
}

// PreviewFunc adapts a function to Previewer.
type PreviewFunc func(ctx context.Context, msg *Message) error

// Preview implements Previewer.
func (f PreviewFunc) Preview(ctx context.Context, msg *Message) error {
	return f(ctx, msg)
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	Template Template
	Message  Message
	Locals   Locals
}

// SendResult describes a delivery attempt.
type SendResult struct {
	OriginalMessage *Message `json:"-"`
	Envelope        Envelope `json:"envelope"`
	MessageID       string   `json:"message_id"`
	Response        string   `json:"response,omitempty"`
	Raw             []byte   `json:"-"`
	Accepted        []string `json:"accepted,omitempty"`
}

// Envelope holds the SMTP-level sender and recipients.
type Envelope struct {
	From string   `json:"from"`
	To   []string `json:"to"`
}

// EnvelopeOf builds the envelope of msg: every To, CC and BCC address.
func EnvelopeOf(msg *Message) Envelope {
	to := make([]string, 0, len(msg.To)+len(msg.CC)+len(msg.BCC))
	to = append(to, msg.To...)
	to = append(to, msg.CC...)
	to = append(to, msg.BCC...)
	return Envelope{From: msg.From, To: to}
}
