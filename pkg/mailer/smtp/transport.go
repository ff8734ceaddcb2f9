package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	netmail "net/mail"
	netsmtp "net/smtp"
	"strings"
	"time"

	mail "github.com/go-mail/mail"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/mailtmpl/pkg/logger"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// Transport delivers messages over SMTP.
type Transport struct {
	config Config
	auth   netsmtp.Auth
	log    *slog.Logger
	send   func(d *mail.Dialer, m *mail.Message) error
}

var _ mailer.Transport = (*Transport)(nil)

// Option configures a Transport.
type Option func(*Transport)

// WithTokenSource authenticates with XOAUTH2 instead of a password.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(t *Transport) {
		if ts != nil {
			t.auth = XOAUTH2(t.config.Username, ts)
		}
	}
}

// WithAuth sets a custom SMTP authentication mechanism.
func WithAuth(auth netsmtp.Auth) Option {
	return func(t *Transport) {
		t.auth = auth
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.log = l
		}
	}
}

// New creates an SMTP transport.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if cfg.Host == "" {
		return nil, ErrMissingHost
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSAuto
	}
	switch cfg.TLSMode {
	case TLSAuto, TLSStartTLS, TLSSSL, TLSNone:
	default:
		return nil, errors.Join(ErrInvalidTLS, errors.New(cfg.TLSMode))
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}

	t := &Transport{
		config: cfg,
		log:    logger.NewNope(),
		send:   func(d *mail.Dialer, m *mail.Message) error { return d.DialAndSend(m) },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Send implements mailer.Transport.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env := mailer.EnvelopeOf(msg)
	if len(env.To) == 0 {
		return nil, ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = mailer.Recipient(t.config.SenderName, t.config.SenderEmail)
	}
	env.From = from

	m, id := buildMessage(msg, from)

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}

	d := t.dialer(ctx)
	if err := t.send(d, m); err != nil {
		t.log.ErrorContext(ctx, "smtp send failed",
			slog.String("host", t.config.Host),
			slog.Int("port", t.config.Port),
			slog.Any("error", err))
		return nil, errors.Join(ErrSendFailed, err)
	}

	t.log.DebugContext(ctx, "smtp message sent",
		slog.String("message_id", id),
		slog.Int("recipients", len(env.To)))

	return &mailer.SendResult{
		MessageID: id,
		Envelope:  env,
		Accepted:  env.To,
		Response:  "250 OK",
		Raw:       raw.Bytes(),
	}, nil
}

func (t *Transport) dialer(ctx context.Context) *mail.Dialer {
	d := mail.NewDialer(t.config.Host, t.config.Port, t.config.Username, t.config.Password)
	d.LocalName = t.config.LocalName
	d.TLSConfig = &tls.Config{
		ServerName:         t.config.Host,
		InsecureSkipVerify: t.config.InsecureSkipVerify, //nolint:gosec // opt-in for local servers
	}
	if t.auth != nil {
		d.Auth = t.auth
	}
	if t.config.Timeout > 0 {
		d.Timeout = t.config.Timeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left > 0 && (d.Timeout == 0 || left < d.Timeout) {
			d.Timeout = left
		}
	}

	switch t.config.TLSMode {
	case TLSSSL:
		d.SSL = true
	case TLSStartTLS:
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case TLSNone:
		d.StartTLSPolicy = mail.NoStartTLS
	}
	return d
}

// buildMessage converts msg into a MIME message and returns its Message-ID.
func buildMessage(msg *mailer.Message, from string) (*mail.Message, string) {
	m := mail.NewMessage()

	id := msg.Headers["Message-ID"]
	if id == "" {
		id = "<" + uuid.NewString() + "@" + domainOf(from) + ">"
	}

	for k, v := range msg.Headers {
		if strings.EqualFold(k, "Message-ID") {
			continue
		}
		m.SetHeader(k, v)
	}
	m.SetHeader("Message-ID", id)
	m.SetHeader("From", from)
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	if len(msg.BCC) > 0 {
		m.SetHeader("Bcc", msg.BCC...)
	}
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.Text != "" && msg.HTML != "":
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	case msg.HTML != "":
		m.SetBody("text/html", msg.HTML)
	default:
		m.SetBody("text/plain", msg.Text)
	}

	for _, a := range msg.Attachments {
		settings := []mail.FileSetting{mail.SetCopyFunc(copyBytes(a.Content))}
		header := map[string][]string{}
		if a.ContentType != "" {
			header["Content-Type"] = []string{a.ContentType}
		}
		if a.ContentID != "" {
			header["Content-ID"] = []string{"<" + a.ContentID + ">"}
		}
		if len(header) > 0 {
			settings = append(settings, mail.SetHeader(header))
		}
		if a.ContentID != "" {
			m.Embed(a.Filename, settings...)
		} else {
			m.Attach(a.Filename, settings...)
		}
	}

	return m, id
}

func copyBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	}
}

func domainOf(from string) string {
	addr, err := netmail.ParseAddress(from)
	if err != nil {
		return "mailtmpl"
	}
	if i := strings.LastIndexByte(addr.Address, '@'); i >= 0 && i < len(addr.Address)-1 {
		return addr.Address[i+1:]
	}
	return "mailtmpl"
}
