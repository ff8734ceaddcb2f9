package smtp

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	mail "github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		tr, err := New(Config{Host: "smtp.example.com"})
		require.NoError(t, err)
		assert.Equal(t, 587, tr.config.Port)
		assert.Equal(t, TLSAuto, tr.config.TLSMode)
	})

	t.Run("missing host", func(t *testing.T) {
		t.Parallel()
		_, err := New(Config{})
		require.ErrorIs(t, err, ErrMissingHost)
	})

	t.Run("unknown tls mode", func(t *testing.T) {
		t.Parallel()
		_, err := New(Config{Host: "smtp.example.com", TLSMode: "tls13"})
		require.ErrorIs(t, err, ErrInvalidTLS)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	m, id := buildMessage(&mailer.Message{
		To:      []string{"ada@example.com"},
		CC:      []string{"bob@example.com"},
		ReplyTo: "support@example.com",
		Subject: "Hello",
		HTML:    "<p>Hello</p>",
		Text:    "Hello",
		Headers: map[string]string{"X-Campaign": "welcome"},
		Attachments: []mailer.Attachment{
			{Filename: "report.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	}, "App <noreply@example.com>")

	assert.Regexp(t, `^<[0-9a-f-]{36}@example\.com>$`, id)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: Hello")
	assert.Contains(t, raw, "To: ada@example.com")
	assert.Contains(t, raw, "Cc: bob@example.com")
	assert.Contains(t, raw, "Reply-To: support@example.com")
	assert.Contains(t, raw, "X-Campaign: welcome")
	assert.Contains(t, raw, "Message-ID: "+id)
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, `filename="report.pdf"`)
}

func TestBuildMessage_KeepsMessageID(t *testing.T) {
	t.Parallel()

	_, id := buildMessage(&mailer.Message{
		To:      []string{"ada@example.com"},
		Text:    "hi",
		Headers: map[string]string{"Message-ID": "<fixed@example.com>"},
	}, "noreply@example.com")
	assert.Equal(t, "<fixed@example.com>", id)
}

func TestDomainOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", domainOf("App <noreply@example.com>"))
	assert.Equal(t, "example.org", domainOf("a@example.org"))
	assert.Equal(t, "mailtmpl", domainOf("not an address"))
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	var dialer *mail.Dialer
	tr, err := New(Config{
		Host:        "smtp.example.com",
		Port:        465,
		TLSMode:     TLSSSL,
		SenderEmail: "noreply@example.com",
		SenderName:  "App",
		Timeout:     time.Minute,
	})
	require.NoError(t, err)
	tr.send = func(d *mail.Dialer, _ *mail.Message) error {
		dialer = d
		return nil
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	res, err := tr.Send(ctx, &mailer.Message{
		To:      []string{"ada@example.com"},
		BCC:     []string{"audit@example.com"},
		Subject: "Hi",
		Text:    "Hi",
	})
	require.NoError(t, err)

	require.NotNil(t, dialer)
	assert.True(t, dialer.SSL)
	assert.LessOrEqual(t, dialer.Timeout, 5*time.Second)
	assert.Equal(t, "App <noreply@example.com>", res.Envelope.From)
	assert.Equal(t, []string{"ada@example.com", "audit@example.com"}, res.Accepted)
	assert.NotEmpty(t, res.MessageID)
	assert.Contains(t, string(res.Raw), "Subject: Hi")
}

func TestTransport_SendErrors(t *testing.T) {
	t.Parallel()

	tr, err := New(Config{Host: "smtp.example.com"})
	require.NoError(t, err)

	t.Run("no recipients", func(t *testing.T) {
		t.Parallel()
		_, err := tr.Send(t.Context(), &mailer.Message{Text: "x"})
		require.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("dial failure", func(t *testing.T) {
		t.Parallel()
		failing, err := New(Config{Host: "smtp.example.com"})
		require.NoError(t, err)
		boom := errors.New("connection refused")
		failing.send = func(*mail.Dialer, *mail.Message) error { return boom }

		_, err = failing.Send(t.Context(), &mailer.Message{To: []string{"a@example.com"}, Text: "x"})
		require.ErrorIs(t, err, ErrSendFailed)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		_, err := tr.Send(ctx, &mailer.Message{To: []string{"a@example.com"}, Text: "x"})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestXOAUTH2(t *testing.T) {
	t.Parallel()

	tr, err := New(Config{Host: "smtp.gmail.com", Username: "ada@example.com"},
		WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})))
	require.NoError(t, err)

	mech, resp, err := tr.auth.Start(nil)
	require.NoError(t, err)
	assert.Equal(t, "XOAUTH2", mech)
	assert.Equal(t, "user=ada@example.com\x01auth=Bearer tok\x01\x01", string(resp))

	next, err := tr.auth.Next(nil, false)
	require.NoError(t, err)
	assert.Nil(t, next)

	next, err = tr.auth.Next([]byte(`{"status":"401"}`), true)
	require.NoError(t, err)
	assert.Empty(t, next)

	d := tr.dialer(t.Context())
	assert.Same(t, tr.auth, d.Auth)
}
