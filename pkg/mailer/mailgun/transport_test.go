package mailgun

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Domain: "mg.example.com"})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(Config{APIKey: "key"})
	require.ErrorIs(t, err, ErrMissingDomain)

	tr, err := New(Config{APIKey: "key", Domain: "mg.example.com", Region: "eu"})
	require.NoError(t, err)
	assert.Equal(t, euAPIBase, tr.client.APIBase())
}

func TestTagNames(t *testing.T) {
	t.Parallel()

	assert.Nil(t, tagNames(nil))
	assert.Equal(t, []string{"a", "b"}, tagNames(mailer.Tags{"b": "x", "a": struct{}{}}))
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	type form struct {
		from, to, subject, html, text, tag string
	}
	got := make(chan form, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/mg.example.com/messages") {
			http.NotFound(w, r)
			return
		}
		got <- form{
			from:    r.FormValue("from"),
			to:      r.FormValue("to"),
			subject: r.FormValue("subject"),
			html:    r.FormValue("html"),
			text:    r.FormValue("text"),
			tag:     r.FormValue("o:tag"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<20240101.1@mg.example.com>","message":"Queued. Thank you."}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := New(Config{
		APIKey:      "key",
		Domain:      "mg.example.com",
		SenderEmail: "noreply@example.com",
		BaseURL:     srv.URL + "/v3",
	})
	require.NoError(t, err)

	res, err := tr.Send(t.Context(), &mailer.Message{
		To:      []string{"ada@example.com"},
		Subject: "Welcome",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Tags:    mailer.SimpleTags("welcome"),
	})
	require.NoError(t, err)

	f := <-got
	assert.Equal(t, "noreply@example.com", f.from)
	assert.Equal(t, "ada@example.com", f.to)
	assert.Equal(t, "Welcome", f.subject)
	assert.Equal(t, "<p>Hi</p>", f.html)
	assert.Equal(t, "Hi", f.text)
	assert.Equal(t, "welcome", f.tag)

	assert.Equal(t, "<20240101.1@mg.example.com>", res.MessageID)
	assert.Equal(t, "Queued. Thank you.", res.Response)
	assert.Equal(t, []string{"ada@example.com"}, res.Accepted)
}

func TestTransport_SendNoRecipients(t *testing.T) {
	t.Parallel()

	tr, err := New(Config{APIKey: "key", Domain: "mg.example.com"})
	require.NoError(t, err)

	_, err = tr.Send(t.Context(), &mailer.Message{Text: "x"})
	require.ErrorIs(t, err, ErrNoRecipients)
}
