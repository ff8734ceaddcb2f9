package resend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

func TestTagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"presence", struct{}{}, "true"},
		{"nil", nil, "true"},
		{"string", "welcome", "welcome"},
		{"bool", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"float", 1.5, "1.5"},
		{"stringer", time.Second, "1s"},
		{"other", []int{1}, "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tagValue(tt.in))
		})
	}
}

func TestConvertAttachments(t *testing.T) {
	t.Parallel()

	out := convertAttachments([]mailer.Attachment{
		{Filename: "a.pdf", ContentType: "application/pdf", ContentID: "cid1", Content: []byte("x")},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "a.pdf", out[0].Filename)
	assert.Equal(t, "application/pdf", out[0].ContentType)
	assert.Equal(t, "cid1", out[0].ContentId)
	assert.Equal(t, []byte("x"), out[0].Content)
}

func TestTransport_Send(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"re_123"}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := New(Config{
		APIKey:      "re_test",
		SenderEmail: "noreply@example.com",
		SenderName:  "App",
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)

	res, err := tr.Send(t.Context(), &mailer.Message{
		To:      []string{"ada@example.com"},
		BCC:     []string{"audit@example.com"},
		Subject: "Hi",
		HTML:    "<p>Hi</p>",
		Tags:    mailer.SimpleTags("welcome"),
	})
	require.NoError(t, err)

	assert.Equal(t, "re_123", res.MessageID)
	assert.Equal(t, "App <noreply@example.com>", res.Envelope.From)
	assert.Equal(t, []string{"ada@example.com", "audit@example.com"}, res.Envelope.To)
	assert.Equal(t, "App <noreply@example.com>", got["from"])
	assert.Equal(t, "Hi", got["subject"])
}

func TestTransport_SendError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"bad"}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := New(Config{APIKey: "re_test", SenderEmail: "a@example.com", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = tr.Send(t.Context(), &mailer.Message{To: []string{"b@example.com"}, Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend: failed to send email")
}
