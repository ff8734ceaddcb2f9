package mailer

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// JSONTransport performs no network I/O. It records every message and
// returns its JSON encoding as the raw result.
type JSONTransport struct {
	sent []*Message
	mu   sync.Mutex
}

// NewJSONTransport creates an empty JSONTransport.
func NewJSONTransport() *JSONTransport {
	return &JSONTransport{}
}

// Send implements Transport.
func (t *JSONTransport) Send(ctx context.Context, msg *Message) (*SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.sent = append(t.sent, msg)
	t.mu.Unlock()

	env := EnvelopeOf(msg)
	return &SendResult{
		MessageID: "<" + uuid.NewString() + "@mailtmpl>",
		Envelope:  env,
		Accepted:  env.To,
		Response:  "250 dry run",
		Raw:       raw,
	}, nil
}

// Messages returns the recorded messages in send order.
func (t *JSONTransport) Messages() []*Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.sent)
}

// Reset forgets the recorded messages.
func (t *JSONTransport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = nil
}
