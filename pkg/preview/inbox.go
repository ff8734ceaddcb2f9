package preview

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// DefaultCapacity is the number of messages an Inbox keeps by default.
const DefaultCapacity = 50

// Entry is a previewed message.
type Entry struct {
	ReceivedAt time.Time       `json:"received_at"`
	Message    *mailer.Message `json:"message"`
	ID         string          `json:"id"`
}

// Inbox is an in-memory previewer holding the newest messages.
// It is safe for concurrent use.
type Inbox struct {
	now     func() time.Time
	entries []Entry
	limit   int
	mu      sync.RWMutex
}

var _ mailer.Previewer = (*Inbox)(nil)

// NewInbox creates an inbox holding at most limit messages.
// A non-positive limit uses DefaultCapacity.
func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = DefaultCapacity
	}
	return &Inbox{limit: limit, now: time.Now}
}

// Preview implements mailer.Previewer.
func (in *Inbox) Preview(ctx context.Context, msg *mailer.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := Entry{ID: uuid.NewString(), Message: msg, ReceivedAt: in.now()}

	in.mu.Lock()
	defer in.mu.Unlock()
	in.entries = append(in.entries, e)
	if over := len(in.entries) - in.limit; over > 0 {
		in.entries = slices.Delete(in.entries, 0, over)
	}
	return nil
}

// List returns the messages newest first.
func (in *Inbox) List() []Entry {
	in.mu.RLock()
	defer in.mu.RUnlock()

	out := slices.Clone(in.entries)
	slices.Reverse(out)
	return out
}

// Get returns the entry with the given ID.
func (in *Inbox) Get(id string) (Entry, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	for _, e := range in.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of held messages.
func (in *Inbox) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.entries)
}

// Clear drops every message.
func (in *Inbox) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.entries = nil
}
