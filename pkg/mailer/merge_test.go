package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLocals(t *testing.T) {
	t.Parallel()

	defaults := Locals{
		"brand":  "Acme",
		"colors": []string{"red"},
		"user":   map[string]any{"name": "Default", "prefs": map[string]any{"theme": "dark", "lang": "en"}},
		"footer": true,
	}
	over := Locals{
		"colors": []string{"blue", "green"},
		"user":   map[string]any{"prefs": map[string]any{"lang": "de"}, "email": "ada@example.com"},
		"footer": nil,
		"extra":  nil,
	}

	got := mergeLocals(defaults, over)

	assert.Equal(t, Locals{
		"brand":  "Acme",
		"colors": []string{"blue", "green"},
		"user": map[string]any{
			"name":  "Default",
			"email": "ada@example.com",
			"prefs": map[string]any{"theme": "dark", "lang": "de"},
		},
		"footer": true,
		"extra":  nil,
	}, got)

	// Inputs are untouched.
	assert.Equal(t, map[string]any{"theme": "dark", "lang": "en"}, defaults["user"].(map[string]any)["prefs"])
	_, hasEmail := defaults["user"].(map[string]any)["email"]
	assert.False(t, hasEmail)
}

func TestMergeLocals_ScalarReplacesMap(t *testing.T) {
	t.Parallel()

	got := mergeLocals(Locals{"user": map[string]any{"name": "x"}}, Locals{"user": "anonymous"})
	assert.Equal(t, "anonymous", got["user"])

	got = mergeLocals(Locals{"user": "anonymous"}, Locals{"user": map[string]any{"name": "x"}})
	assert.Equal(t, map[string]any{"name": "x"}, got["user"])
}

func TestCloneLocals(t *testing.T) {
	t.Parallel()

	require.Nil(t, cloneLocals(nil))

	src := Locals{"nested": map[string]any{"a": 1}}
	dst := cloneLocals(src)
	dst["nested"].(map[string]any)["a"] = 2
	assert.Equal(t, 1, src["nested"].(map[string]any)["a"])
}

func TestMergeMessage(t *testing.T) {
	t.Parallel()

	defaults := Message{
		From:        "team@example.com",
		ReplyTo:     "support@example.com",
		To:          []string{"default@example.com"},
		Headers:     map[string]string{"X-App": "acme", "X-Env": "prod"},
		Tags:        SimpleTags("transactional"),
		Subject:     "Default subject",
		Attachments: []Attachment{{Filename: "terms.pdf"}},
	}
	over := Message{
		To:      []string{"ada@example.com"},
		CC:      []string{"boss@example.com"},
		Headers: map[string]string{"X-Env": "staging"},
		Tags:    Tags{"campaign": "spring"},
		Text:    "Hello",
	}

	got := mergeMessage(over, defaults)

	assert.Equal(t, "team@example.com", got.From)
	assert.Equal(t, "support@example.com", got.ReplyTo)
	assert.Equal(t, "Default subject", got.Subject)
	assert.Equal(t, "Hello", got.Text)
	assert.Equal(t, []string{"ada@example.com"}, got.To)
	assert.Equal(t, []string{"boss@example.com"}, got.CC)
	assert.Nil(t, got.BCC)
	assert.Equal(t, map[string]string{"X-App": "acme", "X-Env": "staging"}, got.Headers)
	assert.Equal(t, Tags{"transactional": struct{}{}, "campaign": "spring"}, got.Tags)
	assert.Nil(t, got.Attachments, "attachments bypass the merge")

	assert.Equal(t, map[string]string{"X-App": "acme", "X-Env": "prod"}, defaults.Headers)
}

func TestFillMessage(t *testing.T) {
	t.Parallel()

	msg := &Message{Subject: "Mine"}
	fillMessage(msg, &Message{Subject: "Rendered", HTML: "<p>x</p>", Text: "x"})

	assert.Equal(t, Message{Subject: "Mine", HTML: "<p>x</p>", Text: "x"}, *msg)
}
