package mailer_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// MockTransport is a mock implementation of the Transport interface.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	args := m.Called(ctx, msg)
	res, _ := args.Get(0).(*mailer.SendResult)
	return res, args.Error(1)
}

// fakeLocalizer records the activated locale under "active" in the locals it
// was registered against.
type localeUser struct {
	locale string
}

func (u localeUser) LastLocale() string { return u.locale }

type fakeLocalizer struct {
	field string
}

func (f fakeLocalizer) LastLocaleField() string { return f.field }

func (f fakeLocalizer) Register(locals map[string]any) mailer.LocaleContext {
	locals["active"] = "default"
	return fakeContext(locals)
}

type fakeContext map[string]any

func (c fakeContext) SetLocale(locale string) { c["active"] = locale }

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

// newMailer builds a Mailer over fsys with sending disabled.
func newMailer(t *testing.T, fsys fstest.MapFS, opts ...mailer.Option) *mailer.Mailer {
	t.Helper()

	base := []mailer.Option{
		mailer.WithFS(fsys),
		mailer.WithSend(false),
	}
	m, err := mailer.New(append(base, opts...)...)
	require.NoError(t, err)
	return m
}
