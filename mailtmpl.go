package mailtmpl

import (
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// Type aliases - public API
type (
	// Mailer renders templates and sends the resulting messages.
	Mailer = mailer.Mailer

	// Option configures a Mailer.
	Option = mailer.Option

	// Message is an outbound email.
	Message = mailer.Message

	// Attachment is a file attached to a Message.
	Attachment = mailer.Attachment

	// Template references a template directory.
	Template = mailer.Template

	// Locals are the values templates render against.
	Locals = mailer.Locals

	// SendParams describes one Send call.
	SendParams = mailer.SendParams

	// SendResult describes a delivery attempt.
	SendResult = mailer.SendResult

	// Transport delivers assembled messages.
	Transport = mailer.Transport

	// Previewer shows messages to developers.
	Previewer = mailer.Previewer
)

// Environments understood by WithEnvironment and Config.Environment.
const (
	EnvDevelopment = mailer.EnvDevelopment
	EnvTest        = mailer.EnvTest
	EnvProduction  = mailer.EnvProduction
)

// Error sentinels re-exported for errors.Is checks.
var (
	ErrTemplateNotFound = mailer.ErrTemplateNotFound
	ErrEngineNotFound   = mailer.ErrEngineNotFound
	ErrEmptyMessage     = mailer.ErrEmptyMessage
	ErrRenderFailed     = mailer.ErrRenderFailed
	ErrSendFailed       = mailer.ErrSendFailed
	ErrNoTransport      = mailer.ErrNoTransport
	ErrInline           = mailer.ErrInline
	ErrConfigMismatch   = mailer.ErrConfigMismatch
	ErrInvalidConfig    = mailer.ErrInvalidConfig
)

// New creates a Mailer. See the mailer package for every option.
func New(opts ...Option) (*Mailer, error) {
	return mailer.New(opts...)
}

// T references a template without per-call CSS resources.
func T(path string) Template {
	return mailer.T(path)
}

// Recipient formats a display name and address as "Name <email>".
func Recipient(name, email string) string {
	return mailer.Recipient(name, email)
}
