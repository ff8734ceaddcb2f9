package mailtmpl

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// WithViewsRoot sets the directory templates are resolved against.
// Defaults to "emails".
func WithViewsRoot(root string) Option {
	return mailer.WithViewsRoot(root)
}

// WithFS resolves templates from fsys instead of the OS directory,
// e.g. an embed.FS or an s3fs.FS.
func WithFS(fsys fs.FS) Option {
	return mailer.WithFS(fsys)
}

// WithMessage sets default message fields such as From.
func WithMessage(msg Message) Option {
	return mailer.WithMessage(msg)
}

// WithLocals sets locals every template renders with.
func WithLocals(locals Locals) Option {
	return mailer.WithLocals(locals)
}

// WithTransport sets the delivery transport.
func WithTransport(t Transport) Option {
	return mailer.WithTransport(t)
}

// WithPreview shows every message through p before delivery.
func WithPreview(p Previewer) Option {
	return mailer.WithPreview(p)
}

// WithSubjectPrefix prepends prefix to every rendered subject.
func WithSubjectPrefix(prefix string) Option {
	return mailer.WithSubjectPrefix(prefix)
}

// WithEnvironment applies the defaults of env: development and test
// disable sending.
func WithEnvironment(env string) Option {
	return mailer.WithEnvironment(env)
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return mailer.WithLogger(l)
}
