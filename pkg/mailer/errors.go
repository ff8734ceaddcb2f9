package mailer

import (
	"errors"

	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

var (
	// ErrTemplateNotFound indicates no file matched the template reference.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrEngineNotFound indicates the template extension maps to no registered engine.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrConfigMismatch indicates the pipeline and the localizer disagree on the
	// last-locale field name.
	ErrConfigMismatch = errors.New("last locale field mismatch")

	// ErrInline indicates CSS inlining or resource fetching failed.
	ErrInline = inliner.ErrInline

	// ErrEmptyMessage indicates the assembled message has no subject, html,
	// text or attachments.
	ErrEmptyMessage = errors.New("no content for subject, html, text, nor attachments")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNoTransport indicates sending is enabled but no transport is configured.
	ErrNoTransport = errors.New("no transport configured")

	// ErrInvalidConfig indicates an option received an unusable value.
	ErrInvalidConfig = errors.New("invalid mailer config")
)
