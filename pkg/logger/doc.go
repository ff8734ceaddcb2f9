// Package logger builds the slog loggers used across mailtmpl.
//
// Every logger carries the template extractor: records logged with a
// context from WithTemplate gain a "template" attribute, so a failed render
// or delivery can be traced back to the view that produced it.
//
//	log := logger.New()
//	m, _ := mailer.New(mailer.WithLogger(log))
//	// {"level":"ERROR","msg":"render failed","template":"welcome/html",...}
//
// NewConsole gives colored output for local development. NewWithSentry
// additionally reports errors to Sentry and falls back to stdout when no
// DSN is set. NewNope discards everything and is the default of every
// package that accepts a logger.
//
// Extra ContextExtractors add request-scoped attributes such as a tenant
// or request ID.
package logger
