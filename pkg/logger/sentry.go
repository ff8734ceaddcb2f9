package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"         env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `yaml:"release"     env:"SENTRY_RELEASE"`
	// MinLevel is the lowest level stored as a Sentry log. Errors always
	// create issues.
	MinLevel slog.Level `yaml:"min_level"`
}

// NewWithSentry creates a logger writing JSON to stdout and reporting to
// Sentry. Render and delivery failures logged at error level become Sentry
// issues tagged with the template name. With an empty DSN only stdout is used.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	extractors = withTemplate(extractors)

	if cfg.DSN == "" {
		return slog.New(WithContextAttrs(stdout, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(WithContextAttrs(stdout, extractors...))
	}

	return slog.New(WithContextAttrs(fanout{stdout, sentryHandler(cfg.MinLevel)}, extractors...))
}

func sentryHandler(minLevel slog.Level) slog.Handler {
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if minLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}
