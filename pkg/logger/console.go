package logger

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// NewConsole creates a colored, human-readable logger for local
// development, e.g. while previewing templates.
func NewConsole(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "mailtmpl",
	})
	return slog.New(WithContextAttrs(h, extractors...))
}
