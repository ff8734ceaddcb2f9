package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger on stdout at info level. The template
// extractor is always installed; extractors add to it.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, slog.LevelInfo, extractors...)
}

// NewWithWriter creates a JSON logger writing to w at the given level.
func NewWithWriter(w io.Writer, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(WithContextAttrs(h, withTemplate(extractors)...))
}

// NewNope creates a logger that discards everything.
// Packages use it when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func withTemplate(extractors []ContextExtractor) []ContextExtractor {
	return append([]ContextExtractor{TemplateExtractor()}, extractors...)
}
