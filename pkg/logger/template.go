package logger

import (
	"context"
	"log/slog"
)

type templateKey struct{}

// WithTemplate stores the template being rendered in ctx.
func WithTemplate(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, templateKey{}, name)
}

// TemplateFrom returns the template stored by WithTemplate.
func TemplateFrom(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(templateKey{}).(string)
	return name, ok && name != ""
}

// TemplateExtractor adds a "template" attribute to every record logged
// with a context carrying WithTemplate.
func TemplateExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		name, ok := TemplateFrom(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("template", name), true
	}
}
