package engine

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	texttemplate "text/template"
)

// Engine names registered by Default.
const (
	NameGoTemplate = "gotemplate"
	NameMarkdown   = "markdown"
	NameTempl      = "templ"
)

type executor interface {
	Execute(w io.Writer, data any) error
}

// GoTemplate renders views with html/template or text/template depending on
// whether the view produces HTML.
type GoTemplate struct {
	opts *options
}

// NewGoTemplate creates the Go template engine.
func NewGoTemplate(opts ...Option) *GoTemplate {
	return newGoTemplate(newOptions(opts...))
}

func newGoTemplate(o *options) *GoTemplate {
	return &GoTemplate{opts: o}
}

// Render implements Func.
func (g *GoTemplate) Render(ctx context.Context, view View, locals map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := cached(g.opts.cache, cacheEnabled(locals), view, func() (executor, error) {
		return g.parse(view)
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, locals); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
	}

	return finish(buf.String(), view, locals), nil
}

func (g *GoTemplate) parse(view View) (executor, error) {
	content, err := fs.ReadFile(view.FS, view.Name)
	if err != nil {
		return nil, err
	}

	if view.IsHTML() {
		t, err := htmltemplate.New(view.Name).Funcs(g.opts.funcs).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
		}
		return t, nil
	}

	t, err := texttemplate.New(view.Name).Funcs(texttemplate.FuncMap(g.opts.funcs)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
	}
	return t, nil
}
