package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"maps"
	"path"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Markdown renders markdown views with YAML frontmatter.
// The body is executed as a text/template with the locals (plus a Metadata
// key holding the frontmatter). HTML views are then converted with goldmark
// and wrapped in the layout named by the "layout" frontmatter key, if any.
type Markdown struct {
	opts *options
	md   goldmark.Markdown
}

type markdownView struct {
	meta map[string]any
	body *texttemplate.Template
}

// NewMarkdown creates the markdown engine.
func NewMarkdown(opts ...Option) *Markdown {
	return newMarkdown(newOptions(opts...))
}

func newMarkdown(o *options) *Markdown {
	ext := append([]goldmark.Extender{ButtonExtension()}, o.extensions...)
	return &Markdown{
		opts: o,
		md:   goldmark.New(goldmark.WithExtensions(ext...)),
	}
}

// Render implements Func.
func (m *Markdown) Render(ctx context.Context, view View, locals map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	useCache := cacheEnabled(locals)
	parsed, err := cached(m.opts.cache, useCache, view, func() (*markdownView, error) {
		return m.parse(view)
	})
	if err != nil {
		return "", err
	}

	data := maps.Clone(locals)
	if data == nil {
		data = map[string]any{}
	}
	data["Metadata"] = parsed.meta

	var source bytes.Buffer
	if err := parsed.body.Execute(&source, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
	}

	if !view.IsHTML() {
		return finish(source.String(), view, locals), nil
	}

	var body bytes.Buffer
	if err := m.md.Convert(source.Bytes(), &body); err != nil {
		return "", fmt.Errorf("%w: %s: converting markdown: %v", ErrRenderFailed, view.label(), err)
	}

	layoutName, _ := parsed.meta["layout"].(string)
	if layoutName == "" {
		return finish(body.String(), view, locals), nil
	}

	layoutView := View{
		FS:   view.FS,
		Name: path.Join(m.opts.layoutDir, layoutName),
	}
	layoutView.Path = strings.TrimSuffix(view.Path, view.Name) + layoutView.Name

	layout, err := cached(m.opts.cache, useCache, layoutView, func() (*htmltemplate.Template, error) {
		return m.parseLayout(layoutView)
	})
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = layout.Execute(&out, map[string]any{
		"Content":  htmltemplate.HTML(body.String()),
		"Metadata": parsed.meta,
		"Locals":   locals,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: executing layout: %v", ErrRenderFailed, layoutView.label(), err)
	}

	return finish(out.String(), view, locals), nil
}

func (m *Markdown) parse(view View) (*markdownView, error) {
	content, err := fs.ReadFile(view.FS, view.Name)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", view.label(), err)
	}

	body, err := texttemplate.New(view.Name).Funcs(texttemplate.FuncMap(m.opts.funcs)).Parse(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
	}

	return &markdownView{meta: doc.Metadata, body: body}, nil
}

func (m *Markdown) parseLayout(view View) (*htmltemplate.Template, error) {
	content, err := fs.ReadFile(view.FS, view.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, view.Name)
	}
	if err != nil {
		return nil, err
	}

	t, err := htmltemplate.New(view.Name).Funcs(m.opts.funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
	}
	return t, nil
}
