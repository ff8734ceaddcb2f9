package mailer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

// Render renders a single view. An .html view is returned verbatim when no
// engine map is configured; every other view goes through the engine its
// extension maps to, and the output is CSS-inlined when juice is enabled.
func (m *Mailer) Render(ctx context.Context, tmpl Template, locals Locals) (string, error) {
	return m.renderView(ctx, tmpl, locals, m.cfg.Juice)
}

// renderKind renders one message part. Only the html part is inlined; the
// subject and text parts are plain text.
func (m *Mailer) renderKind(ctx context.Context, kind Kind, tmpl Template, locals Locals) (string, error) {
	if m.cfg.Render != nil {
		return m.cfg.Render(ctx, tmpl, locals)
	}
	return m.renderView(ctx, tmpl, locals, m.cfg.Juice && kind == KindHTML)
}

func (m *Mailer) renderView(ctx context.Context, tmpl Template, locals Locals, inline bool) (string, error) {
	start := time.Now()
	out, name, err := m.render(ctx, tmpl, locals, inline)
	m.cfg.Metrics.observeRender(name, err, time.Since(start))
	if err != nil {
		m.log.ErrorContext(ctx, "render failed",
			slog.String("view", tmpl.Path),
			slog.String("error", err.Error()),
		)
	}
	return out, err
}

func (m *Mailer) render(ctx context.Context, tmpl Template, locals Locals, inline bool) (string, string, error) {
	rp, err := m.Resolve(tmpl)
	if err != nil {
		return "", "", err
	}

	view := engine.View{FS: rp.FS, Name: rp.RelativePath, Path: rp.FilePath}

	if rp.Ext == "html" && len(m.cfg.Views.Options.Map) == 0 {
		b, err := fs.ReadFile(rp.FS, rp.RelativePath)
		if err != nil {
			return "", "", errors.Join(ErrRenderFailed, err)
		}
		return string(b), "", nil
	}

	name := rp.Ext
	if mapped, ok := m.cfg.Views.Options.Map[rp.Ext]; ok {
		name = mapped
	}
	fn, ok := m.engines.Lookup(name)
	if !ok {
		return "", name, fmt.Errorf("%w: %q (extension %q)", ErrEngineNotFound, name, rp.Ext)
	}

	locals = cloneLocals(locals)
	if locals == nil {
		locals = Locals{}
	}
	if err := m.localize(locals); err != nil {
		return "", name, err
	}

	out, err := fn(ctx, view, locals)
	if err != nil {
		return "", name, errors.Join(ErrRenderFailed, fmt.Errorf("%s: %w", rp.FilePath, err))
	}

	if !inline {
		return out, name, nil
	}
	out, err = m.InlineCSS(ctx, out, rp.Resources)
	return out, name, err
}

// InlineCSS inlines the stylesheets of html with res merged over the
// configured resources. It is meant for custom render functions.
func (m *Mailer) InlineCSS(ctx context.Context, html string, res *inliner.Options) (string, error) {
	opts := m.cfg.JuiceResources
	if res != nil {
		merged, err := opts.Merge(*res)
		if err != nil {
			return "", errors.Join(ErrInline, err)
		}
		opts = merged
	}
	return m.inliner.Inline(ctx, html, opts)
}
