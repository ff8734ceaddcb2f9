package mailer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
	"github.com/dmitrymomot/mailtmpl/pkg/htmltext"
)

// Assemble builds a message from tmpl's subject, html and text views.
// Fields already set on overrides are kept; rendered parts only fill gaps.
// Missing views are skipped. The result is rejected with ErrEmptyMessage when
// it carries no content and no attachments.
func (m *Mailer) Assemble(ctx context.Context, tmpl Template, locals Locals, overrides Message) (*Message, error) {
	msg := overrides

	if tmpl.Path != "" && (msg.Subject == "" || msg.HTML == "" || msg.Text == "") {
		parts, err := m.renderParts(ctx, tmpl, locals)
		if err != nil {
			return nil, err
		}
		fillMessage(&msg, &Message{
			Subject: parts[KindSubject],
			HTML:    parts[KindHTML],
			Text:    parts[KindText],
		})
	}

	if msg.Subject != "" {
		msg.Subject = strings.TrimSpace(m.cfg.SubjectPrefix + msg.Subject)
	}

	if msg.HTML != "" && msg.Text == "" && m.cfg.HTMLToText != nil {
		msg.Text = htmltext.FromString(msg.HTML, *m.cfg.HTMLToText)
	}

	if m.cfg.TextOnly {
		msg.HTML = ""
	}

	if blank(msg.Subject) && blank(msg.Text) && blank(msg.HTML) && len(msg.Attachments) == 0 {
		return nil, fmt.Errorf("%w: check that the files for the template %q exist", ErrEmptyMessage, tmpl.Path)
	}

	return &msg, nil
}

// renderParts renders the subject, html and text views of tmpl concurrently.
// The first failure cancels the others.
func (m *Mailer) renderParts(ctx context.Context, tmpl Template, locals Locals) (map[Kind]string, error) {
	out := make([]string, len(Kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range Kinds {
		g.Go(func() error {
			view := Template{
				Path:      m.cfg.GetPath(kind, tmpl.Path),
				Resources: tmpl.Resources,
			}
			if !m.cfg.CustomRender && !m.TemplateExists(ctx, view) {
				return nil
			}

			kindLocals := cloneLocals(locals)
			if kindLocals == nil {
				kindLocals = Locals{}
			}
			if kind != KindHTML {
				kindLocals[engine.LocalPretty] = false
			}

			s, err := m.renderKind(ctx, kind, view, kindLocals)
			if err != nil {
				if m.cfg.CustomRender && (errors.Is(err, ErrTemplateNotFound) || errors.Is(err, fs.ErrNotExist)) {
					return nil
				}
				return fmt.Errorf("%s: %w", kind, err)
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parts := make(map[Kind]string, len(Kinds))
	for i, kind := range Kinds {
		parts[kind] = out[i]
	}
	return parts, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
