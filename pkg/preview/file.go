package preview

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailtmpl/pkg/logger"
	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

// OpenFunc opens a written preview file, e.g. in a browser.
type OpenFunc func(ctx context.Context, path string) error

// FilePreviewer writes each message to an HTML file.
type FilePreviewer struct {
	open OpenFunc
	log  *slog.Logger
	now  func() time.Time
	dir  string
}

var _ mailer.Previewer = (*FilePreviewer)(nil)

// FileOption configures a FilePreviewer.
type FileOption func(*FilePreviewer)

// WithDir sets the output directory. Default: a "mailtmpl-preview"
// directory under os.TempDir.
func WithDir(dir string) FileOption {
	return func(p *FilePreviewer) {
		if dir != "" {
			p.dir = dir
		}
	}
}

// WithOpener sets the function called with each written file.
func WithOpener(fn OpenFunc) FileOption {
	return func(p *FilePreviewer) {
		p.open = fn
	}
}

// WithLogger sets the logger. Written paths are logged at info level.
func WithLogger(l *slog.Logger) FileOption {
	return func(p *FilePreviewer) {
		if l != nil {
			p.log = l
		}
	}
}

// NewFilePreviewer creates a file previewer.
func NewFilePreviewer(opts ...FileOption) *FilePreviewer {
	p := &FilePreviewer{
		dir: filepath.Join(os.TempDir(), "mailtmpl-preview"),
		log: logger.NewNope(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview implements mailer.Previewer.
func (p *FilePreviewer) Preview(ctx context.Context, msg *mailer.Message) error {
	if err := os.MkdirAll(p.dir, 0o750); err != nil {
		return fmt.Errorf("preview: create dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.html", p.now().UTC().Format("20060102T150405"), uuid.NewString()[:8])
	path := filepath.Join(p.dir, name)

	var buf bytes.Buffer
	if err := messagePage.Execute(&buf, newMessageView(Entry{ID: name, Message: msg})); err != nil {
		return fmt.Errorf("preview: render: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("preview: write: %w", err)
	}

	p.log.InfoContext(ctx, "email preview written", slog.String("path", path), slog.String("subject", msg.Subject))

	if p.open != nil {
		return p.open(ctx, path)
	}
	return nil
}
