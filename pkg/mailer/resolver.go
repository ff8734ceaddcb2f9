package mailer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailtmpl/pkg/inliner"
)

// ResolvedPath is a template reference located on a filesystem.
type ResolvedPath struct {
	FS           fs.FS
	Resources    *inliner.Options
	FilePath     string // root-qualified path for diagnostics and cache keys
	RelativePath string // slash-separated path inside FS
	Ext          string // extension without the leading dot
}

// Resolve locates the file behind tmpl. An absolute path searches its own
// directory; anything else searches the configured views.
// Candidates are tried in order: the path as given when it already has an
// extension, path.<ext>, then path/index.<ext>.
func (m *Mailer) Resolve(tmpl Template) (*ResolvedPath, error) {
	if tmpl.Path == "" {
		return nil, fmt.Errorf("%w: empty template path", ErrTemplateNotFound)
	}

	fsys, root, view := m.cfg.Views.FS, m.cfg.Views.Root, filepath.ToSlash(tmpl.Path)
	if filepath.IsAbs(tmpl.Path) {
		root = filepath.Dir(tmpl.Path)
		fsys = os.DirFS(root)
		view = filepath.Base(tmpl.Path)
	}
	view = strings.TrimPrefix(path.Clean(view), "/")

	for _, name := range m.candidates(view) {
		info, err := fs.Stat(fsys, name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return &ResolvedPath{
			FS:           fsys,
			Resources:    tmpl.Resources,
			FilePath:     path.Join(filepath.ToSlash(root), name),
			RelativePath: name,
			Ext:          strings.TrimPrefix(path.Ext(name), "."),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, tmpl.Path)
}

func (m *Mailer) candidates(view string) []string {
	ext := m.cfg.Views.Options.Extension
	out := make([]string, 0, 3)
	if path.Ext(view) != "" {
		out = append(out, view)
	}
	return append(out, view+"."+ext, path.Join(view, "index."+ext))
}

// TemplateExists reports whether tmpl resolves to a regular file.
// It never fails: lookup and filesystem errors report false.
func (m *Mailer) TemplateExists(ctx context.Context, tmpl Template) bool {
	if ctx.Err() != nil {
		return false
	}
	_, err := m.Resolve(tmpl)
	return err == nil
}
