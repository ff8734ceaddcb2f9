package mailer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/mailer"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"welcome/html.tmpl":       file("<p>hi</p>"),
		"welcome/subject.md":      file("Hi"),
		"reset/index.tmpl":        file("reset"),
		"notes.txt":               file("notes"),
		"invoice/html/index.tmpl": file("<p>invoice</p>"),
	}
	m := newMailer(t, fsys)

	tests := []struct {
		name string
		path string
		want string
		ext  string
	}{
		{name: "default extension", path: "welcome/html", want: "welcome/html.tmpl", ext: "tmpl"},
		{name: "explicit extension", path: "welcome/subject.md", want: "welcome/subject.md", ext: "md"},
		{name: "index file", path: "reset", want: "reset/index.tmpl", ext: "tmpl"},
		{name: "index inside part directory", path: "invoice/html", want: "invoice/html/index.tmpl", ext: "tmpl"},
		{name: "explicit non-template extension", path: "notes.txt", want: "notes.txt", ext: "txt"},
		{name: "dot segments cleaned", path: "welcome/./html", want: "welcome/html.tmpl", ext: "tmpl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rp, err := m.Resolve(mailer.T(tt.path))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rp.RelativePath)
			assert.Equal(t, tt.ext, rp.Ext)
			assert.Equal(t, "emails/"+tt.want, rp.FilePath)
		})
	}
}

func TestResolve_NotFound(t *testing.T) {
	t.Parallel()

	m := newMailer(t, fstest.MapFS{
		"dir.tmpl/nested.tmpl": file("nested"),
	})

	for _, p := range []string{"", "missing", "missing/html", "dir", "../escape"} {
		_, err := m.Resolve(mailer.T(p))
		require.ErrorIs(t, err, mailer.ErrTemplateNotFound, "path %q", p)
	}
}

func TestResolve_KeepsResources(t *testing.T) {
	t.Parallel()

	m := newMailer(t, fstest.MapFS{"a.tmpl": file("a")})
	tmpl := mailer.Template{Path: "a"}
	rp, err := m.Resolve(tmpl)
	require.NoError(t, err)
	assert.Nil(t, rp.Resources)
}

func TestResolve_AbsolutePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "standalone.tmpl"), []byte("Hello {{.name}}"), 0o600))

	m := newMailer(t, fstest.MapFS{})

	rp, err := m.Resolve(mailer.T(filepath.Join(dir, "standalone")))
	require.NoError(t, err)
	assert.Equal(t, "standalone.tmpl", rp.RelativePath)

	out, err := m.Render(context.Background(), mailer.T(filepath.Join(dir, "standalone")), mailer.Locals{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)
}

func TestTemplateExists(t *testing.T) {
	t.Parallel()

	m := newMailer(t, fstest.MapFS{
		"welcome/html.tmpl":    file("<p>hi</p>"),
		"dir.tmpl/nested.tmpl": file("nested"),
	})
	ctx := context.Background()

	assert.True(t, m.TemplateExists(ctx, mailer.T("welcome/html")))
	assert.False(t, m.TemplateExists(ctx, mailer.T("welcome/text")))
	assert.False(t, m.TemplateExists(ctx, mailer.T("dir")))
	assert.False(t, m.TemplateExists(ctx, mailer.T("")))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.False(t, m.TemplateExists(cancelled, mailer.T("welcome/html")))
}
