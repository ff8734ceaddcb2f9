package engine_test

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("with frontmatter", func(t *testing.T) {
		t.Parallel()

		doc, err := engine.ParseDocument([]byte("---\nlayout: base.html\nAuthor: System\n---\n# Hello\n\nBody.\n"))
		require.NoError(t, err)
		require.Equal(t, "base.html", doc.Metadata["layout"])
		require.Equal(t, "System", doc.Metadata["Author"])
		require.Equal(t, "# Hello\n\nBody.\n", doc.Body)
	})

	t.Run("without frontmatter", func(t *testing.T) {
		t.Parallel()

		content := []byte("# Hello\n\nplain markdown")
		doc, err := engine.ParseDocument(content)
		require.NoError(t, err)
		require.Empty(t, doc.Metadata)
		require.Equal(t, string(content), doc.Body)
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		t.Parallel()

		doc, err := engine.ParseDocument([]byte("---\n\n---\nBody."))
		require.NoError(t, err)
		require.Empty(t, doc.Metadata)
		require.Equal(t, "Body.", doc.Body)
	})

	t.Run("crlf after closing fence", func(t *testing.T) {
		t.Parallel()

		doc, err := engine.ParseDocument([]byte("---\r\na: b\r\n---\r\nBody"))
		require.NoError(t, err)
		require.Equal(t, "Body", doc.Body)
	})

	t.Run("missing closing fence", func(t *testing.T) {
		t.Parallel()

		_, err := engine.ParseDocument([]byte("---\nSubject: Test\nBody"))
		require.ErrorIs(t, err, engine.ErrInvalidFrontmatter)
	})

	t.Run("nothing after opening fence", func(t *testing.T) {
		t.Parallel()

		_, err := engine.ParseDocument([]byte("---\n"))
		require.ErrorIs(t, err, engine.ErrInvalidFrontmatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := engine.ParseDocument([]byte("---\n: : :\n  - [\n---\nBody"))
		require.ErrorIs(t, err, engine.ErrInvalidFrontmatter)
	})
}

func TestButtonExtension(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(engine.ButtonExtension()))

	convert := func(t *testing.T, src string) string {
		t.Helper()
		var buf bytes.Buffer
		require.NoError(t, md.Convert([]byte(src), &buf))
		return buf.String()
	}

	t.Run("renders button", func(t *testing.T) {
		t.Parallel()
		require.Contains(t, convert(t, `[!button|Click Me](https://example.com)`),
			`<a href="https://example.com" class="btn">Click Me</a>`)
	})

	t.Run("escapes label", func(t *testing.T) {
		t.Parallel()
		out := convert(t, `[!button|<script>x</script>](https://example.com)`)
		require.NotContains(t, out, "<script>")
		require.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("neutralises dangerous urls", func(t *testing.T) {
		t.Parallel()
		out := convert(t, `[!button|Go](javascript:alert(1)`)
		require.NotContains(t, out, "javascript:")
	})

	t.Run("leaves regular links alone", func(t *testing.T) {
		t.Parallel()
		out := convert(t, `[Docs](https://example.com/docs)`)
		require.Contains(t, out, `<a href="https://example.com/docs">Docs</a>`)
		require.NotContains(t, out, `class="btn"`)
	})

	t.Run("works inside paragraphs", func(t *testing.T) {
		t.Parallel()
		out := convert(t, "# Welcome\n\nPlease verify:\n\n[!button|Verify](https://example.com/v)\n\nThanks!")
		require.Contains(t, out, "<h1>Welcome</h1>")
		require.Contains(t, out, `class="btn">Verify</a>`)
		require.Contains(t, out, "<p>Thanks!</p>")
	})
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(`<html><body>{{.Content}}<p>{{.Metadata.footer}}</p></body></html>`)},
		"welcome/html.md": {Data: []byte("---\nlayout: base.html\nfooter: Bye\n---\nHello **{{.name}}**!\n")},
		"plain/html.md":   {Data: []byte("Hello *{{.name}}*")},
		"welcome/text.md": {Data: []byte("Hello **{{.name}}**!\n")},
		"orphan/html.md":  {Data: []byte("---\nlayout: missing.html\n---\nx")},
	}
	m := engine.NewMarkdown()
	ctx := context.Background()

	t.Run("wraps html in layout", func(t *testing.T) {
		t.Parallel()

		out, err := m.Render(ctx, engine.View{FS: fsys, Name: "welcome/html.md"}, map[string]any{"name": "Ada"})
		require.NoError(t, err)
		require.Contains(t, out, "<html><body><p>Hello <strong>Ada</strong>!</p>")
		require.Contains(t, out, "<p>Bye</p>")
	})

	t.Run("renders html without layout", func(t *testing.T) {
		t.Parallel()

		out, err := m.Render(ctx, engine.View{FS: fsys, Name: "plain/html.md"}, map[string]any{"name": "Ada"})
		require.NoError(t, err)
		require.Equal(t, "<p>Hello <em>Ada</em></p>\n", out)
	})

	t.Run("returns processed markdown for text views", func(t *testing.T) {
		t.Parallel()

		out, err := m.Render(ctx, engine.View{FS: fsys, Name: "welcome/text.md"}, map[string]any{"name": "Ada", "pretty": false})
		require.NoError(t, err)
		require.Equal(t, "Hello **Ada**!", out)
	})

	t.Run("missing layout", func(t *testing.T) {
		t.Parallel()

		_, err := m.Render(ctx, engine.View{FS: fsys, Name: "orphan/html.md"}, nil)
		require.ErrorIs(t, err, engine.ErrLayoutNotFound)
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	fn := engine.Templ(map[string]engine.ComponentFunc{
		"welcome/html": func(locals map[string]any) templ.Component {
			return templ.Raw("<p>Hi " + locals["name"].(string) + "</p>")
		},
	})

	out, err := fn(context.Background(), engine.View{Name: "welcome/html.templ"}, map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.Equal(t, "<p>Hi Ada</p>", out)

	_, err = fn(context.Background(), engine.View{Name: "welcome/text.templ"}, nil)
	require.ErrorIs(t, err, engine.ErrComponentNotFound)
}
