package engine_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtmpl/pkg/engine"
)

func TestView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		view   engine.View
		ext    string
		stem   string
		isHTML bool
	}{
		{name: "html kind", view: engine.View{Name: "welcome/html.tmpl"}, ext: "tmpl", stem: "html", isHTML: true},
		{name: "subject kind", view: engine.View{Name: "welcome/subject.tmpl"}, ext: "tmpl", stem: "subject"},
		{name: "text kind", view: engine.View{Name: "welcome/text.md"}, ext: "md", stem: "text"},
		{name: "gohtml extension", view: engine.View{Name: "layout.gohtml"}, ext: "gohtml", stem: "layout", isHTML: true},
		{name: "no extension", view: engine.View{Name: "plain"}, ext: "", stem: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.ext, tt.view.Ext())
			require.Equal(t, tt.stem, tt.view.Stem())
			require.Equal(t, tt.isHTML, tt.view.IsHTML())
		})
	}
}

func TestFromSync(t *testing.T) {
	t.Parallel()

	fn := engine.FromSync(func(v engine.View, locals map[string]any) (string, error) {
		return v.Name + ":" + locals["name"].(string), nil
	})

	out, err := fn(context.Background(), engine.View{Name: "a"}, map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.Equal(t, "a:Ada", out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fn(ctx, engine.View{Name: "a"}, map[string]any{"name": "Ada"})
	require.ErrorIs(t, err, context.Canceled)

	require.Nil(t, engine.FromSync(nil))
}

func TestFromCallback(t *testing.T) {
	t.Parallel()

	t.Run("returns asynchronous result", func(t *testing.T) {
		t.Parallel()

		fn := engine.FromCallback(func(v engine.View, _ map[string]any, done func(string, error)) {
			go done("rendered "+v.Name, nil)
		})

		out, err := fn(context.Background(), engine.View{Name: "x"}, nil)
		require.NoError(t, err)
		require.Equal(t, "rendered x", out)
	})

	t.Run("observes only the first result", func(t *testing.T) {
		t.Parallel()

		fn := engine.FromCallback(func(_ engine.View, _ map[string]any, done func(string, error)) {
			done("first", nil)
			done("second", errors.New("ignored"))
		})

		out, err := fn(context.Background(), engine.View{}, nil)
		require.NoError(t, err)
		require.Equal(t, "first", out)
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		fn := engine.FromCallback(func(_ engine.View, _ map[string]any, done func(string, error)) {
			done("", boom)
		})

		_, err := fn(context.Background(), engine.View{}, nil)
		require.ErrorIs(t, err, boom)
	})

	t.Run("stops waiting on cancellation", func(t *testing.T) {
		t.Parallel()

		fn := engine.FromCallback(func(engine.View, map[string]any, func(string, error)) {})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := fn(ctx, engine.View{}, nil)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("default registers built-in engines", func(t *testing.T) {
		t.Parallel()

		reg := engine.Default()
		require.Equal(t, []string{engine.NameGoTemplate, engine.NameMarkdown}, reg.Names())
	})

	t.Run("rejects invalid registrations", func(t *testing.T) {
		t.Parallel()

		reg := engine.NewRegistry()
		require.ErrorIs(t, reg.Register("", engine.Templ(nil)), engine.ErrEmptyName)
		require.ErrorIs(t, reg.Register("x", nil), engine.ErrNilEngine)
		require.ErrorIs(t, reg.RegisterSync("x", nil), engine.ErrNilEngine)
		require.ErrorIs(t, reg.RegisterCallback("x", nil), engine.ErrNilEngine)
	})

	t.Run("clone is independent", func(t *testing.T) {
		t.Parallel()

		reg := engine.NewRegistry()
		clone := reg.Clone()
		require.NoError(t, clone.RegisterSync("x", func(engine.View, map[string]any) (string, error) { return "", nil }))

		_, ok := reg.Lookup("x")
		require.False(t, ok)
		_, ok = clone.Lookup("x")
		require.True(t, ok)
	})
}

func TestGoTemplate(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"welcome/html.tmpl":    {Data: []byte(`<b>Hi {{.name}}</b>`)},
		"welcome/subject.tmpl": {Data: []byte("  Hello {{.name}} & co  \n")},
		"welcome/text.tmpl":    {Data: []byte("Hi {{.name}}\n\nBye")},
		"broken/html.tmpl":     {Data: []byte(`{{.name`)},
	}
	g := engine.NewGoTemplate()
	ctx := context.Background()

	t.Run("escapes html views", func(t *testing.T) {
		t.Parallel()

		out, err := g.Render(ctx, engine.View{FS: fsys, Name: "welcome/html.tmpl"}, map[string]any{"name": "<Ada>"})
		require.NoError(t, err)
		require.Equal(t, "<b>Hi &lt;Ada&gt;</b>", out)
	})

	t.Run("does not escape subject views", func(t *testing.T) {
		t.Parallel()

		out, err := g.Render(ctx, engine.View{FS: fsys, Name: "welcome/subject.tmpl"}, map[string]any{"name": "Ada", "pretty": false})
		require.NoError(t, err)
		require.Equal(t, "Hello Ada & co", out)
	})

	t.Run("keeps paragraphs in text views", func(t *testing.T) {
		t.Parallel()

		out, err := g.Render(ctx, engine.View{FS: fsys, Name: "welcome/text.tmpl"}, map[string]any{"name": "Ada", "pretty": false})
		require.NoError(t, err)
		require.Equal(t, "Hi Ada\n\nBye", out)
	})

	t.Run("reports parse errors", func(t *testing.T) {
		t.Parallel()

		_, err := g.Render(ctx, engine.View{FS: fsys, Name: "broken/html.tmpl"}, nil)
		require.ErrorIs(t, err, engine.ErrRenderFailed)
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		_, err := g.Render(ctx, engine.View{FS: fsys, Name: "missing/html.tmpl"}, nil)
		require.Error(t, err)
	})
}

func TestGoTemplate_Cache(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"a/html.tmpl": {Data: []byte(`v1 {{.n}}`)}}
	cache := engine.NewCache(0)
	g := engine.NewGoTemplate(engine.WithCache(cache))
	view := engine.View{FS: fsys, Name: "a/html.tmpl", Path: "/views/a/html.tmpl"}
	ctx := context.Background()

	out, err := g.Render(ctx, view, map[string]any{"n": 1, "cache": true})
	require.NoError(t, err)
	require.Equal(t, "v1 1", out)
	require.Equal(t, 1, cache.Len())

	fsys["a/html.tmpl"] = &fstest.MapFile{Data: []byte(`v2 {{.n}}`)}

	out, err = g.Render(ctx, view, map[string]any{"n": 2, "cache": true})
	require.NoError(t, err)
	require.Equal(t, "v1 2", out, "cached parse is reused")

	out, err = g.Render(ctx, view, map[string]any{"n": 3})
	require.NoError(t, err)
	require.Equal(t, "v2 3", out, "cache disabled re-reads the file")

	cache.Invalidate(view)
	require.Equal(t, 0, cache.Len())
}

func TestGoTemplate_CacheSeparatesFilesystems(t *testing.T) {
	t.Parallel()

	cache := engine.NewCache(0)
	g := engine.NewGoTemplate(engine.WithCache(cache))
	ctx := context.Background()
	locals := map[string]any{"cache": true}

	first := fstest.MapFS{"a/html.tmpl": {Data: []byte(`first`)}}
	second := fstest.MapFS{"a/html.tmpl": {Data: []byte(`second`)}}

	out, err := g.Render(ctx, engine.View{FS: first, Name: "a/html.tmpl", Path: "views/a/html.tmpl"}, locals)
	require.NoError(t, err)
	require.Equal(t, "first", out)

	out, err = g.Render(ctx, engine.View{FS: second, Name: "a/html.tmpl", Path: "views/a/html.tmpl"}, locals)
	require.NoError(t, err)
	require.Equal(t, "second", out)
	require.Equal(t, 2, cache.Len())

	out, err = g.Render(ctx, engine.View{FS: first, Name: "a/html.tmpl", Path: "views/a/html.tmpl"}, locals)
	require.NoError(t, err)
	require.Equal(t, "first", out)
}

func TestGoTemplate_Funcs(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"a/text.tmpl": {Data: []byte(`{{shout .n}}`)}}
	g := engine.NewGoTemplate(engine.WithFuncs(map[string]any{
		"shout": func(s string) string { return s + "!" },
	}))

	out, err := g.Render(context.Background(), engine.View{FS: fsys, Name: "a/text.tmpl"}, map[string]any{"n": "hey"})
	require.NoError(t, err)
	require.Equal(t, "hey!", out)
}
