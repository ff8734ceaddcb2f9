// Package engine defines the template engine contract used by the mail
// rendering pipeline and ships the built-in engines.
//
// An engine is a function from a resolved template file and a set of locals to
// a rendered string:
//
//	type Func func(ctx context.Context, view View, locals map[string]any) (string, error)
//
// Engines written in other shapes are normalised once, at registration time,
// so the rest of the pipeline only ever calls Func:
//
//	reg := engine.NewRegistry()
//	_ = reg.RegisterSync("upper", func(v engine.View, locals map[string]any) (string, error) {
//		b, err := fs.ReadFile(v.FS, v.Name)
//		return strings.ToUpper(string(b)), err
//	})
//	_ = reg.RegisterCallback("legacy", func(v engine.View, locals map[string]any, done func(string, error)) {
//		go func() { done(render(v, locals)) }()
//	})
//
// # Built-in Engines
//
//   - gotemplate: Go templates. Views named "html" (html.tmpl) or with a .gohtml
//     extension are parsed with html/template for contextual escaping; every
//     other view (subject, text) is parsed with text/template.
//   - markdown: text/template over markdown with YAML frontmatter, converted
//     to HTML with goldmark for html views (with optional layout wrapping and
//     the [!button|Label](url) syntax). Subject and text views return the
//     processed markdown source.
//   - templ: renders compiled templ components looked up by view name.
//
// Default returns a registry with gotemplate and markdown registered.
//
// # Locals
//
// Two locals have a meaning to the built-in engines:
//
//   - cache (bool): reuse parsed templates across renders (see Cache and Watch).
//   - pretty (bool): when false the output is trimmed, and for html views
//     whitespace-only lines are dropped.
package engine
