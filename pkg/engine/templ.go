package engine

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/a-h/templ"
)

// ComponentFunc builds a templ component from render locals.
type ComponentFunc func(locals map[string]any) templ.Component

// Templ returns an engine for compiled templ components.
// Components are looked up by the view name without its extension, so the
// view "welcome/html.templ" renders components["welcome/html"]. The .templ
// source file only has to exist for path resolution to succeed.
func Templ(components map[string]ComponentFunc) Func {
	registered := maps.Clone(components)

	return func(ctx context.Context, view View, locals map[string]any) (string, error) {
		name := strings.TrimSuffix(view.Name, "."+view.Ext())
		build, ok := registered[name]
		if !ok || build == nil {
			return "", fmt.Errorf("%w: %s", ErrComponentNotFound, name)
		}

		var sb strings.Builder
		if err := build(locals).Render(ctx, &sb); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, view.label(), err)
		}
		return finish(sb.String(), view, locals), nil
	}
}
