package engine

import (
	"html/template"
	"maps"

	"github.com/yuin/goldmark"
)

// Option configures the built-in engines.
type Option func(*options)

type options struct {
	cache      *Cache
	funcs      template.FuncMap
	extensions []goldmark.Extender
	layoutDir  string
}

func newOptions(opts ...Option) *options {
	o := &options{
		funcs:     template.FuncMap{},
		layoutDir: "layouts",
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.cache == nil {
		o.cache = NewCache(0)
	}
	return o
}

// WithCache shares a parse cache between engines.
// Parsed templates are only cached for renders whose locals set cache=true.
func WithCache(c *Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithFuncs adds template functions available to gotemplate and markdown views.
func WithFuncs(funcs map[string]any) Option {
	return func(o *options) {
		maps.Copy(o.funcs, funcs)
	}
}

// WithLayoutDir sets the directory, relative to the views root, that markdown
// layouts are loaded from. Default: "layouts".
func WithLayoutDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.layoutDir = dir
		}
	}
}

// WithMarkdownExtensions adds goldmark extensions to the markdown engine.
func WithMarkdownExtensions(ext ...goldmark.Extender) Option {
	return func(o *options) {
		o.extensions = append(o.extensions, ext...)
	}
}
