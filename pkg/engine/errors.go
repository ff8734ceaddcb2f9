package engine

import "errors"

var (
	// ErrEmptyName is returned when registering an engine without a name.
	ErrEmptyName = errors.New("engine: name cannot be empty")

	// ErrNilEngine is returned when registering a nil engine function.
	ErrNilEngine = errors.New("engine: engine function cannot be nil")

	// ErrRenderFailed wraps template parse and execution failures.
	ErrRenderFailed = errors.New("engine: render failed")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter in a markdown view.
	ErrInvalidFrontmatter = errors.New("engine: invalid frontmatter")

	// ErrLayoutNotFound indicates the layout referenced by a markdown view is missing.
	ErrLayoutNotFound = errors.New("engine: layout not found")

	// ErrComponentNotFound indicates no templ component is registered for a view.
	ErrComponentNotFound = errors.New("engine: component not found")
)
