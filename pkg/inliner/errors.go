package inliner

import "errors"

var (
	// ErrInline is returned when CSS cannot be inlined into a document.
	ErrInline = errors.New("inliner: failed to inline css")

	// ErrFetch is returned when a linked stylesheet or image cannot be loaded.
	ErrFetch = errors.New("inliner: failed to fetch resource")
)
