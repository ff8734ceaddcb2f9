package engine

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps engine names to engine functions.
type Registry struct {
	engines map[string]Func
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Func)}
}

// Default returns a registry with the gotemplate and markdown engines.
// Both share one parse cache built from the given options.
func Default(opts ...Option) *Registry {
	o := newOptions(opts...)
	r := NewRegistry()
	r.engines[NameGoTemplate] = newGoTemplate(o).Render
	r.engines[NameMarkdown] = newMarkdown(o).Render
	return r
}

// Register adds or replaces an engine.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilEngine
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engines[name] = fn
	return nil
}

// RegisterSync adds a synchronous engine.
func (r *Registry) RegisterSync(name string, fn SyncFunc) error {
	return r.Register(name, FromSync(fn))
}

// RegisterCallback adds a callback-style engine.
func (r *Registry) RegisterCallback(name string, fn CallbackFunc) error {
	return r.Register(name, FromCallback(fn))
}

// Lookup returns the engine registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.engines[name]
	return fn, ok
}

// Names returns the registered engine names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.engines))
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{engines: maps.Clone(r.engines)}
}
