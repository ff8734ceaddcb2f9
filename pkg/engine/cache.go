package engine

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds parsed templates keyed by filesystem and view path.
// It stores parsed structure only, never rendered output.
type Cache struct {
	store *gocache.Cache
}

// NewCache creates a parse cache. A zero ttl keeps entries until Flush.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Flush drops every cached template.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Invalidate drops the cached template for view.
func (c *Cache) Invalidate(view View) {
	c.store.Delete(view.key())
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func (c *Cache) get(key string) (any, bool) {
	return c.store.Get(key)
}

func (c *Cache) set(key string, v any) {
	c.store.Set(key, v, gocache.DefaultExpiration)
}

// cached returns the parsed value for view, calling parse on a miss.
// Nothing is stored unless enabled is true.
func cached[T any](c *Cache, enabled bool, view View, parse func() (T, error)) (T, error) {
	if enabled {
		if v, ok := c.get(view.key()); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}
	}

	t, err := parse()
	if err != nil {
		return t, err
	}

	if enabled {
		c.set(view.key(), t)
	}
	return t, nil
}
