package feed

import (
	"sync"
	"time"
)

// Catalog is the in-memory snapshot of the feed's date and type indexes.
// It replaces what would otherwise be mutable globals: a single writer
// (the Service) updates it, any number of request handlers read it.
type Catalog struct {
	mu       sync.RWMutex
	dates    []string
	types    []string
	loadedAt time.Time
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Update replaces both indexes atomically.
func (c *Catalog) Update(dates, types []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append([]string(nil), dates...)
	c.types = append([]string(nil), types...)
	c.loadedAt = time.Now()
}

// Dates returns a copy of the date index, most recent first.
func (c *Catalog) Dates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.dates...)
}

// Types returns a copy of the type index.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.types...)
}

// Empty reports whether the catalog has never been populated.
func (c *Catalog) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt.IsZero()
}

// LoadedAt returns when the catalog was last updated.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
