package secretsmanager

import "sync"

// ParseCache memoizes parsed JSON secret payloads by secret name. Entries
// never expire and the cache grows without bound; Clear is the only eviction.
//
// The key is the secret name only — region is deliberately not part of the
// key, so a secret name reused across two regions shares one entry. Known
// limitation, kept for compatibility with existing encoded secrets.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewParseCache creates an empty parse cache.
func NewParseCache() *ParseCache {
	return &ParseCache{entries: make(map[string]map[string]string)}
}

// Get returns the cached fields for name, if present.
func (c *ParseCache) Get(name string) (map[string]string, bool) {
	c.mu.RLock()
	fields, ok := c.entries[name]
	c.mu.RUnlock()
	return fields, ok
}

// PutIfAbsent stores fields under name unless an entry already exists, and
// returns the entry that won. Racing fills for the same name fetch the same
// immutable payload, so first-writer-wins keeps all callers consistent.
func (c *ParseCache) PutIfAbsent(name string, fields map[string]string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[name]; ok {
		return existing
	}
	c.entries[name] = fields
	return fields
}

// Clear drops all entries unconditionally.
func (c *ParseCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]map[string]string)
	c.mu.Unlock()
}

// Len returns the number of cached secrets.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
