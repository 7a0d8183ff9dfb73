package naming

import (
	"hash/fnv"
	"sync"
)

// Cache is a write-once name cache keyed by the FNV-1a hash of the prompt.
// A key is never overwritten; the first name generated for a prompt wins.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]string)}
}

// Key hashes a prompt into a cache key.
func Key(prompt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(prompt))
	return h.Sum64()
}

// Get returns the cached name for a key, if present.
func (c *Cache) Get(key uint64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.entries[key]
	return name, ok
}

// Put stores a name for a key unless one is already present. It returns the
// name that ends up cached.
func (c *Cache) Put(key uint64, name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = name
	return name
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
