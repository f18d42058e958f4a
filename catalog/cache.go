package catalog

import (
	"context"
	"sync"
	"time"
)

// Cache memoizes serialized query results for a short TTL. Implementations
// must be safe for concurrent use. Entries carry invalidation tags so the
// seed loader can drop everything derived from the project store at once.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string)
	Invalidate(ctx context.Context, tags ...string)
}

// TagProjects marks every cache entry derived from the project store.
const TagProjects = "projects"

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the process-local Cache used by default. State starts empty
// at process start and is never persisted; entries expire lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]bool // tag -> set of keys
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]bool),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags ...string) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	for _, tag := range tags {
		if c.tags[tag] == nil {
			c.tags[tag] = make(map[string]bool)
		}
		c.tags[tag][key] = true
	}
}

func (c *MemoryCache) Invalidate(_ context.Context, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		for key := range c.tags[tag] {
			delete(c.entries, key)
		}
		delete(c.tags, tag)
	}
}

// NopCache disables caching entirely. Used in development mode where
// freshness matters more than saved round-trips.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool)                    { return nil, false }
func (NopCache) Set(context.Context, string, []byte, time.Duration, ...string) {}
func (NopCache) Invalidate(context.Context, ...string)                         {}
