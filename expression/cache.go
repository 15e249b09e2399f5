package expression

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// CacheStats tracks cache statistics
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// programCache is a thread-safe LRU of compiled expressions keyed by source.
// Programs are immutable, so sharing one across goroutines is safe.
type programCache struct {
	items     map[string]*list.Element
	evictList *list.List
	maxItems  int
	stats     CacheStats
	mu        sync.Mutex
}

type cacheEntry struct {
	key  string
	node Node
}

func newProgramCache(maxItems int) *programCache {
	return &programCache{
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		maxItems:  maxItems,
	}
}

// Get retrieves a compiled program from the cache
func (c *programCache) Get(key string) (Node, bool) {
	if c.maxItems <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		atomic.AddInt64(&c.stats.Hits, 1)
		return ent.Value.(*cacheEntry).node, true
	}

	atomic.AddInt64(&c.stats.Misses, 1)
	return nil, false
}

// Set adds a compiled program, evicting the least recently used ones
func (c *programCache) Set(key string, node Node) {
	if c.maxItems <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*cacheEntry).node = node
		return
	}

	for c.evictList.Len() >= c.maxItems {
		c.evictOldest()
	}
	c.items[key] = c.evictList.PushFront(&cacheEntry{key: key, node: node})
}

// evictOldest removes the oldest item from the cache
func (c *programCache) evictOldest() {
	ent := c.evictList.Back()
	if ent == nil {
		return
	}
	c.evictList.Remove(ent)
	delete(c.items, ent.Value.(*cacheEntry).key)
	atomic.AddInt64(&c.stats.Evictions, 1)
}

// Len returns the number of items in the cache
func (c *programCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *programCache) Stats() CacheStats {
	return CacheStats{
		Hits:      atomic.LoadInt64(&c.stats.Hits),
		Misses:    atomic.LoadInt64(&c.stats.Misses),
		Evictions: atomic.LoadInt64(&c.stats.Evictions),
	}
}
