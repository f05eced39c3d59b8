package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache bounds entries by count and age. Reads refresh recency;
// expired entries are dropped lazily on Get and eagerly by a Janitor.
type LRUCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

var _ Cache[struct{}] = (*LRUCache[struct{}])(nil)

type entry[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

// NewLRUCache creates a cache holding at most maxSize entries, each
// valid for ttl after its last Set.
func NewLRUCache[T any](maxSize int, ttl time.Duration) *LRUCache[T] {
	return &LRUCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a live value and marks it most recently used.
func (c *LRUCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}
	c.lru.MoveToFront(elem)
	return e.data, true
}

// Set stores a value, resetting its TTL, and evicts the least
// recently used entry when over capacity.
func (c *LRUCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, data: data, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.items[key]; ok {
		elem.Value = e
		c.lru.MoveToFront(elem)
		return
	}
	c.items[key] = c.lru.PushFront(e)
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// Delete removes a key if present.
func (c *LRUCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// CleanExpired drops every expired entry and reports how many.
func (c *LRUCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.lru.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			c.remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Size returns the current number of entries.
func (c *LRUCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRUCache[T]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[T]).key)
	c.lru.Remove(elem)
}
