package mahjong

import "sync"

const DefaultCacheSize = 1 << 16

// Cache 有界的纯函数缓存，只按值做键，可以跨对局、跨协程共享。
// 满了以后整体清空重新积累。
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	limit int
}

func NewCache[K comparable, V any](limit int) *Cache[K, V] {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	return &Cache[K, V]{
		items: make(map[K]V, min(limit, 4096)),
		limit: limit,
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= c.limit {
		clear(c.items)
	}
	c.items[key] = value
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
