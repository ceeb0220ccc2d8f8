package utils

import (
	"os"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds caches created without an explicit size
const DefaultCacheSize = 1024

// CacheItem represents a cached item with metadata for invalidation
type CacheItem[T any] struct {
	Value   T
	ModTime time.Time
	Size    int64
}

// Cache is a bounded least-recently-used cache with optional file-based invalidation
type Cache[K comparable, V any] struct {
	items  *lru.Cache[K, *CacheItem[V]]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache holding at most DefaultCacheSize items
func NewCache[K comparable, V any]() *Cache[K, V] {
	c, _ := NewCacheWithSize[K, V](DefaultCacheSize)
	return c
}

// NewCacheWithSize creates a cache holding at most size items
func NewCacheWithSize[K comparable, V any](size int) (*Cache[K, V], error) {
	items, err := lru.New[K, *CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{items: items}, nil
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if item, ok := c.items.Get(key); ok {
		c.hits.Add(1)
		return item.Value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// GetWithFileValidation retrieves an item from the cache with file-based validation
// If the file has been modified since caching, the item is removed and false is returned
func (c *Cache[K, V]) GetWithFileValidation(key K, filePath string) (V, bool) {
	var zero V
	item, ok := c.items.Get(key)
	if !ok {
		c.misses.Add(1)
		return zero, false
	}

	if stat, err := os.Stat(filePath); err == nil {
		if stat.ModTime().Equal(item.ModTime) && stat.Size() == item.Size {
			c.hits.Add(1)
			return item.Value, true
		}
	}

	c.items.Remove(key)
	c.misses.Add(1)
	return zero, false
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.items.Add(key, &CacheItem[V]{Value: value})
}

// SetWithFileInfo stores an item in the cache with file metadata for validation
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, filePath string) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	c.items.Add(key, &CacheItem[V]{
		Value:   value,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	})
	return nil
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.items.Remove(key)
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	return c.items.Len()
}

// GetStats returns cache statistics
func (c *Cache[K, V]) GetStats() CacheStats {
	return CacheStats{
		Size:   c.items.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// CacheStats provides cache statistics
type CacheStats struct {
	Size   int
	Hits   int64
	Misses int64
}
