package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size-bounded LRU whose entries expire after a TTL. A TTL of
// zero keeps entries until they are evicted.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache[V]{lru: expirable.NewLRU[string, V](capacity, nil, ttl)}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

func (c *Cache[V]) Purge() {
	c.lru.Purge()
}
