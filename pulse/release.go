package pulse

import (
	"github.com/hashicorp/golang-lru/v2"
)

type Releaser interface {
	Release()
}

// ReleaseGuard releases a resource unless Keep was called.
type ReleaseGuard struct {
	delegate Releaser
}

func NewReleaseGuard(delegate Releaser) ReleaseGuard {
	return ReleaseGuard{delegate: delegate}
}

func (r *ReleaseGuard) Keep() {
	r.delegate = nil
}

func (r *ReleaseGuard) Release() {
	if r.delegate != nil {
		r.delegate.Release()
		r.delegate = nil
	}
}

// releaseCache is a lru cache that releases values on eviction.
type releaseCache[K comparable, V Releaser] struct {
	cache *lru.Cache[K, V]
}

func newReleaseCache[K comparable, V Releaser](size int) *releaseCache[K, V] {
	cache, _ := lru.NewWithEvict[K, V](size, releaseOnEviction[K, V])
	return &releaseCache[K, V]{cache: cache}
}

// Get returns the cached value for key, calling create on a miss.
func (c *releaseCache[K, V]) Get(key K, create func(key K) (V, error)) (V, error) {
	value, ok := c.cache.Get(key)
	if ok {
		return value, nil
	}

	value, err := create(key)
	if err != nil {
		return value, err
	}

	c.cache.Add(key, value)

	return value, nil
}

func (c *releaseCache[K, V]) Len() int {
	return c.cache.Len()
}

// Purge releases all cached values.
func (c *releaseCache[K, V]) Purge() {
	c.cache.Purge()
}

func releaseOnEviction[K any, V Releaser](_key K, value V) {
	value.Release()
}
