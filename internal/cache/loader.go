package cache

import (
	"golang.org/x/sync/singleflight"
)

// Loader serves values from a cache and computes misses once per key even
// under concurrent requests.
type Loader[T any] struct {
	cache Cache[T]
	group singleflight.Group
}

func NewLoader[T any](c Cache[T]) *Loader[T] {
	return &Loader[T]{cache: c}
}

// Get returns the cached value for key or calls load. Errors are not
// cached. The bool reports a cache hit.
func (l *Loader[T]) Get(key string, load func() (T, error)) (T, bool, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, true, nil
	}
	v, err, _ := l.group.Do(key, func() (any, error) {
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// Invalidate drops every cached value. Loads already in flight may still
// store their result.
func (l *Loader[T]) Invalidate() {
	l.cache.Clear()
}
