package classify

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of queries a Cached classifier remembers.
const DefaultCacheSize = 256

// Cached memoizes successful classifications by query string. Failures are
// not cached.
type Cached[T any] struct {
	inner Classifier[T]
	cache *lru.Cache[string, Result[T]]
}

// NewCached wraps inner with an LRU cache holding up to size results.
func NewCached[T any](inner Classifier[T], size int) (*Cached[T], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Result[T]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification cache: %w", err)
	}
	return &Cached[T]{inner: inner, cache: cache}, nil
}

// Classify implements Classifier.
func (c *Cached[T]) Classify(ctx context.Context, query string) (Result[T], error) {
	if r, ok := c.cache.Get(query); ok {
		return r, nil
	}
	r, err := c.inner.Classify(ctx, query)
	if err != nil {
		return r, err
	}
	c.cache.Add(query, r)
	return r, nil
}

// Len returns the number of cached queries.
func (c *Cached[T]) Len() int {
	return c.cache.Len()
}
