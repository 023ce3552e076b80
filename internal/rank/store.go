package rank

import "sync"

// Store holds the corpus for one ranking pass. Access is serialized by a
// single lock so concurrent readers are safe.
type Store[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewStore creates a store owning items.
func NewStore[T any](items []T) *Store[T] {
	return &Store[T]{items: items}
}

// Get returns the item at index i.
func (s *Store[T]) Get(i int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if i < 0 || i >= len(s.items) {
		return zero, false
	}
	return s.items[i], true
}

// Len returns the number of items.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Append adds items at the end.
func (s *Store[T]) Append(items ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Items returns a copy of the current items.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
