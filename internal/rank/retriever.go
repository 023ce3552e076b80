package rank

import "fmt"

// Retriever returns the top items of a Store for a query.
type Retriever[T fmt.Stringer] struct {
	ranker *BM25[T]
}

// NewRetriever binds a ranker to stores of T.
func NewRetriever[T fmt.Stringer](ranker *BM25[T]) *Retriever[T] {
	return &Retriever[T]{ranker: ranker}
}

// Retrieve returns at most n items of store, best first.
func (r *Retriever[T]) Retrieve(query string, store *Store[T], n int) ([]T, error) {
	ranked, err := r.ranker.Rank(query, store.Items(), n)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	items := make([]T, len(ranked))
	for i, res := range ranked {
		items[i] = res.Item
	}
	return items, nil
}
