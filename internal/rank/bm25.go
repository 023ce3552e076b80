package rank

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultK1 controls term frequency saturation.
	DefaultK1 = 1.2
	// DefaultB controls document length normalization.
	DefaultB = 0.75
)

// ErrEmptyCorpus is returned when ranking against an empty corpus.
var ErrEmptyCorpus = errors.New("cannot rank an empty corpus")

// Config holds the BM25 parameters.
type Config struct {
	K1       float64
	B        float64
	Splitter Splitter
}

// DefaultConfig returns k1=1.2, b=0.75 and whitespace splitting.
func DefaultConfig() Config {
	return Config{
		K1:       DefaultK1,
		B:        DefaultB,
		Splitter: NewWhitespaceSplitter(),
	}
}

// Result is one scored item.
type Result[T any] struct {
	Score float64
	Item  T
}

// BM25 ranks items of type T against a query.
type BM25[T fmt.Stringer] struct {
	k1       float64
	b        float64
	splitter Splitter
}

// NewBM25 creates a ranker. A nil splitter means whitespace splitting.
func NewBM25[T fmt.Stringer](cfg Config) *BM25[T] {
	splitter := cfg.Splitter
	if splitter == nil {
		splitter = NewWhitespaceSplitter()
	}
	return &BM25[T]{k1: cfg.K1, b: cfg.B, splitter: splitter}
}

// Rank scores every item of corpus against query and returns them by
// descending score. When limit is positive at most limit results are
// returned. Order among equal scores is unspecified.
//
// Document frequency counts items whose rendered text contains the term as a
// substring, so "search" is credited to a document containing "searching".
// Term frequency counts exact token matches.
func (r *BM25[T]) Rank(query string, corpus []T, limit int) ([]Result[T], error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	texts := make([]string, len(corpus))
	docs := make([][]string, len(corpus))
	total := 0
	for i, item := range corpus {
		texts[i] = item.String()
		docs[i] = r.splitter.Split(texts[i])
		total += len(docs[i])
	}
	avgDocLen := float64(total) / float64(len(corpus))

	terms := distinct(r.splitter.Split(query))
	idfs := make([]float64, len(terms))
	for i, term := range terms {
		idfs[i] = idf(term, texts)
	}

	pq := make(resultHeap[T], 0, len(corpus))
	for i, item := range corpus {
		score := 0.0
		for j, term := range terms {
			score += idfs[j] * r.termWeight(frequency(term, docs[i]), len(docs[i]), avgDocLen)
		}
		pq = append(pq, Result[T]{Score: score, Item: item})
	}
	heap.Init(&pq)

	n := pq.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	ranked := make([]Result[T], 0, n)
	for range n {
		ranked = append(ranked, heap.Pop(&pq).(Result[T]))
	}
	return ranked, nil
}

// termWeight is the saturated, length-normalized term frequency.
func (r *BM25[T]) termWeight(f float64, docLen int, avgDocLen float64) float64 {
	if f == 0 {
		return 0
	}
	norm := 1 - r.b + r.b*float64(docLen)/avgDocLen
	return f * (r.k1 + 1) / (f + r.k1*norm)
}

func idf(term string, texts []string) float64 {
	n := float64(len(texts))
	nt := 0.0
	for _, text := range texts {
		if strings.Contains(text, term) {
			nt++
		}
	}
	return math.Log((n-nt+0.5)/(nt+0.5) + 1)
}

func frequency(term string, doc []string) float64 {
	f := 0
	for _, t := range doc {
		if t == term {
			f++
		}
	}
	return float64(f)
}

func distinct(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// resultHeap is a max-heap on score.
type resultHeap[T any] []Result[T]

func (h resultHeap[T]) Len() int           { return len(h) }
func (h resultHeap[T]) Less(i, j int) bool { return h[i].Score > h[j].Score }
func (h resultHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *resultHeap[T]) Push(x any) {
	*h = append(*h, x.(Result[T]))
}

func (h *resultHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
