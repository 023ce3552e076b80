// Package rank scores and orders in-memory items against a free-text query
// with BM25.
//
// Items only need to render themselves as text (fmt.Stringer). Every ranking
// pass is computed from scratch; nothing is indexed or cached between calls.
package rank
