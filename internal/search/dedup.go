package search

import "github.com/sha1n/gitm/internal/domain"

// Dedup concatenates lists and keeps the first commit seen for each hash.
func Dedup(lists ...[]domain.Commit) []domain.Commit {
	seen := make(map[string]struct{})
	var out []domain.Commit
	for _, list := range lists {
		for _, c := range list {
			if _, ok := seen[c.Hash]; ok {
				continue
			}
			seen[c.Hash] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
