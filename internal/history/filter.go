package history

import "github.com/sha1n/gitm/internal/domain"

// Keep reports whether c passes filter. A commit is kept when it matches the
// author filter by name, if any, and its date lies within the date range,
// bounds included, if any. A nil filter keeps everything.
func Keep(c domain.Commit, filter *domain.FilterConfig) bool {
	if filter == nil {
		return true
	}
	if filter.Author != nil && !filter.Author.Equal(c.Author) {
		return false
	}
	if filter.Dates != nil && !filter.Dates.Contains(c.Date) {
		return false
	}
	return true
}
