package domain

import "time"

// DateRange is an inclusive time window. A zero bound is open.
type DateRange struct {
	Since time.Time `json:"since,omitzero"`
	Until time.Time `json:"until,omitzero"`
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.Since.IsZero() && r.Until.IsZero()
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Since.IsZero() && t.Before(r.Since) {
		return false
	}
	if !r.Until.IsZero() && t.After(r.Until) {
		return false
	}
	return true
}

// FilterConfig narrows the commits considered by a search.
//
// FetchAll disables the time window the history fetch applies to large
// repositories. It has no effect on which fetched commits are kept.
type FilterConfig struct {
	Author   *Author    `json:"author,omitempty"`
	Dates    *DateRange `json:"dates,omitempty"`
	FetchAll bool       `json:"fetch_all,omitempty"`
}

// HasPredicates reports whether f filters anything out.
func (f *FilterConfig) HasPredicates() bool {
	return f != nil && (f.Author != nil || f.Dates != nil)
}
