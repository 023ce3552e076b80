package search

import (
	"context"
	"sync"
	"time"

	"github.com/sha1n/gitm/internal/classify"
	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/history"
)

type fakeHistory struct {
	mu      sync.Mutex
	commits []domain.Commit
	err     error
	filters []*domain.FilterConfig
}

func (f *fakeHistory) Commits(_ context.Context, filter *domain.FilterConfig) ([]domain.Commit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Commit
	for _, c := range f.commits {
		if history.Keep(c, filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeHistory) lastFilter() *domain.FilterConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters[len(f.filters)-1]
}

type fakeIssues struct {
	issues []domain.Issue
	err    error
}

func (f fakeIssues) Issues(context.Context) ([]domain.Issue, error) {
	return f.issues, f.err
}

type fakeClassifier[T any] struct {
	result classify.Result[T]
	err    error
}

func (f fakeClassifier[T]) Classify(context.Context, string) (classify.Result[T], error) {
	return f.result, f.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func commitFixtures() []domain.Commit {
	return []domain.Commit{
		{
			Author: domain.Author{Name: "Ada"},
			Date:   date(2023, 1, 1),
			Title:  "Add tokenizer",
			Body:   "Splits text on whitespace",
			Hash:   "aaa1111",
			Patch:  patchAdding("func splitWords(text string) []string {"),
		},
		{
			Author: domain.Author{Name: "Grace"},
			Date:   date(2023, 2, 1),
			Title:  "Fix parser crash",
			Body:   "The parser crashed on merge commits",
			Hash:   "bbb2222",
			Patch:  patchAdding("if len(fields) != expectedFields {"),
		},
		{
			Author: domain.Author{Name: "Ada"},
			Date:   date(2023, 3, 1),
			Title:  "Update docs",
			Body:   "Document the ranking",
			Hash:   "ccc3333",
			Patch:  patchAdding("parser.Parse(ranking)"),
		},
	}
}

func patchAdding(line string) domain.PatchSet {
	return domain.PatchSet{Files: []domain.FileDiff{{
		NewName: "main.go",
		Hunks:   []domain.Hunk{{Lines: []domain.Line{{Kind: domain.LineAdded, Text: line}}}},
	}}}
}
