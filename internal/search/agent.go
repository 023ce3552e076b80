// Package search runs a query against commit history and issues: it derives
// filters from the query, fetches, ranks and merges the results.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sha1n/gitm/internal/classify"
	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/rank"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("query cannot be empty")

// HistorySource fetches commits, applying filter while parsing.
type HistorySource interface {
	Commits(ctx context.Context, filter *domain.FilterConfig) ([]domain.Commit, error)
}

// IssueSource fetches issues.
type IssueSource interface {
	Issues(ctx context.Context) ([]domain.Issue, error)
}

// Mode selects which item kinds a search covers.
type Mode int

const (
	ModeCommits Mode = iota
	ModeIssues
	ModeCommitsAndIssues
)

func (m Mode) String() string {
	switch m {
	case ModeIssues:
		return "issues"
	case ModeCommitsAndIssues:
		return "commits_and_issues"
	default:
		return "commits"
	}
}

func (m Mode) commits() bool { return m != ModeIssues }
func (m Mode) issues() bool  { return m != ModeCommits }

// Request describes one search.
type Request struct {
	Query string

	// MaxResults bounds each ranking pass. Zero or less returns everything.
	MaxResults int

	Mode Mode

	// IncludePatches adds a second ranking pass over the added lines of each
	// commit's patch. Its hits are appended after the message hits.
	IncludePatches bool

	// Classify derives author and date filters from the query.
	Classify bool

	// FetchAll disables the history window applied to large repositories.
	FetchAll bool
}

// Results holds the two independently ranked lists of a search.
type Results struct {
	SearchID string
	Filter   *domain.FilterConfig
	Commits  []domain.Commit
	Issues   []domain.Issue
}

// Config wires an Agent. Issues and the classifiers are optional.
type Config struct {
	History HistorySource
	Issues  IssueSource
	Authors classify.Classifier[domain.Author]
	Dates   classify.Classifier[domain.DateRange]

	// BM25 parameters. Nil takes the rank package default; zero is a valid
	// value (b=0 disables length normalization).
	K1 *float64
	B  *float64
}

// Agent orchestrates searches. It holds no per-search state and is safe for
// concurrent use when its sources are.
type Agent struct {
	history HistorySource
	issues  IssueSource
	authors classify.Classifier[domain.Author]
	dates   classify.Classifier[domain.DateRange]
	k1      float64
	b       float64
}

// NewAgent creates an Agent. Unset BM25 parameters take their defaults.
func NewAgent(cfg Config) *Agent {
	k1, b := rank.DefaultK1, rank.DefaultB
	if cfg.K1 != nil {
		k1 = *cfg.K1
	}
	if cfg.B != nil {
		b = *cfg.B
	}
	return &Agent{
		history: cfg.History,
		issues:  cfg.Issues,
		authors: cfg.Authors,
		dates:   cfg.Dates,
		k1:      k1,
		b:       b,
	}
}

// Search runs req. A failed commit fetch fails the search. A failed issue
// fetch fails it only when issues are all that was asked for.
func (a *Agent) Search(ctx context.Context, req Request) (*Results, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	res := &Results{SearchID: uuid.NewString()}
	log := slog.Default().With("search_id", res.SearchID)
	log.Info("Searching", "query", req.Query, "mode", req.Mode,
		"patches", req.IncludePatches, "classify", req.Classify, "fetch_all", req.FetchAll)

	g, gctx := errgroup.WithContext(ctx)

	if req.Mode.commits() {
		g.Go(func() error {
			filter, commits, err := a.searchCommits(gctx, log, req)
			if err != nil {
				return fmt.Errorf("commit search failed: %w", err)
			}
			res.Filter = filter
			res.Commits = commits
			return nil
		})
	}

	if req.Mode.issues() {
		g.Go(func() error {
			issues, err := a.searchIssues(gctx, req)
			if err == nil {
				res.Issues = issues
				return nil
			}
			if req.Mode == ModeIssues {
				return fmt.Errorf("issue search failed: %w", err)
			}
			log.Warn("Issue search failed, returning commits only", "error", err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("Search complete", "commits", len(res.Commits), "issues", len(res.Issues))
	return res, nil
}

func (a *Agent) searchCommits(ctx context.Context, log *slog.Logger, req Request) (*domain.FilterConfig, []domain.Commit, error) {
	filter := &domain.FilterConfig{FetchAll: req.FetchAll}
	if req.Classify {
		a.classify(ctx, log, req.Query, filter)
	}

	commits, err := a.history.Commits(ctx, filter)
	if err != nil {
		return filter, nil, err
	}
	log.Debug("Fetched history", "commits", len(commits))
	if len(commits) == 0 {
		return filter, nil, nil
	}

	ranked, err := a.rankCommits(req.Query, commits, domain.DisplayTitleAndBody, rank.SplitWhitespace, req.MaxResults)
	if err != nil {
		return filter, nil, err
	}

	if req.IncludePatches {
		patched, err := a.rankCommits(req.Query, commits, domain.DisplayPatchAdded, rank.SplitPunctuation, req.MaxResults)
		if err != nil {
			return filter, nil, err
		}
		ranked = append(ranked, patched...)
	}

	return filter, domain.WithDisplayAll(Dedup(ranked), domain.DisplayTitleAndBody), nil
}

// classify fills filter from the query. Classifier failures leave the
// corresponding filter unset.
func (a *Agent) classify(ctx context.Context, log *slog.Logger, query string, filter *domain.FilterConfig) {
	var g errgroup.Group

	if a.authors != nil {
		g.Go(func() error {
			r, err := a.authors.Classify(ctx, query)
			if err != nil {
				log.Warn("Author classification failed", "error", err)
				return nil
			}
			if r.Classified {
				author := r.Value
				filter.Author = &author
				log.Info("Filtering by author", "author", author.Name)
			}
			return nil
		})
	}

	if a.dates != nil {
		g.Go(func() error {
			r, err := a.dates.Classify(ctx, query)
			if err != nil {
				log.Warn("Date classification failed", "error", err)
				return nil
			}
			if r.Classified {
				dates := r.Value
				filter.Dates = &dates
				log.Info("Filtering by date", "since", dates.Since, "until", dates.Until)
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (a *Agent) rankCommits(query string, commits []domain.Commit, mode domain.DisplayMode, split rank.SplitterKind, n int) ([]domain.Commit, error) {
	ranker := rank.NewBM25[domain.Commit](a.rankConfig(split))
	store := rank.NewStore(domain.WithDisplayAll(commits, mode))
	return rank.NewRetriever(ranker).Retrieve(query, store, n)
}

func (a *Agent) searchIssues(ctx context.Context, req Request) ([]domain.Issue, error) {
	if a.issues == nil {
		return nil, errors.New("issue tracker is not configured")
	}
	issues, err := a.issues.Issues(ctx)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, nil
	}

	ranker := rank.NewBM25[domain.Issue](a.rankConfig(rank.SplitWhitespace))
	return rank.NewRetriever(ranker).Retrieve(req.Query, rank.NewStore(issues), req.MaxResults)
}

func (a *Agent) rankConfig(split rank.SplitterKind) rank.Config {
	return rank.Config{K1: a.k1, B: a.b, Splitter: rank.NewSplitter(split)}
}
