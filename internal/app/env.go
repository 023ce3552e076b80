package app

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"github.com/sha1n/gitm/internal/classify"
	"github.com/sha1n/gitm/internal/config"
	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/history"
	"github.com/sha1n/gitm/internal/llm"
	"github.com/sha1n/gitm/internal/proc"
	"github.com/sha1n/gitm/internal/search"
	"github.com/sha1n/gitm/internal/tracker"
)

// Environment locates the repository and the external tools searches run
// against.
type Environment struct {
	// Dir is the repository directory. Empty means the working directory.
	Dir        string
	Executor   proc.CommandExecutor
	LookPath   proc.LookPath
	HTTPClient *http.Client
	Now        func() time.Time
}

// DefaultEnvironment returns an Environment for the working directory.
func DefaultEnvironment() Environment {
	return Environment{
		Executor: &proc.DefaultExecutor{},
		LookPath: exec.LookPath,
		Now:      time.Now,
	}
}

// RequiredTools lists the command line tools the settings need.
func RequiredTools(s *config.Settings) []string {
	var tools []string
	if !s.IssuesOnly {
		tools = append(tools, "git")
	}
	if s.IssuesOnly || s.IssuesToo {
		tools = append(tools, "gh")
	}
	return tools
}

// CheckPreconditions fails when a required tool is missing or, for commit
// searches, when the directory is not a git work tree.
func (e Environment) CheckPreconditions(ctx context.Context, s *config.Settings) error {
	if err := proc.RequireTools(e.LookPath, RequiredTools(s)...); err != nil {
		return err
	}
	if s.IssuesOnly {
		return nil
	}
	if !e.history(s).IsInsideWorkTree(ctx) {
		return history.ErrNotGitRepository
	}
	return nil
}

// NewAgent wires a search agent. Classifiers are created unless
// classifications are disabled or no API key is configured. When cached is
// set their results are kept per query in an LRU.
func (e Environment) NewAgent(s *config.Settings, cached bool) (*search.Agent, error) {
	hist := e.history(s)
	cfg := search.Config{
		History: hist,
		Issues:  tracker.NewClientWithExecutor(e.Executor, e.Dir, s.IssueLimit),
		K1:      &s.BM25.K1,
		B:       &s.BM25.B,
	}

	if s.DisableClassifications || s.APIKey == "" {
		return search.NewAgent(cfg), nil
	}

	chat, err := llm.NewClient(llm.Options{
		APIKey:     s.APIKey,
		Model:      s.Model,
		BaseURL:    s.LLMBaseURL,
		Timeout:    s.LLMTimeout,
		HTTPClient: e.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create language model client: %w", err)
	}

	var authors classify.Classifier[domain.Author] = classify.NewAuthor(chat, hist)
	var dates classify.Classifier[domain.DateRange] = classify.NewDate(chat, e.Now)
	if cached {
		if authors, err = classify.NewCached(authors, classify.DefaultCacheSize); err != nil {
			return nil, err
		}
		if dates, err = classify.NewCached(dates, classify.DefaultCacheSize); err != nil {
			return nil, err
		}
	}
	cfg.Authors = authors
	cfg.Dates = dates

	return search.NewAgent(cfg), nil
}

func (e Environment) history(s *config.Settings) *history.Client {
	return history.NewClientWithExecutor(e.Executor, e.Dir, history.Options{
		Threshold: s.HistoryThreshold,
		Since:     s.HistorySince,
	})
}
