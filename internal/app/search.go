package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sha1n/gitm/internal/config"
	"github.com/sha1n/gitm/internal/search"
	"github.com/spf13/pflag"
)

// SearchParams contains dependencies for the search command
type SearchParams struct {
	LoadSettings  func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings func(*config.Settings) error
	Preflight     func(context.Context, *config.Settings) error
	NewSearcher   func(*config.Settings) (search.Searcher, error)
	Stdout        io.Writer
	LogOutput     io.Writer // Optional: defaults to stderr
}

// DefaultSearchParams returns production dependencies
func DefaultSearchParams() SearchParams {
	env := DefaultEnvironment()
	return SearchParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSearchSettings,
		Preflight:     env.CheckPreconditions,
		NewSearcher: func(s *config.Settings) (search.Searcher, error) {
			return env.NewAgent(s, false)
		},
		Stdout: os.Stdout,
	}
}

// RunSearchWithDeps runs one search and writes the results to Stdout. args
// form the query when none was set through a flag or the environment.
func RunSearchWithDeps(ctx context.Context, params SearchParams, flags *pflag.FlagSet, args []string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Query == "" {
		settings.Query = strings.TrimSpace(strings.Join(args, " "))
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Results go to stdout, so only warnings are logged by default.
	configureLogging(params.LogOutput, settings.LogLevel, slog.LevelWarn)
	config.Log(settings)

	if err := params.Preflight(ctx, settings); err != nil {
		return err
	}

	searcher, err := params.NewSearcher(settings)
	if err != nil {
		return err
	}

	results, err := searcher.Search(ctx, SearchRequest(settings))
	if err != nil {
		return err
	}

	return NewFormatter(params.Stdout, ColorEnabled(settings.Color, params.Stdout)).Write(results)
}

// SearchRequest derives a search request from settings.
func SearchRequest(s *config.Settings) search.Request {
	mode := search.ModeCommits
	switch {
	case s.IssuesOnly:
		mode = search.ModeIssues
	case s.IssuesToo:
		mode = search.ModeCommitsAndIssues
	}

	return search.Request{
		Query:          s.Query,
		MaxResults:     s.MaxResults,
		Mode:           mode,
		IncludePatches: s.IncludeCodePatches,
		Classify:       s.Classify(),
		FetchAll:       s.SearchAll,
	}
}
