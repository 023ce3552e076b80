package app

import (
	"context"
	"strings"

	"github.com/sha1n/gitm/internal/config"
	"github.com/sha1n/gitm/internal/history"
	"github.com/sha1n/gitm/internal/proc"
	"github.com/spf13/pflag"
)

// noopValidate is a no-op validation function for tests
func noopValidate(*config.Settings) error {
	return nil
}

func noopPreflight(context.Context, *config.Settings) error {
	return nil
}

func staticSettings(s *config.Settings) func(*pflag.FlagSet) (*config.Settings, error) {
	return func(*pflag.FlagSet) (*config.Settings, error) {
		return s, nil
	}
}

func foundTool(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func logRecord(name, email, date, title, body, hash string) string {
	return strings.Join([]string{name, email, date, title, body + "\n", hash}, history.Delimiter)
}

func sampleLog() []byte {
	return []byte(strings.Join([]string{
		logRecord("Grace", "grace@example.com", "Wed, 1 Feb 2023 09:00:00 +0000", "Update docs", "", "bbbbbbbbbb"),
		logRecord("Ada", "ada@example.com", "Sun, 1 Jan 2023 09:00:00 +0000", "Fix the parser", "Handle empty records.", "aaaaaaaaaa"),
	}, history.RecordSeparator))
}

const sampleIssues = `[
  {"author": {"login": "octocat"}, "number": 7, "title": "Parser crashes on empty input", "body": "", "createdAt": "2023-03-01T10:00:00Z"},
  {"author": {"login": "hubot"}, "number": 8, "title": "Add dark mode", "body": "", "createdAt": "2023-03-02T10:00:00Z"}
]`

// repoExecutor returns a mock executor answering the commands of one commit
// search in a small repository.
func repoExecutor() *proc.MockExecutor {
	mock := proc.NewMockExecutor()
	mock.AddResponse("git rev-parse --is-inside-work-tree", []byte("true\n"), nil)
	mock.AddResponse("git rev-list --count HEAD", []byte("2\n"), nil)
	mock.AddResponse("git log", sampleLog(), nil)
	return mock
}

func testSettings() *config.Settings {
	return &config.Settings{
		Query:                  "parser",
		DisableClassifications: true,
		MaxResults:             10,
		HistoryThreshold:       1000,
		HistorySince:           "3 months ago",
		IssueLimit:             100,
		Color:                  config.ColorNever,
		Transport:              "stdio",
	}
}
