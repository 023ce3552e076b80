// Package tracker fetches issues from the GitHub issue tracker through the
// gh command-line tool.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/proc"
)

// DefaultLimit is the number of issues fetched when no limit is configured.
const DefaultLimit = 100

const issueFields = "author,number,title,body,createdAt"

type issueJSON struct {
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	Number    uint64 `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// Client lists issues of the repository in dir.
type Client struct {
	executor proc.CommandExecutor
	dir      string
	limit    int
}

// NewClient creates a Client using the default command executor.
func NewClient(dir string, limit int) *Client {
	return NewClientWithExecutor(&proc.DefaultExecutor{}, dir, limit)
}

// NewClientWithExecutor creates a Client with a custom executor (for testing).
// A non-positive limit means DefaultLimit.
func NewClientWithExecutor(executor proc.CommandExecutor, dir string, limit int) *Client {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Client{executor: executor, dir: dir, limit: limit}
}

// Issues returns the repository's issues in the order gh lists them.
func (c *Client) Issues(ctx context.Context) ([]domain.Issue, error) {
	out, err := c.executor.Run(ctx, c.dir, "gh", "issue", "list",
		"--json", issueFields,
		"--limit", strconv.Itoa(c.limit))
	if err != nil {
		return nil, fmt.Errorf("gh issue list failed: %w", err)
	}
	text, err := proc.Text(out)
	if err != nil {
		return nil, fmt.Errorf("gh issue list failed: %w", err)
	}

	var raw []issueJSON
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}

	issues := make([]domain.Issue, 0, len(raw))
	for _, r := range raw {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("issue #%d has invalid creation time %q: %w", r.Number, r.CreatedAt, err)
		}
		issues = append(issues, domain.Issue{
			Title:     r.Title,
			Body:      r.Body,
			Author:    domain.Author{Name: r.Author.Login, Username: r.Author.Login},
			CreatedAt: createdAt.UTC(),
			Number:    r.Number,
		})
	}

	slog.Debug("Fetched issues", "count", len(issues), "limit", c.limit)
	return issues, nil
}
