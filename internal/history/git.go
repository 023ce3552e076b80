package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/proc"
)

const (
	// DefaultThreshold is the commit count above which fetches are windowed.
	DefaultThreshold = 1000

	// DefaultSince is the window applied to large repositories.
	DefaultSince = "3 months ago"
)

var (
	// ErrNotGitRepository indicates the working directory is not inside a git
	// work tree.
	ErrNotGitRepository = errors.New("not inside a git repository")

	// ErrCommitNotFound indicates a revision that does not name a commit.
	ErrCommitNotFound = errors.New("commit not found")

	// ErrInvalidHash indicates a revision that is not an abbreviated or full
	// commit hash.
	ErrInvalidHash = errors.New("invalid commit hash")
)

var hashPattern = regexp.MustCompile(`^[0-9a-fA-F]{4,64}$`)

// Options tunes history fetches.
//
// When the repository has more than Threshold commits and the caller did not
// ask for everything, only commits newer than Since are fetched. This bounds
// the cost of a search on large repositories; older commits are not
// searched in that case.
type Options struct {
	Threshold int
	Since     string
}

// DefaultOptions returns the default fetch window.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Since: DefaultSince}
}

// Client runs git in a single repository directory.
type Client struct {
	executor proc.CommandExecutor
	parser   *Parser
	dir      string
	opts     Options
}

// NewClient creates a Client for dir with the default command executor.
// An empty dir means the process working directory.
func NewClient(dir string, opts Options) *Client {
	return NewClientWithExecutor(&proc.DefaultExecutor{}, dir, opts)
}

// NewClientWithExecutor creates a Client with a custom executor (for testing).
func NewClientWithExecutor(executor proc.CommandExecutor, dir string, opts Options) *Client {
	return &Client{
		executor: executor,
		parser:   NewParser(NewFileFilter()),
		dir:      dir,
		opts:     opts,
	}
}

// IsInsideWorkTree reports whether the client directory is inside a git
// work tree.
func (c *Client) IsInsideWorkTree(ctx context.Context) bool {
	out, err := c.executor.Run(ctx, c.dir, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// CommitCount returns the number of commits reachable from HEAD.
func (c *Client) CommitCount(ctx context.Context) (int, error) {
	out, err := c.executor.Run(ctx, c.dir, "git", "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, fmt.Errorf("git rev-list failed: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("unexpected commit count %q: %w", strings.TrimSpace(string(out)), err)
	}
	return count, nil
}

// Commits fetches the commit history with patches, oldest first, keeping
// only commits that pass filter.
func (c *Client) Commits(ctx context.Context, filter *domain.FilterConfig) ([]domain.Commit, error) {
	args, err := c.logArgs(ctx, filter)
	if err != nil {
		return nil, err
	}

	out, err := c.executor.Run(ctx, c.dir, "git", args...)
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}
	text, err := proc.Text(out)
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	commits, err := c.parser.ParseLog(text, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse git log: %w", err)
	}
	return commits, nil
}

func (c *Client) logArgs(ctx context.Context, filter *domain.FilterConfig) ([]string, error) {
	args := []string{"log", LogFormat(), "-p", "-z", "--no-color"}

	if filter != nil && filter.FetchAll {
		return args, nil
	}

	count, err := c.CommitCount(ctx)
	if err != nil {
		return nil, err
	}
	if count > c.opts.Threshold {
		slog.Debug("Large repository, limiting history window",
			"commits", count, "threshold", c.opts.Threshold, "since", c.opts.Since)
		args = append(args, "--since="+c.opts.Since)
	}
	return args, nil
}

// Authors returns every distinct commit author, by name, in log order.
func (c *Client) Authors(ctx context.Context) ([]domain.Author, error) {
	out, err := c.executor.Run(ctx, c.dir, "git", "log", "--pretty=format:%an"+Delimiter+"%ae")
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}
	text, err := proc.Text(out)
	if err != nil {
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	set := domain.NewAuthorSet()
	for _, line := range strings.Split(text, "\n") {
		name, email, ok := strings.Cut(line, Delimiter)
		if !ok || strings.Contains(email, Delimiter) {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set.Add(domain.Author{Name: name, Email: strings.TrimSpace(email)})
	}
	return set.Authors(), nil
}

// Commit fetches the single commit named by hash, with its patch. hash may be
// abbreviated.
func (c *Client) Commit(ctx context.Context, hash string) (domain.Commit, error) {
	if !hashPattern.MatchString(hash) {
		return domain.Commit{}, fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}

	out, err := c.executor.Run(ctx, c.dir, "git", "log", LogFormat(), "-p", "-z", "--no-color", "-n", "1", hash, "--")
	if err != nil {
		return domain.Commit{}, fmt.Errorf("%w: %s", ErrCommitNotFound, hash)
	}
	text, err := proc.Text(out)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("git log failed: %w", err)
	}

	commits, err := c.parser.ParseLog(text, nil)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("failed to parse git log: %w", err)
	}
	if len(commits) == 0 {
		return domain.Commit{}, fmt.Errorf("%w: %s", ErrCommitNotFound, hash)
	}
	return commits[0], nil
}
