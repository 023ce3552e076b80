package testkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/gitm/internal/app"
	"github.com/sha1n/gitm/internal/config"
	"github.com/spf13/pflag"
)

// Property names published by the services of this package
const (
	PropRepoDir  = "repo_dir"
	PropHeadHash = "head_hash"
	PropBaseURL  = "base_url"
)

// Commit describes one commit created by GitRepoService
type Commit struct {
	Author  string
	Email   string
	Date    time.Time
	Message string
	Files   map[string]string // path -> full content after the commit
}

// GitRepoService creates a throwaway git repository with a scripted history
type GitRepoService struct {
	Commits []Commit

	dir  string
	head string
}

// NewGitRepoService creates a repository service that commits commits in order
func NewGitRepoService(commits ...Commit) *GitRepoService {
	return &GitRepoService{Commits: commits}
}

// GetName implements Service
func (s *GitRepoService) GetName() string {
	return "git-repo"
}

// Dir returns the repository directory once started
func (s *GitRepoService) Dir() string {
	return s.dir
}

// Start implements Service
func (s *GitRepoService) Start() (map[string]any, error) {
	dir, err := os.MkdirTemp("", "gitm-repo-*")
	if err != nil {
		return nil, err
	}
	s.dir = dir

	if _, err := s.git(nil, "init", "-q"); err != nil {
		return nil, err
	}

	for i, c := range s.Commits {
		for path, content := range c.Files {
			full := filepath.Join(dir, path)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				return nil, err
			}
		}
		if _, err := s.git(nil, "add", "-A"); err != nil {
			return nil, err
		}

		date := c.Date.Format(time.RFC3339)
		env := []string{
			"GIT_AUTHOR_NAME=" + c.Author,
			"GIT_AUTHOR_EMAIL=" + c.Email,
			"GIT_AUTHOR_DATE=" + date,
			"GIT_COMMITTER_NAME=" + c.Author,
			"GIT_COMMITTER_EMAIL=" + c.Email,
			"GIT_COMMITTER_DATE=" + date,
		}
		if _, err := s.git(env, "-c", "commit.gpgsign=false", "commit", "-q", "--allow-empty", "-m", c.Message); err != nil {
			return nil, fmt.Errorf("commit %d failed: %w", i, err)
		}
	}

	head, err := s.git(nil, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	s.head = strings.TrimSpace(head)

	return map[string]any{PropRepoDir: s.dir, PropHeadHash: s.head}, nil
}

// Stop implements Service
func (s *GitRepoService) Stop() error {
	if s.dir == "" {
		return nil
	}
	return os.RemoveAll(s.dir)
}

func (s *GitRepoService) git(env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = s.dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "GIT_CONFIG_GLOBAL="+os.DevNull)
	cmd.Env = append(cmd.Env, env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, out)
	}
	return string(out), nil
}

// ServerService runs the gitm SSE server against a GitRepoService repository
type ServerService struct {
	Repo  *GitRepoService
	Flags *pflag.FlagSet

	srv *http.Server
}

// NewServerService creates a server service configured by flags
func NewServerService(repo *GitRepoService, flags *pflag.FlagSet) *ServerService {
	return &ServerService{Repo: repo, Flags: flags}
}

// GetName implements Service
func (s *ServerService) GetName() string {
	return "gitm-server"
}

// Start implements Service
func (s *ServerService) Start() (map[string]any, error) {
	settings, err := config.LoadSettingsWithFlags(s.Flags)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateServeSettings(settings); err != nil {
		return nil, err
	}

	env := app.DefaultEnvironment()
	env.Dir = s.Repo.Dir()

	if err := env.CheckPreconditions(context.Background(), settings); err != nil {
		return nil, err
	}

	mcpServer, _, err := env.CreateMCPServer(settings, "test")
	if err != nil {
		return nil, err
	}
	srv, err := app.NewSSEServer(mcpServer, settings)
	if err != nil {
		return nil, err
	}
	s.srv = srv

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "gitm test server failed: %v\n", err)
		}
	}()

	baseURL := "http://" + srv.Addr
	if err := waitHealthy(baseURL, 5*time.Second); err != nil {
		return nil, err
	}

	return map[string]any{PropBaseURL: baseURL}, nil
}

// Stop implements Service
func (s *ServerService) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func waitHealthy(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become healthy within %s", baseURL, timeout)
}
