package testkit

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"testing"

	"github.com/sha1n/gitm/internal/app"
	"github.com/spf13/pflag"
)

// Service represents a test service that can be started and stopped
type Service interface {
	Start() (map[string]any, error)
	Stop() error
	GetName() string
}

// Env starts services in order, collects the properties they publish and
// stops them in reverse order.
type Env struct {
	services []Service
	started  int
	props    map[string]any
}

// NewTestEnv creates an environment over services
func NewTestEnv(services ...Service) *Env {
	return &Env{services: services, props: make(map[string]any)}
}

// Start starts every service. When one fails, the ones already started are
// stopped and the error names the failing service.
func (e *Env) Start() (map[string]any, error) {
	for _, s := range e.services[e.started:] {
		props, err := s.Start()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("%s: %w", s.GetName(), err), e.Stop())
		}
		e.started++
		for k, v := range props {
			e.props[k] = v
		}
	}
	return e.props, nil
}

// Stop stops started services in reverse order and joins their errors
func (e *Env) Stop() error {
	var errs []error
	for ; e.started > 0; e.started-- {
		s := e.services[e.started-1]
		if err := s.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.GetName(), err))
		}
	}
	return errors.Join(errs...)
}

// String returns a published property, or "" when absent
func (e *Env) String(name string) string {
	v, _ := e.props[name].(string)
	return v
}

// RepoDir is the directory of the scripted repository
func (e *Env) RepoDir() string { return e.String(PropRepoDir) }

// HeadHash is the full hash of the repository's last commit
func (e *Env) HeadHash() string { return e.String(PropHeadHash) }

// BaseURL is the root URL of the SSE server
func (e *Env) BaseURL() string { return e.String(PropBaseURL) }

// MustStart starts env and registers its shutdown with t
func MustStart(t testing.TB, env *Env) *Env {
	t.Helper()
	t.Cleanup(func() {
		if err := env.Stop(); err != nil {
			t.Logf("failed to stop test environment: %v", err)
		}
	})
	if _, err := env.Start(); err != nil {
		t.Fatalf("Failed to start test environment: %v", err)
	}
	return env
}

// StartRepo starts a repository holding commits
func StartRepo(t testing.TB, commits ...Commit) *Env {
	t.Helper()
	return MustStart(t, NewTestEnv(NewGitRepoService(commits...)))
}

// StartServer starts a repository holding commits and a gitm SSE server over
// it, configured by opts
func StartServer(t testing.TB, opts *FlagOptions, commits ...Commit) *Env {
	t.Helper()
	repo := NewGitRepoService(commits...)
	return MustStart(t, NewTestEnv(repo, NewServerService(repo, NewTestFlags(t, opts))))
}

// freePort returns a port the kernel reports as unused on host
func freePort(host string) (int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// FlagOptions configures NewTestFlags
type FlagOptions struct {
	Port     int      // Uses a free port if 0
	Host     string   // Defaults to "127.0.0.1"
	AuthType string   // Defaults to "none"
	APIKeys  []string // Set with AuthType "apikey"
	Classify bool     // LLM classification stays disabled unless set
}

// NewTestFlags creates a serve pflag.FlagSet for an SSE server
func NewTestFlags(t testing.TB, opts *FlagOptions) *pflag.FlagSet {
	t.Helper()
	if opts == nil {
		opts = &FlagOptions{}
	}

	host := opts.Host
	if host == "" {
		host = "127.0.0.1"
	}
	authType := opts.AuthType
	if authType == "" {
		authType = "none"
	}
	port := opts.Port
	if port == 0 {
		var err error
		if port, err = freePort(host); err != nil {
			t.Fatalf("Failed to get free port: %v", err)
		}
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	app.RegisterServeFlags(flags)

	values := map[string]string{
		"transport": "sse",
		"host":      host,
		"port":      strconv.Itoa(port),
		"auth-type": authType,
	}
	for _, key := range opts.APIKeys {
		_ = flags.Set("auth-api-keys", key)
	}
	if !opts.Classify {
		values["disable-classifications"] = "true"
	}
	for name, value := range values {
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("Failed to set flag %s: %v", name, err)
		}
	}
	return flags
}
