package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gitm/internal/config"
	mcputil "github.com/sha1n/gitm/internal/mcp"
	"github.com/sha1n/gitm/internal/search"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name.
const ServerName = "gitm"

// RunParams contains dependencies for the serve command
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	Preflight         func(context.Context, *config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings, string) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
	LogOutput         io.Writer     // Optional: defaults to stderr
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	env := DefaultEnvironment()
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateServeSettings,
		Preflight:      env.CheckPreconditions,
		StartSSEServer: StartSSEServer,
		CreateServer:   env.CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid buffering issues
	configureLogging(params.LogOutput, settings.LogLevel, slog.LevelInfo)

	slog.Info("Starting gitm MCP server", "version", version)
	config.LogServe(settings, slog.Default())

	if err := params.Preflight(ctx, settings); err != nil {
		return err
	}

	mcpServer, cleanup, err := params.CreateServer(settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Start server
	if settings.Transport == "stdio" {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, settings)
}

// CreateMCPServer creates the MCP server with the search and show tools
// registered
func (e Environment) CreateMCPServer(settings *config.Settings, version string) (*mcp.Server, func(), error) {
	agent, err := e.NewAgent(settings, true)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search agent: %w", err)
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:     ServerName,
		Version:  version,
		Searcher: agent,
		Defaults: search.ToolDefaults{
			MaxResults: settings.MaxResults,
			Classify:   !settings.DisableClassifications,
		},
		Commits: e.history(settings),
	})

	return server, nil, nil
}

// configureLogging installs a text handler on w as the default logger. An
// empty level selects fallback.
func configureLogging(w io.Writer, level string, fallback slog.Level) {
	if w == nil {
		w = os.Stderr
	}
	lvl := fallback
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = fallback
		}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
