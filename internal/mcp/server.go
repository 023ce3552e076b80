package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gitm/internal/search"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// Searcher backs the search tool. The tool is not registered when nil.
	Searcher search.Searcher
	Defaults search.ToolDefaults

	// Commits backs the show tool. The tool is not registered when nil.
	Commits       search.CommitReader
	MaxPatchBytes int
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Searcher != nil {
		search.RegisterSearchTool(s, cfg.Searcher, cfg.Defaults)
	}
	if cfg.Commits != nil {
		search.RegisterShowTool(s, cfg.Commits, cfg.MaxPatchBytes)
	}

	return s
}
