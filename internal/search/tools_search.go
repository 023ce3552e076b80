package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolName is the name the search tool is registered under.
const ToolName = "search_history"

// SearchArgument defines search parameters.
type SearchArgument struct {
	Query              string `json:"query" jsonschema:"Free-text search query; may mention an author or a time period"`
	IncludeCodePatches bool   `json:"include_code_patches,omitempty" jsonschema:"Also rank commits by the code lines they added"`
	IncludeIssues      bool   `json:"include_issues,omitempty" jsonschema:"Also search GitHub issues"`
	IssuesOnly         bool   `json:"issues_only,omitempty" jsonschema:"Search GitHub issues only"`
	SearchAll          bool   `json:"search_all,omitempty" jsonschema:"Search the full history of large repositories"`
	MaxResults         int    `json:"max_results,omitempty" jsonschema:"Maximum results per ranking pass"`
}

// Searcher runs searches.
type Searcher interface {
	Search(ctx context.Context, req Request) (*Results, error)
}

// ToolDefaults are applied to tool calls that leave a parameter unset.
type ToolDefaults struct {
	MaxResults int
	Classify   bool
}

// SearchHandler handles the search MCP tool.
type SearchHandler struct {
	searcher Searcher
	defaults ToolDefaults
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searcher Searcher, defaults ToolDefaults) *SearchHandler {
	return &SearchHandler{searcher: searcher, defaults: defaults}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}
	if args.IssuesOnly && args.IncludeIssues {
		return errorResult("issues_only and include_issues are mutually exclusive"), nil, nil
	}

	req := h.request(args)
	results, err := h.searcher.Search(ctx, req)
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: FormatMarkdown(args.Query, results)},
		},
	}, nil, nil
}

func (h *SearchHandler) request(args SearchArgument) Request {
	req := Request{
		Query:          args.Query,
		MaxResults:     h.defaults.MaxResults,
		Mode:           ModeCommits,
		IncludePatches: args.IncludeCodePatches,
		Classify:       h.defaults.Classify,
		FetchAll:       args.SearchAll,
	}
	if args.MaxResults > 0 {
		req.MaxResults = args.MaxResults
	}
	switch {
	case args.IssuesOnly:
		req.Mode = ModeIssues
	case args.IncludeIssues:
		req.Mode = ModeCommitsAndIssues
	}
	return req
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// FormatMarkdown renders results for an MCP client.
func FormatMarkdown(query string, results *Results) string {
	if len(results.Commits) == 0 && len(results.Issues) == 0 {
		return fmt.Sprintf("No results found for query: %s", query)
	}

	var sb strings.Builder
	if f := results.Filter; f.HasPredicates() {
		sb.WriteString("Filters:")
		if f.Author != nil {
			fmt.Fprintf(&sb, " author=%s", f.Author.Name)
		}
		if f.Dates != nil {
			fmt.Fprintf(&sb, " since=%s until=%s", formatBound(f.Dates.Since), formatBound(f.Dates.Until))
		}
		sb.WriteString("\n\n")
	}

	if len(results.Commits) > 0 {
		fmt.Fprintf(&sb, "## Commits (%d)\n\n", len(results.Commits))
		for i, c := range results.Commits {
			fmt.Fprintf(&sb, "### %d. %s %s\n", i+1, c.ShortHash(), c.Title)
			fmt.Fprintf(&sb, "**Author**: %s | **Date**: %s | **Hash**: %s\n", c.Author.Name, c.Date.Format(time.RFC3339), c.Hash)
			if c.Body != "" {
				sb.WriteString("\n")
				sb.WriteString(c.Body)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	if len(results.Issues) > 0 {
		fmt.Fprintf(&sb, "## Issues (%d)\n\n", len(results.Issues))
		for i, issue := range results.Issues {
			fmt.Fprintf(&sb, "### %d. #%d %s\n", i+1, issue.Number, issue.Title)
			fmt.Fprintf(&sb, "**Author**: %s | **Created**: %s\n", issue.Author.Name, issue.CreatedAt.Format(time.RFC3339))
			if issue.Body != "" {
				sb.WriteString("\n")
				sb.WriteString(issue.Body)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format("2006-01-02")
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolName,
		Description: "Search the git commit history (and optionally GitHub issues) of the served repository, ranked by relevance",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, searcher Searcher, defaults ToolDefaults) {
	handler := NewSearchHandler(searcher, defaults)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

