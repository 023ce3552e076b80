package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/history"
)

// ShowToolName is the name the commit tool is registered under.
const ShowToolName = "show_commit"

// DefaultMaxPatchBytes bounds the patch text returned by the commit tool.
const DefaultMaxPatchBytes = 256 * 1024

// ShowArgument defines show parameters.
type ShowArgument struct {
	Hash         string `json:"hash" jsonschema:"Full or abbreviated commit hash, as returned by search_history"`
	IncludePatch bool   `json:"include_patch,omitempty" jsonschema:"Include the commit's patch"`
}

// CommitReader fetches single commits.
type CommitReader interface {
	Commit(ctx context.Context, hash string) (domain.Commit, error)
}

// ShowHandler handles the show MCP tool.
type ShowHandler struct {
	reader        CommitReader
	maxPatchBytes int
}

// NewShowHandler creates a new show handler. A non-positive maxPatchBytes
// means DefaultMaxPatchBytes.
func NewShowHandler(reader CommitReader, maxPatchBytes int) *ShowHandler {
	if maxPatchBytes <= 0 {
		maxPatchBytes = DefaultMaxPatchBytes
	}
	return &ShowHandler{reader: reader, maxPatchBytes: maxPatchBytes}
}

// Handle fetches a commit and returns it formatted.
func (h *ShowHandler) Handle(ctx context.Context, _ *mcp.CallToolRequest, args ShowArgument) (*mcp.CallToolResult, any, error) {
	hash := strings.TrimSpace(args.Hash)
	if hash == "" {
		return errorResult("Hash cannot be empty"), nil, nil
	}

	commit, err := h.reader.Commit(ctx, hash)
	switch {
	case errors.Is(err, history.ErrInvalidHash):
		return errorResult(fmt.Sprintf("Invalid hash: %s", hash)), nil, nil
	case errors.Is(err, history.ErrCommitNotFound):
		return errorResult(fmt.Sprintf("Commit not found: %s", hash)), nil, nil
	case err != nil:
		return errorResult(fmt.Sprintf("Error reading commit: %s", err)), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Commit**: %s\n", commit.Hash)
	fmt.Fprintf(&sb, "**Author**: %s", commit.Author.Name)
	if commit.Author.Email != "" {
		fmt.Fprintf(&sb, " <%s>", commit.Author.Email)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "**Date**: %s\n\n", commit.Date.Format(time.RFC3339))
	fmt.Fprintf(&sb, "### %s\n", commit.Title)
	if commit.Body != "" {
		sb.WriteString("\n")
		sb.WriteString(commit.Body)
		sb.WriteString("\n")
	}

	if args.IncludePatch {
		sb.WriteString("\n")
		sb.WriteString(h.patch(commit.Patch))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}, nil, nil
}

func (h *ShowHandler) patch(p domain.PatchSet) string {
	if p.IsEmpty() {
		return "*No patch*\n"
	}
	text := p.Render()
	truncated := false
	if len(text) > h.maxPatchBytes {
		text = strings.ToValidUTF8(text[:h.maxPatchBytes], "")
		truncated = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "```diff\n%s\n```\n", strings.TrimRight(text, "\n"))
	if truncated {
		fmt.Fprintf(&sb, "\n*Patch truncated to %.2f KB*\n", float64(h.maxPatchBytes)/1024)
	}
	return sb.String()
}

// GetToolDefinition returns the MCP tool definition.
func (h *ShowHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        ShowToolName,
		Description: "Show a single commit of the served repository, optionally with its patch",
	}
}

// RegisterShowTool registers the show tool with an MCP server.
func RegisterShowTool(server *mcp.Server, reader CommitReader, maxPatchBytes int) {
	handler := NewShowHandler(reader, maxPatchBytes)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
