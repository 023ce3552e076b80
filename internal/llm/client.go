// Package llm is a minimal client for OpenAI-compatible chat completion
// endpoints with tool calling.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 30 * time.Second

	chatEndpoint = "/chat/completions"

	// maxErrorBody caps how much of an error response is kept in errors.
	maxErrorBody = 4096
)

var (
	// ErrStatus indicates the service answered with a non-OK status.
	ErrStatus = errors.New("chat completion failed")

	// ErrNoToolCall indicates the model did not call the offered tool.
	ErrNoToolCall = errors.New("response contains no tool call")

	// ErrMissingAPIKey indicates the client was built without credentials.
	ErrMissingAPIKey = errors.New("API key is required")
)

// Chatter sends chat completion requests.
type Chatter interface {
	Chat(ctx context.Context, messages []Message, tools []Tool, temperature float64) (*ChatResponse, error)
}

// Options configures a Client. Zero fields take their defaults.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to a chat completion endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Chat requests one completion. A single tool is forced through
// tool_choice. A non-OK status yields an error wrapping ErrStatus with the
// response body.
func (c *Client) Chat(ctx context.Context, messages []Message, tools []Tool, temperature float64) (*ChatResponse, error) {
	payload := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		Tools:       tools,
	}
	if len(tools) == 1 {
		payload.ToolChoice = &ToolChoice{Type: "function", Function: ToolChoiceName{Name: tools[0].Function.Name}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %d %s: %s", ErrStatus, resp.StatusCode,
			http.StatusText(resp.StatusCode), strings.TrimSpace(string(msg)))
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	slog.Debug("Chat completion done",
		"model", c.model,
		"duration", time.Since(start),
		"total_tokens", out.Usage.TotalTokens)
	return &out, nil
}
