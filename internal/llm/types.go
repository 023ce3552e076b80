package llm

import "github.com/google/jsonschema-go/jsonschema"

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one chat message sent to the model.
type Message struct {
	Role       Role   `json:"role"`
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// Tool is a function the model may call.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function describes a callable tool and its JSON schema parameters.
type Function struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// NewFunctionTool wraps a function description as a tool.
func NewFunctionTool(fn Function) Tool {
	return Tool{Type: "function", Function: fn}
}

// ToolChoice names the function the model must call.
type ToolChoice struct {
	Type     string         `json:"type"`
	Function ToolChoiceName `json:"function"`
}

// ToolChoiceName identifies a function in a ToolChoice.
type ToolChoiceName struct {
	Name string `json:"name"`
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []Message   `json:"messages"`
	Temperature float64     `json:"temperature"`
	Tools       []Tool      `json:"tools,omitempty"`
	ToolChoice  *ToolChoice `json:"tool_choice,omitempty"`
}

// ChatResponse is the subset of a chat completion response gitm reads.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one completion alternative.
type Choice struct {
	Message ResponseMessage `json:"message"`
}

// ResponseMessage is the model's reply.
type ResponseMessage struct {
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the raw JSON arguments of a tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FirstToolCall returns the first tool call of the first choice.
func (r *ChatResponse) FirstToolCall() (ToolCall, error) {
	if r == nil || len(r.Choices) == 0 || len(r.Choices[0].Message.ToolCalls) == 0 {
		return ToolCall{}, ErrNoToolCall
	}
	return r.Choices[0].Message.ToolCalls[0], nil
}
