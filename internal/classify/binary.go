// Package classify decides, with a language model, whether a search query
// asks to filter by a given dimension and extracts the filter value.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/sha1n/gitm/internal/llm"
)

// Result is the outcome of a binary classification. Value is meaningful only
// when Classified is true.
type Result[T any] struct {
	Classified bool
	Value      T
}

// Negative returns a result reporting no classification.
func Negative[T any]() Result[T] {
	return Result[T]{}
}

// Positive returns a classified result carrying v.
func Positive[T any](v T) Result[T] {
	return Result[T]{Classified: true, Value: v}
}

// Classifier classifies a query and extracts a value of type T.
type Classifier[T any] interface {
	Classify(ctx context.Context, query string) (Result[T], error)
}

// Property is an optional result field the model fills in on a positive
// classification.
type Property struct {
	Name        string
	Type        string
	Description string
}

// Binary asks the model a yes/no question about a query through a single
// forced tool whose arguments carry the answer.
type Binary struct {
	chatter      llm.Chatter
	systemPrompt string
	instruction  string
	properties   []Property
}

// NewBinary creates a binary classifier. additionalInfo, when not empty, is
// appended to the system prompt under its own heading.
func NewBinary(chatter llm.Chatter, instruction, additionalInfo string, properties ...Property) *Binary {
	prompt := baseContextPrompt + "\n\n" + binaryClassificationPrompt
	if additionalInfo != "" {
		prompt += "\n\n# Additional Information\n" + additionalInfo
	}
	return &Binary{
		chatter:      chatter,
		systemPrompt: prompt,
		instruction:  instruction,
		properties:   properties,
	}
}

// SystemPrompt returns the system message sent with every request.
func (b *Binary) SystemPrompt() string {
	return b.systemPrompt
}

// Tool returns the tool definition offered to the model.
func (b *Binary) Tool() llm.Tool {
	props := map[string]*jsonschema.Schema{
		classificationField: {Type: "boolean", Description: classificationDesc},
	}
	for _, p := range b.properties {
		desc := p.Description
		if !strings.HasSuffix(desc, conditionalDescSuffix) {
			desc += conditionalDescSuffix
		}
		props[p.Name] = &jsonschema.Schema{Type: p.Type, Description: desc}
	}

	return llm.NewFunctionTool(llm.Function{
		Name:        toolName,
		Description: b.instruction,
		Parameters: &jsonschema.Schema{
			Type:       "object",
			Properties: props,
			Required:   []string{classificationField},
		},
	})
}

// Messages returns the conversation sent for query.
func (b *Binary) Messages(query string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: b.systemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("# User query\n%s\n\n# Instruction\n%s", query, b.instruction)},
	}
}

// Raw runs the classification and returns the tool call made by the model.
func (b *Binary) Raw(ctx context.Context, query string) (llm.ToolCall, error) {
	resp, err := b.chatter.Chat(ctx, b.Messages(query), []llm.Tool{b.Tool()}, 0)
	if err != nil {
		return llm.ToolCall{}, err
	}
	return resp.FirstToolCall()
}

// Decode runs the classification and unmarshals the tool call arguments
// into out.
func (b *Binary) Decode(ctx context.Context, query string, out any) error {
	call, err := b.Raw(ctx, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), out); err != nil {
		return fmt.Errorf("invalid classification arguments %q: %w", call.Function.Arguments, err)
	}
	return nil
}
