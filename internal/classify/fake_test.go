package classify

import (
	"context"
	"sync"

	"github.com/sha1n/gitm/internal/domain"
	"github.com/sha1n/gitm/internal/llm"
)

type chatCall struct {
	messages    []llm.Message
	tools       []llm.Tool
	temperature float64
}

// fakeChatter answers every request with a tool call carrying args.
type fakeChatter struct {
	mu    sync.Mutex
	args  string
	err   error
	resp  *llm.ChatResponse
	calls []chatCall
}

func newFakeChatter(args string) *fakeChatter {
	return &fakeChatter{args: args}
}

func (f *fakeChatter) Chat(_ context.Context, messages []llm.Message, tools []llm.Tool, temperature float64) (*llm.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatCall{messages: messages, tools: tools, temperature: temperature})
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &llm.ChatResponse{Choices: []llm.Choice{{Message: llm.ResponseMessage{
		Role: llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: llm.FunctionCall{Name: toolName, Arguments: f.args},
		}},
	}}}}, nil
}

func (f *fakeChatter) lastCall() chatCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeChatter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type staticAuthors struct {
	authors []domain.Author
	err     error
}

func (s staticAuthors) Authors(context.Context) ([]domain.Author, error) {
	return s.authors, s.err
}
