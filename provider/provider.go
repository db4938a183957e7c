package provider

import (
	"context"
	"fmt"
	"sync"
)

// Request captures the normalized generation input produced by capability
// handlers. Prompts are plain text; the framework never streams and never
// exposes tool calling, so the shape stays deliberately minimal.
type Request struct {
	// System is an optional system / instruction prefix.
	System string `json:"system,omitempty"`
	// Prompt is the user-facing generation prompt.
	Prompt string `json:"prompt"`
	// Temperature controls randomness; zero means provider default.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxTokens bounds the completion length; zero means adapter default.
	MaxTokens int64 `json:"max_tokens,omitempty"`
}

// Response is the terminal generation output.
type Response struct {
	// Text is the raw generated text, unstructured by contract; callers run
	// it through the extract package when they expect an object.
	Text string `json:"text"`
	// FinishReason explains why generation stopped ("stop", "length", ...).
	FinishReason string `json:"finish_reason,omitempty"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name  string `json:"name"`  // "anthropic", "openai", "mock", ...
	Model string `json:"model"` // concrete model identifier
}

// Provider is the minimal interface capability handlers use to drive text
// generation. Implementations must be safe for concurrent Generate calls:
// agents do not serialize their own executions and rely on this guarantee.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// MockProvider is a lightweight in-memory Provider useful for tests &
// examples. Canned completions are matched by exact prompt; unmatched
// prompts get a deterministic echo response.
type MockProvider struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	fallback  string
	err       error
	calls     int
}

// NewMockProvider constructs a MockProvider with the given display name.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		info:      Info{Name: name, Model: "mock-1"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockProvider) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// RespondWith sets the completion returned for prompts without a canned
// match, replacing the echo default. Useful when the exact prompt text is
// produced by a template and awkward to reproduce in a test.
func (m *MockProvider) RespondWith(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = response
}

// FailWith makes every subsequent Generate call return err. Pass nil to
// restore normal behavior.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of Generate invocations observed.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Provider.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls++
	err := m.err
	full := m.responses[req.Prompt]
	if full == "" {
		full = m.fallback
	}
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if full == "" {
		full = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}
	return &Response{Text: full, FinishReason: "stop"}, nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
