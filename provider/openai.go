package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIOptions configure the OpenAI provider adapter. Fields mirror a
// subset of Chat Completion parameters intentionally kept minimal; extend
// via functional options without breaking callers.
type OpenAIOptions struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
}

// OpenAIProvider wraps the OpenAI Chat Completions API behind the generic
// Provider interface. The underlying client is safe for concurrent use.
type OpenAIProvider struct {
	client *openai.Client
	opts   OpenAIOptions
}

// NewOpenAIProvider creates a new OpenAI provider using the official client.
func NewOpenAIProvider(optFns ...func(o *OpenAIOptions)) *OpenAIProvider {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := openai.NewClient(clientOpts...)

	return &OpenAIProvider{client: &client, opts: opts}
}

// NewOpenAIProviderFromClient creates a provider from an existing client.
func NewOpenAIProviderFromClient(client *openai.Client, optFns ...func(o *OpenAIOptions)) *OpenAIProvider {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAIProvider{client: client, opts: opts}
}

// Generate implements Provider against OpenAI Chat Completions
// (non-streaming).
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.temperature(req)),
		MaxCompletionTokens: openai.Int(p.maxTokens(req)),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]
	return &Response{Text: ch0.Message.Content, FinishReason: ch0.FinishReason}, nil
}

// Info implements Provider.
func (p *OpenAIProvider) Info() Info {
	return Info{Name: NameOpenAI, Model: p.opts.Model}
}

func (p *OpenAIProvider) maxTokens(req Request) int64 {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return p.opts.MaxCompletionTokens
}

func (p *OpenAIProvider) temperature(req Request) float64 {
	if req.Temperature > 0 {
		return req.Temperature
	}
	return p.opts.Temperature
}
