package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicOptions configures the Anthropic provider adapter (model id,
// temperature, max tokens, API key). Extend via functional options to
// preserve stability.
type AnthropicOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// AnthropicProvider wraps the Anthropic Messages API behind the generic
// Provider interface. The underlying client is safe for concurrent use, so
// one adapter instance may serve concurrent Generate calls.
type AnthropicProvider struct {
	client *anthropic.Client
	opts   AnthropicOptions
}

// NewAnthropicProvider creates a new Anthropic provider using the official client.
func NewAnthropicProvider(optFns ...func(o *AnthropicOptions)) *AnthropicProvider {
	opts := AnthropicOptions{
		Model:       string(anthropic.ModelClaude3_5Sonnet20241022),
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &AnthropicProvider{
		client: &client,
		opts:   opts,
	}
}

// NewAnthropicProviderFromClient creates a provider from an existing client.
func NewAnthropicProviderFromClient(client *anthropic.Client, optFns ...func(o *AnthropicOptions)) *AnthropicProvider {
	opts := AnthropicOptions{
		Model:       string(anthropic.ModelClaude3_5Sonnet20241022),
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &AnthropicProvider{
		client: client,
		opts:   opts,
	}
}

// Generate implements Provider against the Anthropic Messages API
// (non-streaming). Text blocks in the response are concatenated in order.
func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.opts.Model),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
		MaxTokens:   p.maxTokens(req),
		Temperature: anthropic.Float(p.temperature(req)),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	finishReason := "stop"
	if resp.StopReason != "" {
		finishReason = string(resp.StopReason)
	}

	return &Response{Text: text.String(), FinishReason: finishReason}, nil
}

// Info implements Provider.
func (p *AnthropicProvider) Info() Info {
	return Info{Name: NameAnthropic, Model: p.opts.Model}
}

func (p *AnthropicProvider) maxTokens(req Request) int64 {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return p.opts.MaxTokens
}

func (p *AnthropicProvider) temperature(req Request) float64 {
	if req.Temperature > 0 {
		return req.Temperature
	}
	return p.opts.Temperature
}
