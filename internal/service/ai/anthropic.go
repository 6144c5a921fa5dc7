package ai

import (
	"context"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultMaxTokens bounds a suggestion reply; TS strings are short.
const defaultMaxTokens = 1024

// AnthropicProvider implements Provider for Anthropic API.
type AnthropicProvider struct {
	client         anthropic.Client
	model          string
	thinking       bool
	thinkingBudget int
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, baseURL, model string, thinking bool, thinkingBudget int, httpClient *http.Client) (*AnthropicProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &AnthropicProvider{
		client:         anthropic.NewClient(opts...),
		model:          model,
		thinking:       thinking,
		thinkingBudget: thinkingBudget,
	}, nil
}

// Test sends a test message and returns the response.
func (p *AnthropicProvider) Test(ctx context.Context) (string, error) {
	return p.send(ctx, p.params("", "Hello world", 50))
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}

// Complete generates a response without streaming.
func (p *AnthropicProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	return p.send(ctx, p.params(systemPrompt, content, defaultMaxTokens))
}

func (p *AnthropicProvider) params(systemPrompt, content string, maxTokens int64) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model: anthropic.Model(p.model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(content)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	if p.thinking && p.thinkingBudget > 0 {
		params.MaxTokens = int64(p.thinkingBudget) + maxTokens
		params.Thinking = anthropic.ThinkingConfigParamOfEnabled(int64(p.thinkingBudget))
	} else {
		params.MaxTokens = maxTokens
		// some models default to thinking enabled
		disabled := anthropic.NewThinkingConfigDisabledParam()
		params.Thinking = anthropic.ThinkingConfigParamUnion{OfDisabled: &disabled}
	}
	return params
}

func (p *AnthropicProvider) send(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	// skip thinking blocks
	for _, block := range resp.Content {
		if v, ok := block.AsAny().(anthropic.TextBlock); ok {
			return v.Text, nil
		}
	}
	return "", nil
}
