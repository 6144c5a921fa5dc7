package ai

import (
	"context"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// CompatibleProvider implements Provider for OpenAI-compatible APIs
// such as OpenRouter, Ollama or a self-hosted gateway.
type CompatibleProvider struct {
	client          openai.Client
	model           string
	thinking        bool
	thinkingBudget  int
	reasoningEffort string
}

// NewCompatibleProvider creates a new OpenAI-compatible provider.
func NewCompatibleProvider(apiKey, baseURL, model string, thinking bool, thinkingBudget int, reasoningEffort string, httpClient *http.Client) (*CompatibleProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &CompatibleProvider{
		client:          openai.NewClient(opts...),
		model:           model,
		thinking:        thinking,
		thinkingBudget:  thinkingBudget,
		reasoningEffort: reasoningEffort,
	}, nil
}

// Test sends a test message and returns the response.
func (p *CompatibleProvider) Test(ctx context.Context) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: chatMessages("", "Hello world"),
	}
	opts, reasoning := p.reasoningOptions()
	if !reasoning {
		params.MaxTokens = openai.Int(50)
	}
	return p.send(ctx, params, opts)
}

// Name returns the provider name.
func (p *CompatibleProvider) Name() string {
	return ProviderCompatible
}

// Complete generates a response without streaming.
func (p *CompatibleProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: chatMessages(systemPrompt, content),
	}
	opts, _ := p.reasoningOptions()
	return p.send(ctx, params, opts)
}

// reasoningOptions builds the vendor "reasoning" body field. The second
// result is true when reasoning was requested.
func (p *CompatibleProvider) reasoningOptions() ([]option.RequestOption, bool) {
	if !p.thinking {
		return []option.RequestOption{
			option.WithJSONSet("reasoning", map[string]any{"enabled": false}),
		}, false
	}
	reasoning := map[string]any{}
	if p.reasoningEffort != "" {
		reasoning["effort"] = p.reasoningEffort
	} else if p.thinkingBudget > 0 {
		reasoning["max_tokens"] = p.thinkingBudget
	}
	if len(reasoning) == 0 {
		return nil, false
	}
	return []option.RequestOption{option.WithJSONSet("reasoning", reasoning)}, true
}

func (p *CompatibleProvider) send(ctx context.Context, params openai.ChatCompletionNewParams, opts []option.RequestOption) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, params, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
