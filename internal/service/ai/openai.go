package ai

import (
	"context"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIProvider implements Provider for OpenAI API.
type OpenAIProvider struct {
	client          openai.Client
	model           string
	thinking        bool
	reasoningEffort string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey, baseURL, model string, thinking bool, reasoningEffort string, httpClient *http.Client) (*OpenAIProvider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &OpenAIProvider{
		client:          openai.NewClient(opts...),
		model:           model,
		thinking:        thinking,
		reasoningEffort: reasoningEffort,
	}, nil
}

// Test sends a test message and returns the response.
func (p *OpenAIProvider) Test(ctx context.Context) (string, error) {
	params := p.params("", "Hello world")
	if params.ReasoningEffort == "" {
		params.MaxTokens = openai.Int(50)
	}
	return p.send(ctx, params)
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Complete generates a response without streaming.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	return p.send(ctx, p.params(systemPrompt, content))
}

func (p *OpenAIProvider) params(systemPrompt, content string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: chatMessages(systemPrompt, content),
	}
	// reasoning_effort is rejected by non-reasoning models
	if p.thinking && p.isReasoningModel() && p.reasoningEffort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(p.reasoningEffort)
	}
	return params
}

func (p *OpenAIProvider) send(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// isReasoningModel reports whether the model accepts reasoning_effort (o1, o3, o4, gpt-5).
func (p *OpenAIProvider) isReasoningModel() bool {
	model := strings.ToLower(p.model)
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func chatMessages(systemPrompt, content string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	return append(messages, openai.UserMessage(content))
}
