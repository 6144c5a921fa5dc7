package ai

import (
	"context"
	"errors"

	"tscat/internal/network"
)

// Provider defines the interface for AI providers.
type Provider interface {
	// Test sends a test message and returns the response.
	Test(ctx context.Context) (string, error)
	// Name returns the provider name.
	Name() string
	// Complete sends one system prompt plus user content and returns the reply text.
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
}

// Config holds the configuration for an AI provider.
type Config struct {
	Provider        string // openai, anthropic, compatible
	APIKey          string
	BaseURL         string // optional for openai, required for compatible
	Model           string
	Thinking        bool   // enable thinking/reasoning
	ThinkingBudget  int    // Anthropic/Compatible budget_tokens
	ReasoningEffort string // OpenAI/Compatible effort: low/medium/high/xhigh/minimal/none
	ProxyURL        string // optional http(s) or socks5 proxy
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// NewProvider creates a new AI provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
	default:
		return nil, ErrInvalidProvider
	}

	client, err := network.NewHTTPClient(cfg.ProxyURL, network.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ReasoningEffort, client)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ThinkingBudget, client)
	default:
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Thinking, cfg.ThinkingBudget, cfg.ReasoningEffort, client)
	}
}

// Factory builds a Provider; NewProvider is the production factory.
type Factory func(cfg Config) (Provider, error)
