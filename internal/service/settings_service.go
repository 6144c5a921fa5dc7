package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tscat/internal/logger"
	"tscat/internal/network"
	"tscat/internal/repository"
	"tscat/internal/service/ai"
)

// AISettings holds the provider used for translation suggestions.
type AISettings struct {
	Provider        string `json:"provider"`
	APIKey          string `json:"apiKey"`
	BaseURL         string `json:"baseUrl"`
	Model           string `json:"model"`
	Thinking        bool   `json:"thinking"`
	ThinkingBudget  int    `json:"thinkingBudget"`
	ReasoningEffort string `json:"reasoningEffort"`
	RateLimit       int    `json:"rateLimit"`
	ProxyURL        string `json:"proxyUrl"`
}

const (
	keyAIProvider        = "ai.provider"
	keyAIAPIKey          = "ai.api_key"
	keyAIBaseURL         = "ai.base_url"
	keyAIModel           = "ai.model"
	keyAIThinking        = "ai.thinking"
	keyAIThinkingBudget  = "ai.thinking_budget"
	keyAIReasoningEffort = "ai.reasoning_effort"
	keyAIRateLimit       = "ai.rate_limit"
	keyAIProxyURL        = "ai.proxy_url"
)

type SettingsService interface {
	// GetAISettings returns the AI configuration with a masked API key.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings stores the configuration. An empty or masked API key
	// keeps the stored one.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// TestAI sends a probe message with the given configuration.
	TestAI(ctx context.Context, settings *AISettings) (string, error)
	// ProviderConfig returns the stored configuration with the real key.
	ProviderConfig(ctx context.Context) (ai.Config, error)
}

type settingsService struct {
	repo    repository.SettingsRepository
	limiter *ai.RateLimiter
}

func NewSettingsService(repo repository.SettingsRepository, limiter *ai.RateLimiter) SettingsService {
	return &settingsService{repo: repo, limiter: limiter}
}

func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	settings := settingsFrom(values)
	settings.APIKey = maskAPIKey(settings.APIKey)
	return settings, nil
}

func (s *settingsService) ProviderConfig(ctx context.Context) (ai.Config, error) {
	values, err := s.load(ctx)
	if err != nil {
		return ai.Config{}, err
	}
	settings := settingsFrom(values)
	return ai.Config{
		Provider:        settings.Provider,
		APIKey:          settings.APIKey,
		BaseURL:         settings.BaseURL,
		Model:           settings.Model,
		Thinking:        settings.Thinking,
		ThinkingBudget:  settings.ThinkingBudget,
		ReasoningEffort: settings.ReasoningEffort,
		ProxyURL:        settings.ProxyURL,
	}, nil
}

func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	switch settings.Provider {
	case "", ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderCompatible:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, settings.Provider)
	}
	if settings.ThinkingBudget < 0 || settings.RateLimit < 0 {
		return ErrInvalid
	}
	if err := network.ValidateProxyURL(settings.ProxyURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if settings.Provider != "" {
		if err := s.repo.Set(ctx, keyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if settings.APIKey != "" && !isMaskedKey(settings.APIKey) {
		if err := s.repo.Set(ctx, keyAIAPIKey, settings.APIKey); err != nil {
			return fmt.Errorf("set api key: %w", err)
		}
	}
	pairs := []struct{ key, value string }{
		{keyAIBaseURL, strings.TrimSpace(settings.BaseURL)},
		{keyAIModel, strings.TrimSpace(settings.Model)},
		{keyAIThinking, strconv.FormatBool(settings.Thinking)},
		{keyAIThinkingBudget, strconv.Itoa(settings.ThinkingBudget)},
		{keyAIReasoningEffort, settings.ReasoningEffort},
		{keyAIRateLimit, strconv.Itoa(settings.RateLimit)},
		{keyAIProxyURL, strings.TrimSpace(settings.ProxyURL)},
	}
	for _, p := range pairs {
		if err := s.repo.Set(ctx, p.key, p.value); err != nil {
			return fmt.Errorf("set %s: %w", p.key, err)
		}
	}

	if s.limiter != nil && settings.RateLimit > 0 {
		s.limiter.SetLimit(settings.RateLimit)
	}
	logger.Info("ai settings updated", "module", "service", "action", "update", "resource", "settings", "result", "ok", "provider", settings.Provider, "model", settings.Model)
	return nil
}

func (s *settingsService) TestAI(ctx context.Context, settings *AISettings) (string, error) {
	apiKey := settings.APIKey
	if apiKey == "" || isMaskedKey(apiKey) {
		stored, err := s.repo.Get(ctx, keyAIAPIKey)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = ""
		if stored != nil {
			apiKey = stored.Value
		}
	}

	p, err := ai.NewProvider(ai.Config{
		Provider:        settings.Provider,
		APIKey:          apiKey,
		BaseURL:         settings.BaseURL,
		Model:           settings.Model,
		Thinking:        settings.Thinking,
		ThinkingBudget:  settings.ThinkingBudget,
		ReasoningEffort: settings.ReasoningEffort,
		ProxyURL:        settings.ProxyURL,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return p.Test(ctx)
}

func (s *settingsService) load(ctx context.Context) (map[string]string, error) {
	list, err := s.repo.GetByPrefix(ctx, "ai.")
	if err != nil {
		return nil, fmt.Errorf("load ai settings: %w", err)
	}
	values := make(map[string]string, len(list))
	for _, setting := range list {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

func settingsFrom(values map[string]string) *AISettings {
	settings := &AISettings{
		Provider:        ai.ProviderOpenAI,
		ThinkingBudget:  10000,
		ReasoningEffort: "medium",
		RateLimit:       ai.DefaultRateLimit,
	}
	if v := values[keyAIProvider]; v != "" {
		settings.Provider = v
	}
	settings.APIKey = values[keyAIAPIKey]
	settings.BaseURL = values[keyAIBaseURL]
	settings.Model = values[keyAIModel]
	settings.ProxyURL = values[keyAIProxyURL]
	settings.Thinking = values[keyAIThinking] == "true"
	if n, err := strconv.Atoi(values[keyAIThinkingBudget]); err == nil && n > 0 {
		settings.ThinkingBudget = n
	}
	// an empty stored effort selects budget mode for compatible providers
	if v, ok := values[keyAIReasoningEffort]; ok {
		settings.ReasoningEffort = v
	}
	if n, err := strconv.Atoi(values[keyAIRateLimit]); err == nil && n > 0 {
		settings.RateLimit = n
	}
	return settings
}

// maskAPIKey keeps a short vendor prefix and the last three characters.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	return apiKey[:prefixEnd] + "***" + apiKey[len(apiKey)-3:]
}

func isMaskedKey(key string) bool {
	return key != "" && len(key) < 20 && strings.Contains(key, "***")
}
