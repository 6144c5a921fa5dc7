package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/service/ai"
)

func TestLanguageName(t *testing.T) {
	require.Equal(t, "Italian (Italy)", ai.LanguageName("it_IT"))
	require.Equal(t, "German", ai.LanguageName("de"))
	require.Equal(t, "", ai.LanguageName(""))
	require.Equal(t, "not a tag!", ai.LanguageName("not a tag!"))
}

func TestGetSuggestPrompt_SingleForm(t *testing.T) {
	prompt := ai.GetSuggestPrompt(ai.SuggestInput{
		Context:        "AnalysisWidget",
		Disambiguation: "engine",
		TargetLanguage: "it_IT",
	})
	require.Contains(t, prompt, "<ui_context>AnalysisWidget</ui_context>")
	require.Contains(t, prompt, "<disambiguation>engine</disambiguation>")
	require.Contains(t, prompt, "<source_language>English</source_language>")
	require.Contains(t, prompt, "<target_language>Italian (Italy)</target_language>")
	require.Contains(t, prompt, "single line")
	require.Contains(t, prompt, "%1 to %99")
	require.NotContains(t, prompt, "developer_note")
}

func TestGetSuggestPrompt_Plural(t *testing.T) {
	prompt := ai.GetSuggestPrompt(ai.SuggestInput{TargetLanguage: "ru", Forms: 3})
	require.Contains(t, prompt, "exactly 3 plural forms")
	require.Contains(t, prompt, "keeps %n")
}

func TestWrapInput(t *testing.T) {
	require.Equal(t, "<input>\nResigns\n</input>", ai.WrapInput("Resigns"))
}

func TestParseSuggestion(t *testing.T) {
	require.Equal(t, []string{"Abbandona"}, ai.ParseSuggestion("  Abbandona\n", 1))
	require.Equal(t, []string{"Abbandona"}, ai.ParseSuggestion("<input>\nAbbandona\n</input>", 0))
	require.Nil(t, ai.ParseSuggestion("  ", 1))

	forms := ai.ParseSuggestion("Il Bianco vince in %n mossa\n\nIl Bianco vince in %n mosse\n", 2)
	require.Equal(t, []string{"Il Bianco vince in %n mossa", "Il Bianco vince in %n mosse"}, forms)
	require.Nil(t, ai.ParseSuggestion("solo una", 2))
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := ai.NewProvider(ai.Config{Provider: ai.ProviderOpenAI, Model: "gpt-4o"})
	require.ErrorIs(t, err, ai.ErrMissingAPIKey)
	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k"})
	require.ErrorIs(t, err, ai.ErrMissingModel)
	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", Model: "m"})
	require.ErrorIs(t, err, ai.ErrMissingBaseURL)
	_, err = ai.NewProvider(ai.Config{Provider: "gemini", APIKey: "k", Model: "m"})
	require.ErrorIs(t, err, ai.ErrInvalidProvider)

	p, err := ai.NewProvider(ai.Config{Provider: ai.ProviderCompatible, APIKey: "k", Model: "m", BaseURL: "http://localhost:11434/v1"})
	require.NoError(t, err)
	require.Equal(t, ai.ProviderCompatible, p.Name())

	_, err = ai.NewProvider(ai.Config{Provider: ai.ProviderOpenAI, APIKey: "k", Model: "m", ProxyURL: "ftp://proxy:21"})
	require.Error(t, err)
	p, err = ai.NewProvider(ai.Config{Provider: ai.ProviderAnthropic, APIKey: "k", Model: "m", ProxyURL: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)
	require.Equal(t, ai.ProviderAnthropic, p.Name())
}

func TestOpenAIProvider_IsReasoningModel(t *testing.T) {
	provider, err := ai.NewOpenAIProvider("key", "", "gpt-5-mini", false, "", nil)
	require.NoError(t, err)
	require.True(t, ai.IsReasoningModelForTest(provider))

	provider, err = ai.NewOpenAIProvider("key", "", "gpt-4o", false, "", nil)
	require.NoError(t, err)
	require.False(t, ai.IsReasoningModelForTest(provider))
}

func TestAnthropicProvider_Name(t *testing.T) {
	provider, err := ai.NewAnthropicProvider("key", "https://example.com", "claude-3", false, 0, nil)
	require.NoError(t, err)
	require.Equal(t, ai.ProviderAnthropic, provider.Name())
}

func TestRateLimiter(t *testing.T) {
	rl := ai.NewRateLimiter(0)
	require.Equal(t, ai.DefaultRateLimit, rl.Limit())
	rl.SetLimit(3)
	require.Equal(t, 3, rl.Limit())
	require.NoError(t, rl.Wait(t.Context()))
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := ai.NewRateLimiter(1)
	require.NoError(t, rl.Wait(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.Error(t, rl.Wait(ctx))
}
