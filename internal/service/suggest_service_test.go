package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/repository"
	"tscat/internal/service"
	"tscat/internal/service/ai"
)

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	inputs  []string
}

func (p *fakeProvider) Test(context.Context) (string, error) { return "ok", nil }

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Complete(_ context.Context, systemPrompt, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, systemPrompt)
	p.inputs = append(p.inputs, content)
	return p.reply, p.err
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inputs)
}

type suggestFixture struct {
	*fixture
	provider *fakeProvider
	settings service.SettingsService
	svc      service.SuggestService
}

func newSuggestFixture(t *testing.T) *suggestFixture {
	t.Helper()
	f := newFixture(t)
	limiter := ai.NewRateLimiter(100)
	sf := &suggestFixture{
		fixture:  f,
		provider: &fakeProvider{},
		settings: service.NewSettingsService(repository.NewSettingsRepository(f.db), limiter),
	}
	factory := func(cfg ai.Config) (ai.Provider, error) {
		if cfg.Provider == "broken" {
			return nil, ai.ErrInvalidProvider
		}
		return sf.provider, nil
	}
	sf.svc = service.NewSuggestService(f.catalogs, f.messages, repository.NewSuggestionRepository(f.db), sf.settings, limiter, factory)
	return sf
}

func (sf *suggestFixture) configure(t *testing.T) {
	t.Helper()
	require.NoError(t, sf.settings.SetAISettings(context.Background(), &service.AISettings{
		Provider: ai.ProviderOpenAI,
		APIKey:   "sk-test-0123456789abcdef",
		Model:    "gpt-4o-mini",
	}))
}

func TestSuggestService_SuggestAndCache(t *testing.T) {
	sf := newSuggestFixture(t)
	sf.configure(t)
	c := sf.importExcerpt(t)
	resigns := findMessage(t, sf.fixture, c.ID, "Analysis", "Resigns")
	ctx := context.Background()

	sf.provider.reply = "<input>\nAbbandona\n</input>"
	res, err := sf.svc.Suggest(ctx, resigns.ID, false)
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, "Abbandona", res.Suggestion.Text)
	require.Equal(t, "fake", res.Suggestion.Provider)
	require.Equal(t, "gpt-4o-mini", res.Suggestion.Model)
	require.Equal(t, "it_IT", res.Suggestion.Language)
	require.Nil(t, res.Forms)
	require.Equal(t, "<input>\nResigns\n</input>", sf.provider.inputs[0])
	require.Contains(t, sf.provider.prompts[0], "Italian")

	res, err = sf.svc.Suggest(ctx, resigns.ID, false)
	require.NoError(t, err)
	require.True(t, res.Cached)
	require.Equal(t, 1, sf.provider.calls())

	sf.provider.reply = "Si arrende"
	res, err = sf.svc.Suggest(ctx, resigns.ID, true)
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, "Si arrende", res.Suggestion.Text)
	require.Equal(t, 2, sf.provider.calls())

	// the message itself stays untouched
	msg, err := sf.messages.GetByID(ctx, resigns.ID)
	require.NoError(t, err)
	require.Empty(t, msg.Translation)
	require.Equal(t, "unfinished", msg.Status)

	n, err := sf.svc.Clear(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSuggestService_NumerusForms(t *testing.T) {
	sf := newSuggestFixture(t)
	sf.configure(t)
	c := sf.importExcerpt(t)
	ctx := context.Background()

	black := findMessage(t, sf.fixture, c.ID, "AnalysisWidget", "Black wins in %n moves")
	messages := service.NewMessageService(sf.catalogs, sf.messages, repository.NewTxRunner(sf.db), nil)
	_, err := messages.UpdateTranslation(ctx, black.ID, service.UpdateTranslationInput{Forms: []string{"Il Nero vince in %n mossa", ""}})
	require.NoError(t, err)

	sf.provider.reply = "Il Nero vince in %n mossa"
	_, err = sf.svc.Suggest(ctx, black.ID, false)
	require.ErrorIs(t, err, service.ErrAIReply)

	sf.provider.reply = "Il Nero vince in %n mossa\nIl Nero vince in %n mosse\n"
	res, err := sf.svc.Suggest(ctx, black.ID, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Il Nero vince in %n mossa", "Il Nero vince in %n mosse"}, res.Forms)
	require.Contains(t, sf.provider.prompts[1], "2")
}

func TestSuggestService_Errors(t *testing.T) {
	sf := newSuggestFixture(t)
	c := sf.importExcerpt(t)
	ctx := context.Background()
	resigns := findMessage(t, sf.fixture, c.ID, "Analysis", "Resigns")
	mate := findMessage(t, sf.fixture, c.ID, "Analysis", "Mate")

	_, err := sf.svc.Suggest(ctx, resigns.ID, false)
	require.ErrorIs(t, err, service.ErrAIUnavailable)

	sf.configure(t)
	_, err = sf.svc.Suggest(ctx, mate.ID, false)
	require.ErrorIs(t, err, service.ErrConflict)
	_, err = sf.svc.Suggest(ctx, 1, false)
	require.ErrorIs(t, err, service.ErrNotFound)

	sf.provider.err = errors.New("upstream 500")
	_, err = sf.svc.Suggest(ctx, resigns.ID, false)
	require.Error(t, err)
	require.NotErrorIs(t, err, service.ErrAIReply)

	sf.provider.err = nil
	sf.provider.reply = "   "
	_, err = sf.svc.Suggest(ctx, resigns.ID, false)
	require.ErrorIs(t, err, service.ErrAIReply)

	_, err = sf.svc.Clear(ctx, c.ID+1)
	require.ErrorIs(t, err, service.ErrNotFound)
}
