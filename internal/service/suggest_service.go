package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tscat/internal/logger"
	"tscat/internal/model"
	"tscat/internal/plural"
	"tscat/internal/repository"
	"tscat/internal/service/ai"
	"tscat/internal/ts"
)

type SuggestResult struct {
	Suggestion model.Suggestion `json:"suggestion"`
	// Forms holds one entry per plural form for numerus messages.
	Forms  []string `json:"forms,omitempty"`
	Cached bool     `json:"cached"`
}

type SuggestService interface {
	// Suggest returns a machine translation for an unfinished message. A
	// stored suggestion is reused unless refresh is set. The message itself
	// is never modified.
	Suggest(ctx context.Context, messageID int64, refresh bool) (SuggestResult, error)
	// Clear drops every stored suggestion of a catalog.
	Clear(ctx context.Context, catalogID int64) (int64, error)
}

type suggestService struct {
	catalogs    repository.CatalogRepository
	messages    repository.MessageRepository
	suggestions repository.SuggestionRepository
	settings    SettingsService
	limiter     *ai.RateLimiter
	newProvider ai.Factory
}

// NewSuggestService wires the suggestion flow. A nil factory uses ai.NewProvider.
func NewSuggestService(
	catalogs repository.CatalogRepository,
	messages repository.MessageRepository,
	suggestions repository.SuggestionRepository,
	settings SettingsService,
	limiter *ai.RateLimiter,
	factory ai.Factory,
) SuggestService {
	if factory == nil {
		factory = ai.NewProvider
	}
	if limiter == nil {
		limiter = ai.NewRateLimiter(ai.DefaultRateLimit)
	}
	return &suggestService{
		catalogs:    catalogs,
		messages:    messages,
		suggestions: suggestions,
		settings:    settings,
		limiter:     limiter,
		newProvider: factory,
	}
}

func (s *suggestService) Suggest(ctx context.Context, messageID int64, refresh bool) (SuggestResult, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SuggestResult{}, ErrNotFound
		}
		return SuggestResult{}, fmt.Errorf("get message: %w", err)
	}
	if ts.Status(msg.Status) != ts.StatusUnfinished {
		return SuggestResult{}, fmt.Errorf("%w: message is %s", ErrConflict, msg.Status)
	}
	catalog, err := s.catalogs.GetByID(ctx, msg.CatalogID)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("get catalog: %w", err)
	}

	forms := 1
	if msg.Numerus {
		forms = plural.ForLanguage(catalog.Language).Forms()
	}

	if !refresh {
		cached, err := s.suggestions.Get(ctx, msg.ID, catalog.Language)
		if err != nil {
			logger.Warn("suggestion cache lookup failed", "module", "service", "action", "fetch", "resource", "suggestion", "result", "failed", "message_id", msg.ID, "error", err)
		} else if cached != nil {
			return newSuggestResult(*cached, msg.Numerus, true), nil
		}
	}

	cfg, err := s.settings.ProviderConfig(ctx)
	if err != nil {
		return SuggestResult{}, err
	}
	if cfg.APIKey == "" || cfg.Model == "" {
		return SuggestResult{}, ErrAIUnavailable
	}
	provider, err := s.newProvider(cfg)
	if err != nil {
		logger.Warn("ai provider create failed", "module", "service", "action", "fetch", "resource", "suggestion", "result", "failed", "provider", cfg.Provider, "model", cfg.Model, "error", err)
		return SuggestResult{}, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return SuggestResult{}, err
	}

	prompt := ai.GetSuggestPrompt(ai.SuggestInput{
		Context:        msg.Context,
		Disambiguation: msg.Disambiguation,
		ExtraComment:   msg.ExtraComment,
		SourceLanguage: catalog.SourceLanguage,
		TargetLanguage: catalog.Language,
		Forms:          forms,
	})
	reply, err := provider.Complete(ctx, prompt, ai.WrapInput(msg.Source))
	if err != nil {
		logger.Warn("ai suggestion failed", "module", "service", "action", "fetch", "resource", "suggestion", "result", "failed", "message_id", msg.ID, "provider", cfg.Provider, "error", err)
		return SuggestResult{}, fmt.Errorf("complete: %w", err)
	}
	parsed := ai.ParseSuggestion(reply, forms)
	if parsed == nil {
		return SuggestResult{}, fmt.Errorf("%w: expected %d form(s)", ErrAIReply, forms)
	}

	saved, err := s.suggestions.Save(ctx, model.Suggestion{
		MessageID: msg.ID,
		Language:  catalog.Language,
		Text:      strings.Join(parsed, "\n"),
		Provider:  provider.Name(),
		Model:     cfg.Model,
	})
	if err != nil {
		return SuggestResult{}, fmt.Errorf("save suggestion: %w", err)
	}
	logger.Info("ai suggestion saved", "module", "service", "action", "save", "resource", "suggestion", "result", "ok", "message_id", msg.ID, "provider", cfg.Provider, "model", cfg.Model)
	return newSuggestResult(saved, msg.Numerus, false), nil
}

func newSuggestResult(s model.Suggestion, numerus, cached bool) SuggestResult {
	res := SuggestResult{Suggestion: s, Cached: cached}
	if numerus {
		res.Forms = strings.Split(s.Text, "\n")
	}
	return res
}

func (s *suggestService) Clear(ctx context.Context, catalogID int64) (int64, error) {
	if _, err := s.catalogs.GetByID(ctx, catalogID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("get catalog: %w", err)
	}
	n, err := s.suggestions.DeleteByCatalog(ctx, catalogID)
	if err != nil {
		return 0, err
	}
	logger.Info("suggestions cleared", "module", "service", "action", "delete", "resource", "suggestion", "result", "ok", "catalog_id", catalogID, "count", n)
	return n, nil
}
