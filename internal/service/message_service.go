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
	"tscat/internal/ts"
)

const (
	DefaultMessageLimit = 200
	MaxMessageLimit     = 1000
)

type MessageFilter struct {
	Context *string
	Status  *string
	Query   string
	Limit   int
	Offset  int
}

type UpdateTranslationInput struct {
	Translation string
	Forms       []string
	Finished    bool
}

type MessageService interface {
	List(ctx context.Context, catalogID int64, filter MessageFilter) ([]model.Message, error)
	Get(ctx context.Context, id int64) (model.Message, error)
	// UpdateTranslation edits an active message. Numerus messages take one
	// form per plural category of the catalog language.
	UpdateTranslation(ctx context.Context, id int64, in UpdateTranslationInput) (model.Message, error)
}

type messageService struct {
	catalogs repository.CatalogRepository
	messages repository.MessageRepository
	tx       repository.TxRunner
	cache    CacheInvalidator
}

func NewMessageService(catalogs repository.CatalogRepository, messages repository.MessageRepository, tx repository.TxRunner, cache CacheInvalidator) MessageService {
	return &messageService{catalogs: catalogs, messages: messages, tx: tx, cache: cache}
}

func (s *messageService) List(ctx context.Context, catalogID int64, filter MessageFilter) ([]model.Message, error) {
	if filter.Status != nil {
		if _, ok := ts.ParseStatus(*filter.Status); !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, *filter.Status)
		}
	}
	if filter.Offset < 0 || filter.Limit < 0 {
		return nil, ErrInvalid
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultMessageLimit
	}
	if filter.Limit > MaxMessageLimit {
		filter.Limit = MaxMessageLimit
	}
	if _, err := s.catalogs.GetByID(ctx, catalogID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}

	messages, err := s.messages.List(ctx, repository.MessageListFilter{
		CatalogID: catalogID,
		Context:   filter.Context,
		Status:    filter.Status,
		Query:     strings.TrimSpace(filter.Query),
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}

func (s *messageService) Get(ctx context.Context, id int64) (model.Message, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Message{}, ErrNotFound
		}
		return model.Message{}, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}

func (s *messageService) UpdateTranslation(ctx context.Context, id int64, in UpdateTranslationInput) (model.Message, error) {
	msg, err := s.Get(ctx, id)
	if err != nil {
		return model.Message{}, err
	}
	// obsolete and vanished entries only change by re-importing the sources
	switch ts.Status(msg.Status) {
	case ts.StatusObsolete, ts.StatusVanished:
		return model.Message{}, fmt.Errorf("%w: message is %s", ErrConflict, msg.Status)
	}

	catalog, err := s.catalogs.GetByID(ctx, msg.CatalogID)
	if err != nil {
		return model.Message{}, fmt.Errorf("get catalog: %w", err)
	}

	text, forms := in.Translation, in.Forms
	if msg.Numerus {
		rule := plural.ForLanguage(catalog.Language)
		if len(forms) != rule.Forms() {
			return model.Message{}, fmt.Errorf("%w: %s needs %d numerus forms, got %d", ErrInvalid, catalog.Language, rule.Forms(), len(forms))
		}
		if text != "" {
			return model.Message{}, fmt.Errorf("%w: numerus message takes forms, not translation", ErrInvalid)
		}
	} else if len(forms) > 0 {
		return model.Message{}, fmt.Errorf("%w: message is not numerus", ErrInvalid)
	}

	status := ts.StatusUnfinished
	if in.Finished {
		if !hasText(text, forms) {
			return model.Message{}, fmt.Errorf("%w: finished translation is empty", ErrInvalid)
		}
		status = ts.StatusFinished
	}

	// the stored catalog no longer matches its source file, so the next
	// import of that file must not be skipped as unchanged
	var updated model.Message
	err = s.tx.RunInTx(ctx, func(tx repository.Tx) error {
		var err error
		updated, err = tx.Messages.UpdateTranslation(ctx, id, text, forms, string(status))
		if err != nil {
			return err
		}
		return tx.Catalogs.SetHash(ctx, msg.CatalogID, "")
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Message{}, ErrNotFound
		}
		return model.Message{}, err
	}
	if s.cache != nil {
		s.cache.Invalidate(msg.CatalogID)
	}
	logger.Info("translation updated", "module", "service", "action", "update", "resource", "message", "result", "ok", "message_id", id, "status", status)
	return updated, nil
}

func hasText(text string, forms []string) bool {
	if text != "" {
		return true
	}
	for _, f := range forms {
		if f != "" {
			return true
		}
	}
	return false
}
