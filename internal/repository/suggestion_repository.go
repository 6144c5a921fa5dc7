package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tscat/internal/model"
	"tscat/internal/snowflake"
)

type SuggestionRepository interface {
	Get(ctx context.Context, messageID int64, language string) (*model.Suggestion, error)
	Save(ctx context.Context, s model.Suggestion) (model.Suggestion, error)
	DeleteByCatalog(ctx context.Context, catalogID int64) (int64, error)
}

type suggestionRepository struct {
	db dbtx
}

func NewSuggestionRepository(db dbtx) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Get(ctx context.Context, messageID int64, language string) (*model.Suggestion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, message_id, language, text, provider, model, created_at FROM suggestions WHERE message_id = ? AND language = ?`,
		messageID, language,
	)
	var s model.Suggestion
	var createdAt string
	if err := row.Scan(&s.ID, &s.MessageID, &s.Language, &s.Text, &s.Provider, &s.Model, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	s.CreatedAt, _ = parseTime(createdAt)
	return &s, nil
}

// Save inserts or replaces the suggestion for (message, language).
func (r *suggestionRepository) Save(ctx context.Context, s model.Suggestion) (model.Suggestion, error) {
	s.ID = snowflake.NextID()
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO suggestions (id, message_id, language, text, provider, model, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(message_id, language) DO UPDATE SET
		   text = excluded.text, provider = excluded.provider, model = excluded.model, created_at = excluded.created_at`,
		s.ID, s.MessageID, s.Language, s.Text, s.Provider, s.Model, formatTime(s.CreatedAt),
	)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("save suggestion: %w", err)
	}
	return s, nil
}

func (r *suggestionRepository) DeleteByCatalog(ctx context.Context, catalogID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM suggestions WHERE message_id IN (SELECT id FROM messages WHERE catalog_id = ?)`, catalogID)
	if err != nil {
		return 0, fmt.Errorf("delete suggestions: %w", err)
	}
	return res.RowsAffected()
}
