package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tscat/internal/model"
	"tscat/internal/snowflake"
)

type MessageListFilter struct {
	CatalogID int64
	Context   *string
	Status    *string
	// Query matches source, translation or translator comment, case-insensitively.
	Query  string
	Limit  int
	Offset int
}

type MessageRepository interface {
	// ReplaceAll drops every context and message of the catalog and inserts
	// the given ones. Run it inside TxRunner.RunInTx.
	ReplaceAll(ctx context.Context, catalogID int64, contexts []model.Context, messages []model.Message) error
	ListContexts(ctx context.Context, catalogID int64) ([]model.Context, error)
	List(ctx context.Context, filter MessageListFilter) ([]model.Message, error)
	GetByID(ctx context.Context, id int64) (model.Message, error)
	UpdateTranslation(ctx context.Context, id int64, translation string, forms []string, status string) (model.Message, error)
	CountByStatus(ctx context.Context, catalogID int64) ([]model.StatusCount, error)
}

type messageRepository struct {
	db dbtx
}

func NewMessageRepository(db dbtx) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, catalog_id, position, context_position, context, msg_id, numerus, source, old_source,
	disambiguation, old_comment, extra_comment, translator_comment, translation, numerus_forms, status, locations, updated_at`

func (r *messageRepository) ReplaceAll(ctx context.Context, catalogID int64, contexts []model.Context, messages []model.Message) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE catalog_id = ?`, catalogID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contexts WHERE catalog_id = ?`, catalogID); err != nil {
		return fmt.Errorf("clear contexts: %w", err)
	}

	for _, c := range contexts {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO contexts (catalog_id, position, name, comment) VALUES (?, ?, ?, ?)`,
			catalogID, c.Position, c.Name, c.Comment,
		)
		if err != nil {
			return fmt.Errorf("insert context %q: %w", c.Name, err)
		}
	}

	now := formatTime(time.Now().UTC())
	for _, m := range messages {
		if m.ID == 0 {
			m.ID = snowflake.NextID()
		}
		forms, err := encodeJSON(nonNil(m.NumerusForms))
		if err != nil {
			return fmt.Errorf("encode numerus forms: %w", err)
		}
		locations, err := encodeJSON(nonNilLocations(m.Locations))
		if err != nil {
			return fmt.Errorf("encode locations: %w", err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO messages (id, catalog_id, position, context_position, context, msg_id, numerus, source, old_source,
			   disambiguation, old_comment, extra_comment, translator_comment, translation, numerus_forms, status, locations, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, catalogID, m.Position, m.ContextPosition, m.Context, m.MsgID, boolToInt(m.Numerus), m.Source, m.OldSource,
			m.Disambiguation, m.OldComment, m.ExtraComment, m.TranslatorComment, m.Translation, forms, m.Status, locations, now,
		)
		if err != nil {
			return fmt.Errorf("insert message %d: %w", m.Position, err)
		}
	}
	return nil
}

func (r *messageRepository) ListContexts(ctx context.Context, catalogID int64) ([]model.Context, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT catalog_id, position, name, comment FROM contexts WHERE catalog_id = ? ORDER BY position`, catalogID)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer rows.Close()

	var contexts []model.Context
	for rows.Next() {
		var c model.Context
		if err := rows.Scan(&c.CatalogID, &c.Position, &c.Name, &c.Comment); err != nil {
			return nil, err
		}
		contexts = append(contexts, c)
	}
	return contexts, rows.Err()
}

func (r *messageRepository) List(ctx context.Context, filter MessageListFilter) ([]model.Message, error) {
	conditions := []string{"catalog_id = ?"}
	args := []any{filter.CatalogID}

	if filter.Context != nil {
		conditions = append(conditions, "context = ?")
		args = append(args, *filter.Context)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		conditions = append(conditions, "(source LIKE ? ESCAPE '\\' OR translation LIKE ? ESCAPE '\\' OR translator_comment LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(q) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY position`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (model.Message, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	return scanMessage(row)
}

func (r *messageRepository) UpdateTranslation(ctx context.Context, id int64, translation string, forms []string, status string) (model.Message, error) {
	encoded, err := encodeJSON(nonNil(forms))
	if err != nil {
		return model.Message{}, fmt.Errorf("encode numerus forms: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET translation = ?, numerus_forms = ?, status = ?, updated_at = ? WHERE id = ?`,
		translation, encoded, status, formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("update translation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Message{}, sql.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *messageRepository) CountByStatus(ctx context.Context, catalogID int64) ([]model.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM messages WHERE catalog_id = ? GROUP BY status ORDER BY status`, catalogID)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	defer rows.Close()

	var counts []model.StatusCount
	for rows.Next() {
		var c model.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	var numerus int
	var forms, locations, updatedAt string

	err := row.Scan(
		&m.ID, &m.CatalogID, &m.Position, &m.ContextPosition, &m.Context, &m.MsgID, &numerus, &m.Source, &m.OldSource,
		&m.Disambiguation, &m.OldComment, &m.ExtraComment, &m.TranslatorComment, &m.Translation, &forms, &m.Status,
		&locations, &updatedAt,
	)
	if err != nil {
		return model.Message{}, err
	}
	m.Numerus = numerus == 1
	if err := json.Unmarshal([]byte(forms), &m.NumerusForms); err != nil {
		return model.Message{}, fmt.Errorf("decode numerus forms of message %d: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(locations), &m.Locations); err != nil {
		return model.Message{}, fmt.Errorf("decode locations of message %d: %w", m.ID, err)
	}
	if len(m.NumerusForms) == 0 {
		m.NumerusForms = nil
	}
	if len(m.Locations) == 0 {
		m.Locations = nil
	}
	m.UpdatedAt, _ = parseTime(updatedAt)
	return m, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNil(forms []string) []string {
	if forms == nil {
		return []string{}
	}
	return forms
}

func nonNilLocations(locs []model.Location) []model.Location {
	if locs == nil {
		return []model.Location{}
	}
	return locs
}
