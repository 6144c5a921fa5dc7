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

type CatalogRepository interface {
	Create(ctx context.Context, catalog model.Catalog) (model.Catalog, error)
	GetByID(ctx context.Context, id int64) (model.Catalog, error)
	FindByName(ctx context.Context, name string) (*model.Catalog, error)
	List(ctx context.Context) ([]model.Catalog, error)
	UpdateMeta(ctx context.Context, catalog model.Catalog) (model.Catalog, error)
	// SetHash replaces the content hash. An empty hash marks the stored
	// catalog as diverged from any source file.
	SetHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}

type catalogRepository struct {
	db dbtx
}

func NewCatalogRepository(db dbtx) CatalogRepository {
	return &catalogRepository{db: db}
}

const catalogColumns = `c.id, c.name, c.language, c.source_language, c.version, c.doctype, c.hash, c.path,
	(SELECT COUNT(*) FROM messages m WHERE m.catalog_id = c.id), c.created_at, c.updated_at`

func (r *catalogRepository) Create(ctx context.Context, catalog model.Catalog) (model.Catalog, error) {
	catalog.ID = snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO catalogs (id, name, language, source_language, version, doctype, hash, path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		catalog.ID,
		catalog.Name,
		catalog.Language,
		catalog.SourceLanguage,
		catalog.Version,
		boolToInt(catalog.Doctype),
		catalog.Hash,
		nullableString(catalog.Path),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("create catalog: %w", err)
	}
	catalog.CreatedAt = now
	catalog.UpdatedAt = now
	return catalog, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (model.Catalog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+catalogColumns+` FROM catalogs c WHERE c.id = ?`, id)
	return scanCatalog(row)
}

func (r *catalogRepository) FindByName(ctx context.Context, name string) (*model.Catalog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+catalogColumns+` FROM catalogs c WHERE c.name = ?`, name)
	catalog, err := scanCatalog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find catalog: %w", err)
	}
	return &catalog, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]model.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+catalogColumns+` FROM catalogs c ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	var catalogs []model.Catalog
	for rows.Next() {
		catalog, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalogs: %w", err)
	}
	return catalogs, nil
}

// UpdateMeta rewrites the header attributes and hash after a re-import.
func (r *catalogRepository) UpdateMeta(ctx context.Context, catalog model.Catalog) (model.Catalog, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE catalogs SET language = ?, source_language = ?, version = ?, doctype = ?, hash = ?, path = ?, updated_at = ? WHERE id = ?`,
		catalog.Language,
		catalog.SourceLanguage,
		catalog.Version,
		boolToInt(catalog.Doctype),
		catalog.Hash,
		nullableString(catalog.Path),
		formatTime(now),
		catalog.ID,
	)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("update catalog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Catalog{}, sql.ErrNoRows
	}
	catalog.UpdatedAt = now
	return catalog, nil
}

func (r *catalogRepository) SetHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalogs SET hash = ?, updated_at = ? WHERE id = ?`,
		hash, formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("set catalog hash: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalog(row rowScanner) (model.Catalog, error) {
	var c model.Catalog
	var path sql.NullString
	var doctype int
	var createdAt, updatedAt string

	err := row.Scan(
		&c.ID, &c.Name, &c.Language, &c.SourceLanguage, &c.Version, &doctype, &c.Hash, &path,
		&c.MessageCount, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Catalog{}, err
	}
	c.Doctype = doctype == 1
	if path.Valid {
		c.Path = &path.String
	}
	c.CreatedAt, _ = parseTime(createdAt)
	c.UpdatedAt, _ = parseTime(updatedAt)
	return c, nil
}
