// Package testutil provides SQLite-backed fixtures for repository and service tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/db"
	"tscat/internal/model"
	"tscat/internal/repository"
)

// NewTestDB opens a migrated database in a temporary directory.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// SeedCatalog stores a catalog with its contexts and messages and returns its ID.
func SeedCatalog(t *testing.T, database *sql.DB, catalog model.Catalog, contexts []model.Context, messages []model.Message) int64 {
	t.Helper()
	ctx := context.Background()
	var id int64
	err := repository.NewTxRunner(database).RunInTx(ctx, func(tx repository.Tx) error {
		created, err := tx.Catalogs.Create(ctx, catalog)
		if err != nil {
			return err
		}
		id = created.ID
		return tx.Messages.ReplaceAll(ctx, id, contexts, messages)
	})
	require.NoError(t, err)
	return id
}

// Message builds a finished, non-numerus message in context position 0.
func Message(position int, context, source, translation string) model.Message {
	return model.Message{
		Position:    position,
		Context:     context,
		Source:      source,
		Translation: translation,
		Status:      "finished",
	}
}
