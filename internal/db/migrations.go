package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS catalogs (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  language TEXT NOT NULL DEFAULT '',
  source_language TEXT NOT NULL DEFAULT '',
  version TEXT NOT NULL DEFAULT '',
  doctype INTEGER NOT NULL DEFAULT 1,
  hash TEXT NOT NULL DEFAULT '',
  path TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contexts (
  catalog_id INTEGER NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  comment TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (catalog_id, position),
  FOREIGN KEY (catalog_id) REFERENCES catalogs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS messages (
  id INTEGER PRIMARY KEY,
  catalog_id INTEGER NOT NULL,
  position INTEGER NOT NULL,
  context_position INTEGER NOT NULL,
  context TEXT NOT NULL,
  msg_id TEXT NOT NULL DEFAULT '',
  numerus INTEGER NOT NULL DEFAULT 0,
  source TEXT NOT NULL,
  old_source TEXT NOT NULL DEFAULT '',
  disambiguation TEXT NOT NULL DEFAULT '',
  old_comment TEXT NOT NULL DEFAULT '',
  extra_comment TEXT NOT NULL DEFAULT '',
  translator_comment TEXT NOT NULL DEFAULT '',
  translation TEXT NOT NULL DEFAULT '',
  numerus_forms TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL,
  locations TEXT NOT NULL DEFAULT '[]',
  updated_at TEXT NOT NULL,
  FOREIGN KEY (catalog_id) REFERENCES catalogs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_catalog_position ON messages(catalog_id, position);

CREATE TABLE IF NOT EXISTS suggestions (
  id INTEGER PRIMARY KEY,
  message_id INTEGER NOT NULL,
  language TEXT NOT NULL,
  text TEXT NOT NULL,
  provider TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  FOREIGN KEY (message_id) REFERENCES messages(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_suggestions_message_language ON suggestions(message_id, language);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: lookup index for (context, source, disambiguation) keys
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_messages_key ON messages(catalog_id, context, source, disambiguation)`); err != nil {
		return fmt.Errorf("create idx_messages_key: %w", err)
	}

	// Migration 2: status filter and report counts
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_messages_status ON messages(catalog_id, status)`); err != nil {
		return fmt.Errorf("create idx_messages_status: %w", err)
	}

	// Migration 3: record which model produced a suggestion
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('suggestions') WHERE name = 'model'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check model column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE suggestions ADD COLUMN model TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add model column: %w", err)
		}
	}

	return nil
}
