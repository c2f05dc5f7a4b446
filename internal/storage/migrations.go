package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version the current code requires.
const ExpectedSchemaVersion = 1

// Migration represents a single schema change applied in a transaction.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema: products, mappings, templates, samples",
		Up:          migrateInitialSchema,
	},
}

// Migrate brings the database schema up to ExpectedSchemaVersion. It is safe
// to call on every startup; already-applied migrations are skipped.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating schema version to %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.Version, err)
		}

		slog.Info("Applied migration", "version", m.Version, "description", m.Description)
		current = m.Version
	}

	if current != ExpectedSchemaVersion {
		return fmt.Errorf("schema version mismatch: have %d, want %d", current, ExpectedSchemaVersion)
	}

	return nil
}

func migrateInitialSchema(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			product_id      TEXT PRIMARY KEY,
			normalized_name TEXT NOT NULL,
			category        TEXT NOT NULL DEFAULT '',
			unit_of_measure TEXT NOT NULL DEFAULT '',
			aliases_fr      TEXT NOT NULL DEFAULT '[]',
			aliases_en      TEXT NOT NULL DEFAULT '[]',
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS learned_mappings (
			raw_text   TEXT NOT NULL,
			shop_id    TEXT NOT NULL DEFAULT '',
			product_id TEXT NOT NULL REFERENCES products(product_id),
			source     TEXT NOT NULL DEFAULT 'MANUAL',
			use_count  INTEGER NOT NULL DEFAULT 0,
			learned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (raw_text, shop_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mappings_product ON learned_mappings(product_id)`,
		`CREATE TABLE IF NOT EXISTS shop_templates (
			shop_id              TEXT PRIMARY KEY,
			item_pattern         TEXT NOT NULL DEFAULT '',
			total_pattern        TEXT NOT NULL DEFAULT '',
			subtotal_pattern     TEXT NOT NULL DEFAULT '',
			tax_pattern          TEXT NOT NULL DEFAULT '',
			date_pattern         TEXT NOT NULL DEFAULT '',
			currency             TEXT NOT NULL DEFAULT 'CDF',
			source               TEXT NOT NULL DEFAULT 'CURATED',
			confidence_threshold REAL NOT NULL DEFAULT 0.7,
			sample_count         INTEGER NOT NULL DEFAULT 0,
			updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS learning_samples (
			id               TEXT PRIMARY KEY,
			shop_id          TEXT NOT NULL,
			raw_text         TEXT NOT NULL,
			correction       TEXT NOT NULL,
			local_confidence REAL NOT NULL DEFAULT 0,
			features         TEXT NOT NULL DEFAULT '{}',
			captured_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_shop ON learning_samples(shop_id)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
