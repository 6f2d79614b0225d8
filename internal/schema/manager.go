// Package schema creates and resets the destination schema objects.
package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// Manager implements schema preparation against a session connection.
// Stateless and safe for concurrent use.
type Manager struct{}

// New creates a new SchemaManager instance.
func New() imdbload.SchemaManager {
	return &Manager{}
}

// statements returns the full DDL sequence for one destination schema,
// in execution order. Every statement is IF NOT EXISTS so re-running
// against an initialized schema changes nothing.
func statements(schemaName string) []string {
	schema := pgx.Identifier{schemaName}.Sanitize()

	return []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.name_basics (
			nconst TEXT PRIMARY KEY,
			primary_name TEXT,
			birth_year INTEGER,
			death_year INTEGER,
			primary_profession TEXT,
			known_for_titles TEXT
		)`, schema),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.title_basics (
			tconst TEXT PRIMARY KEY,
			title_type TEXT,
			primary_title TEXT,
			original_title TEXT,
			is_adult SMALLINT,
			start_year INTEGER,
			end_year INTEGER,
			runtime_minutes INTEGER,
			genres TEXT
		)`, schema),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.title_ratings (
			tconst TEXT PRIMARY KEY,
			average_rating NUMERIC(3,1),
			num_votes INTEGER
		)`, schema),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.load_history (
			load_id UUID PRIMARY KEY,
			table_name TEXT NOT NULL,
			source_file TEXT NOT NULL,
			source_sha256 TEXT NOT NULL,
			rows_copied BIGINT NOT NULL,
			total_rows BIGINT NOT NULL,
			duration_ms BIGINT NOT NULL,
			loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, schema),

		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_title_basics_type ON %s.title_basics(title_type)", schema),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_title_ratings_votes ON %s.title_ratings(num_votes DESC)", schema),
	}
}

// EnsureSchema creates the schema, destination tables, indexes, and load
// history table if they do not exist. All statements run in one
// transaction; any failure rolls back the whole sequence.
func (m *Manager) EnsureSchema(ctx context.Context, conn *pgxpool.Conn, schemaName string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range statements(schemaName) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema %q: %w", schemaName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schema initialization: %w", err)
	}
	return nil
}

// TruncateTables empties the three destination tables, one TRUNCATE per
// table in load order. The load history table is audit state and is
// left alone.
func (m *Manager) TruncateTables(ctx context.Context, conn *pgxpool.Conn, schemaName string) error {
	for _, table := range imdbload.TableNames() {
		qualified := pgx.Identifier{schemaName, table}.Sanitize()
		if _, err := conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", qualified)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", qualified, err)
		}
	}
	return nil
}

// Verify Manager implements the SchemaManager interface at compile time
var _ imdbload.SchemaManager = (*Manager)(nil)
