package imdbload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaManager prepares and resets the destination schema.
type SchemaManager interface {
	// EnsureSchema creates the schema, destination tables, indexes, and
	// the load history table if they do not exist. All statements run in
	// one transaction. Safe to call against an already-initialized
	// schema: nothing is altered and no error is returned.
	EnsureSchema(ctx context.Context, conn *pgxpool.Conn, schemaName string) error

	// TruncateTables empties all three destination tables, one statement
	// per table, in load order. The load history table is not touched.
	TruncateTables(ctx context.Context, conn *pgxpool.Conn, schemaName string) error
}
