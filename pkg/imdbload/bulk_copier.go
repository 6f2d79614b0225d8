package imdbload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BulkCopier streams one dataset file into its destination table.
type BulkCopier interface {
	// CopyDataset opens the source file, checks its header, and streams
	// the remaining bytes to the destination table with COPY FROM STDIN
	// inside a single transaction. A failed copy rolls back and persists
	// nothing; a committed copy also records a load_history row.
	CopyDataset(ctx context.Context, conn *pgxpool.Conn, req CopyRequest) (CopyResult, error)
}
