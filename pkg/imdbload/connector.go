package imdbload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connector establishes the database connection for a load run.
// The loader makes exactly one attempt; there is no retry layer.
type Connector interface {
	// Connect establishes a connection pool to the database and verifies
	// it with a ping. The returned pool should be closed by the caller
	// when done.
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}
