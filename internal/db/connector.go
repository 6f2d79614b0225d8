// Package db establishes the PostgreSQL connection for a load run.
package db

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is 1: the loader is strictly sequential and the whole
	// run executes on a single session connection.
	DefaultMaxConns = 1

	// DefaultMinConns maintains the session connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps the connection alive through multi-hour
	// COPY streams to avoid reconnection overhead.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	// Server notices are diagnostics, same as the rest of the human output.
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Fprintln(os.Stderr, notice.Message)
	}
}

// Connector implements the imdbload.Connector interface for a verbatim DSN.
// It makes exactly one connection attempt; a failure is reported with
// guidance and the run stops.
type Connector struct {
	dsn string
}

// NewConnector creates a Connector for the given DSN. The DSN is handed to
// the driver untouched, so both URL and keyword/value forms work.
func NewConnector(dsn string) imdbload.Connector {
	return &Connector{dsn: dsn}
}

// Connect establishes a connection pool and verifies it with a ping.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %w", imdbload.ErrConnectionFailed, err)
	}

	configurePool(poolConfig)

	host := poolConfig.ConnConfig.Host
	port := poolConfig.ConnConfig.Port
	database := poolConfig.ConnConfig.Database

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, host, port, database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, host, port, database)
	}

	return pool, nil
}

// wrapConnectionError chains ErrConnectionFailed and decorates raw pgx
// connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	return fmt.Errorf("%w: %w", imdbload.ErrConnectionFailed, describeConnectionError(err, host, port, database))
}

func describeConnectionError(err error, host string, port uint16, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in the DSN
  - Firewall blocking the connection

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled in the DSN
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username in the DSN
  - User does not have access to the database

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but the DSN sslmode is wrong (try sslmode=require)
  - Certificate verification failed
  - Client certificates missing

Original error: %w`, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`too many connections to database "%s"

Possible causes:
  - Connection pool exhausted on server
  - max_connections limit reached in postgresql.conf
  - Stale connections from previous loads

Try: SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s';

Original error: %w`, database, database, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}

// Verify Connector implements the Connector interface at compile time
var _ imdbload.Connector = (*Connector)(nil)
