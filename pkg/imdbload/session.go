package imdbload

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session encapsulates the single database connection a load run owns.
// Every state of the run (schema init, truncation, the three COPY loads)
// executes on the same pooled connection.
//
// Thread-Safety: NOT safe for concurrent use. The loader is strictly
// sequential and a run holds exactly one Session.
//
// Lifecycle:
//  1. Created by the orchestrator after a successful connect
//  2. Used for all DDL and COPY work
//  3. Cleaned up via Close() (idempotent), on every exit path
type Session struct {
	pool *pgxpool.Pool
	conn *pgxpool.Conn
}

// NewSession creates a new Session instance.
//
// Panics if pool or conn is nil (programmer error - the orchestrator
// never creates a Session with nil resources).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}

	return &Session{
		pool: pool,
		conn: conn,
	}
}

// Conn returns the acquired pooled connection for the run.
// The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
//
// Resource cleanup order:
//  1. Release the acquired connection back to the pool
//  2. Close the connection pool
func (s *Session) Close() error {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
