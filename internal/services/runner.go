// Package services orchestrates the load workflow.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// LoadService implements the Loader interface. It walks the fixed state
// machine: connect, schema init, optional truncate, then the three dataset
// loads in order, all on one session connection.
//
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
// Create separate instances for concurrent runs.
type LoadService struct {
	connectorFactory func(dsn string) imdbload.Connector
	schemaManager    imdbload.SchemaManager
	copier           imdbload.BulkCopier
	logger           imdbload.Logger
}

// NewLoadService creates a new LoadService with all dependencies injected.
//
// Panic vs. Error Boundary Rationale:
//   - Panics on nil dependencies: These are programmer errors that should fail loudly
//     at application startup, not during request handling. Fail-fast at construction
//     time prevents cryptic nil pointer dereferences deep in call stacks.
//   - Returns errors for runtime conditions: Configuration validation, connection
//     failures, and file system errors are recoverable runtime conditions that
//     should be handled by the caller, not panics.
func NewLoadService(
	connectorFactory func(dsn string) imdbload.Connector,
	schemaManager imdbload.SchemaManager,
	copier imdbload.BulkCopier,
	logger imdbload.Logger,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if schemaManager == nil {
		panic("schemaManager cannot be nil")
	}
	if copier == nil {
		panic("copier cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		connectorFactory: connectorFactory,
		schemaManager:    schemaManager,
		copier:           copier,
		logger:           logger,
	}
}

// Load executes a full run using the provided configuration.
func (s *LoadService) Load(ctx context.Context, config imdbload.LoadConfig) ([]imdbload.CopyResult, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Connecting to database...")
	session, err := s.prepareSession(ctx, config.DSN)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	s.logger.Verbose("✓ Connection established")

	return s.run(ctx, session.Conn(), config)
}

// prepareSession connects and acquires the one connection the run owns.
// The caller is responsible for closing the session: defer session.Close()
func (s *LoadService) prepareSession(ctx context.Context, dsn string) (*imdbload.Session, error) {
	connector := s.connectorFactory(dsn)

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to acquire connection: %w", imdbload.ErrConnectionFailed, err)
	}

	return imdbload.NewSession(pool, conn), nil
}

// run executes every state after the connection is up. The first failure
// stops the sequence; loads committed before it stay committed and are
// returned alongside the error.
func (s *LoadService) run(ctx context.Context, conn *pgxpool.Conn, config imdbload.LoadConfig) ([]imdbload.CopyResult, error) {
	s.logger.Verbose("Initializing schema '%s'", config.Schema)
	if err := s.schemaManager.EnsureSchema(ctx, conn, config.Schema); err != nil {
		return nil, fmt.Errorf("%w: %w", imdbload.ErrSchemaInitFailed, err)
	}
	s.logger.Verbose("✓ Schema '%s' ready", config.Schema)

	if config.Truncate {
		s.logger.Info("Truncating destination tables in %s", config.Schema)
		if err := s.schemaManager.TruncateTables(ctx, conn, config.Schema); err != nil {
			return nil, fmt.Errorf("truncate failed: %w", err)
		}
	}

	results := make([]imdbload.CopyResult, 0, 3)
	for _, dataset := range imdbload.Datasets() {
		path := config.PathFor(dataset.Kind)
		s.logger.Verbose("Loading %s dataset from %s", dataset.Kind, path)

		result, err := s.copier.CopyDataset(ctx, conn, imdbload.CopyRequest{
			Schema:       config.Schema,
			Dataset:      dataset,
			Path:         path,
			StrictHeader: config.StrictHeader,
		})
		if err != nil {
			return results, fmt.Errorf("loading %s dataset: %w", dataset.Kind, err)
		}
		results = append(results, result)

		s.logger.Info("Loaded %s rows into %s.%s from %s",
			imdbload.FormatCount(result.TotalRows), config.Schema, result.Table, filepath.Base(path))
		s.logger.Verbose("Copied %s rows in %s (sha256 %s)",
			imdbload.FormatCount(result.RowsCopied), result.Duration.Round(time.Millisecond), result.SourceSHA256)
	}

	s.logger.Info("✓ Load completed successfully")
	return results, nil
}

// Verify LoadService implements the Loader interface at compile time
var _ imdbload.Loader = (*LoadService)(nil)
