// Package loader streams dataset files into PostgreSQL with COPY FROM STDIN.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/internal/tsv"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// Copier implements imdbload.BulkCopier over the raw pgx COPY protocol.
// The source file is handed to the driver as an io.Reader, so only the
// read buffer is ever resident regardless of file size.
type Copier struct {
	logger imdbload.Logger
}

// New creates a new Copier.
//
// Panics if logger is nil (programmer error).
func New(logger imdbload.Logger) imdbload.BulkCopier {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Copier{logger: logger}
}

// copySQL builds the COPY command for one destination table. The options
// mirror the dataset format: text mode, tab delimiter, \N for NULL.
func copySQL(schemaName, table string, columns []string) string {
	qualified := pgx.Identifier{schemaName, table}.Sanitize()
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
	}
	return fmt.Sprintf(`COPY %s (%s) FROM STDIN WITH (FORMAT text, DELIMITER E'\t', NULL '\N')`,
		qualified, strings.Join(quoted, ", "))
}

// CopyDataset streams one dataset file into its destination table inside a
// single transaction. The header line is consumed and checked before the
// remaining bytes go to the server; a mismatch warns and continues unless
// the request demands strict headers. On success the transaction also
// records a load_history row, then commits. Every failure path rolls back.
func (c *Copier) CopyDataset(ctx context.Context, conn *pgxpool.Conn, req imdbload.CopyRequest) (imdbload.CopyResult, error) {
	start := time.Now()

	file, err := tsv.Open(req.Path)
	if err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: %w", imdbload.ErrLoadFailed, err)
	}
	defer file.Close()

	header, err := file.ReadLine()
	if err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: failed to read header of %s: %w", imdbload.ErrLoadFailed, req.Path, err)
	}
	if strings.TrimSpace(header) != req.Dataset.ExpectedHeader() {
		if req.StrictHeader {
			return imdbload.CopyResult{}, fmt.Errorf("%w in %s: got %q, want %q",
				imdbload.ErrHeaderMismatch, req.Path, header, req.Dataset.ExpectedHeader())
		}
		c.logger.Warn("Header mismatch in %s. Continuing load.", req.Path)
	}

	qualified := pgx.Identifier{req.Schema, req.Dataset.Table}.Sanitize()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: failed to begin transaction for %s: %w", imdbload.ErrLoadFailed, qualified, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql := copySQL(req.Schema, req.Dataset.Table, req.Dataset.Columns())
	c.logger.Verbose("Streaming %s with: %s", req.Path, sql)

	tag, err := tx.Conn().PgConn().CopyFrom(ctx, file, sql)
	if err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: COPY into %s from %s failed: %w", imdbload.ErrLoadFailed, qualified, req.Path, err)
	}

	var total int64
	if err := tx.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", qualified)).Scan(&total); err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: failed to count rows in %s: %w", imdbload.ErrLoadFailed, qualified, err)
	}

	// COPY drains the file, so the digest now covers the whole content.
	sourceSHA := file.SHA256()

	loadID := uuid.New()
	historySQL := fmt.Sprintf(
		"INSERT INTO %s (load_id, table_name, source_file, source_sha256, rows_copied, total_rows, duration_ms) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		pgx.Identifier{req.Schema, imdbload.HistoryTable}.Sanitize())
	_, err = tx.Exec(ctx, historySQL,
		loadID, req.Dataset.Table, filepath.Base(req.Path), sourceSHA,
		tag.RowsAffected(), total, time.Since(start).Milliseconds())
	if err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: failed to record load history for %s: %w", imdbload.ErrLoadFailed, qualified, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return imdbload.CopyResult{}, fmt.Errorf("%w: failed to commit load of %s: %w", imdbload.ErrLoadFailed, qualified, err)
	}

	return imdbload.CopyResult{
		LoadID:       loadID,
		Kind:         req.Dataset.Kind,
		Table:        req.Dataset.Table,
		Path:         req.Path,
		RowsCopied:   tag.RowsAffected(),
		TotalRows:    total,
		SourceSHA256: sourceSHA,
		Duration:     time.Since(start),
	}, nil
}

// Verify Copier implements the BulkCopier interface at compile time
var _ imdbload.BulkCopier = (*Copier)(nil)
