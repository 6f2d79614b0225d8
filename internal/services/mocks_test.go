package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// callRecorder keeps the invocation order across collaborating mocks.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockSchemaManager struct {
	calls       *callRecorder
	ensureErr   error
	truncateErr error
}

func (m *mockSchemaManager) EnsureSchema(_ context.Context, _ *pgxpool.Conn, schemaName string) error {
	m.calls.record("ensure:" + schemaName)
	return m.ensureErr
}

func (m *mockSchemaManager) TruncateTables(_ context.Context, _ *pgxpool.Conn, schemaName string) error {
	m.calls.record("truncate:" + schemaName)
	return m.truncateErr
}

type mockCopier struct {
	calls   *callRecorder
	failOn  imdbload.DatasetKind
	failErr error
	rows    int64
}

func (m *mockCopier) CopyDataset(_ context.Context, _ *pgxpool.Conn, req imdbload.CopyRequest) (imdbload.CopyResult, error) {
	m.calls.record("copy:" + string(req.Dataset.Kind))
	if m.failErr != nil && req.Dataset.Kind == m.failOn {
		return imdbload.CopyResult{}, m.failErr
	}
	return imdbload.CopyResult{
		Kind:       req.Dataset.Kind,
		Table:      req.Dataset.Table,
		Path:       req.Path,
		RowsCopied: m.rows,
		TotalRows:  m.rows,
	}, nil
}

type mockLogger struct {
	mu    sync.Mutex
	infos []string
}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}

func (m *mockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Warn(_ string, _ ...interface{}) {}

func (m *mockLogger) Error(_ string, _ ...interface{}) {}

func (m *mockLogger) infoLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}
