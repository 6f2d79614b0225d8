package testing

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/imdbload/internal/db"
	"github.com/vvka-141/imdbload/internal/loader"
	"github.com/vvka-141/imdbload/internal/logging"
	"github.com/vvka-141/imdbload/internal/schema"
	"github.com/vvka-141/imdbload/internal/services"
	"github.com/vvka-141/imdbload/internal/testinfra"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: IMDBLOAD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("IMDBLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("IMDBLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// GetTestPool creates a connection pool for testing.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString string) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

// AcquireTestConn acquires one pooled connection for session-style tests.
// Released automatically when the test completes.
func AcquireTestConn(t *testing.T, pool *pgxpool.Pool) *pgxpool.Conn {
	t.Helper()

	conn, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Failed to acquire connection: %v", err)
	}

	t.Cleanup(func() {
		conn.Release()
	})

	return conn
}

// NewTestSchemaName returns a unique schema name and registers a cleanup
// that drops the schema with CASCADE.
func NewTestSchemaName(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	name := "imdb_test_" + suffix

	t.Cleanup(func() {
		query := fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pgx.Identifier{name}.Sanitize())
		if _, err := pool.Exec(context.Background(), query); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", name, err)
		}
	})

	return name
}

// WriteTSV writes a plain TSV fixture into a fresh temp directory and
// returns its path.
func WriteTSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteGzTSV writes a gzip-compressed TSV fixture into a fresh temp
// directory and returns its path. The name should carry a .gz suffix.
func WriteGzTSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture %s: %v", name, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close fixture %s: %v", name, err)
	}
	return path
}

// NewTestLoader creates a Loader wired with the real components and a
// silent logger.
func NewTestLoader(t *testing.T) imdbload.Loader {
	t.Helper()

	logger := logging.NewNullLogger()
	return services.NewLoadService(
		db.NewConnector,
		schema.New(),
		loader.New(logger),
		logger,
	)
}
