package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vvka-141/imdbload/pkg/imdbload"
)

func validLoadConfig() imdbload.LoadConfig {
	return imdbload.LoadConfig{
		DSN:         "postgresql://localhost/imdb",
		Schema:      "imdb",
		NamePath:    "/data/name.basics.tsv.gz",
		TitlePath:   "/data/title.basics.tsv.gz",
		RatingsPath: "/data/title.ratings.tsv.gz",
	}
}

func newTestService(schemaMgr *mockSchemaManager, copier *mockCopier, logger *mockLogger) *LoadService {
	recorder := &callRecorder{}
	if schemaMgr == nil {
		schemaMgr = &mockSchemaManager{calls: recorder}
	}
	if copier == nil {
		copier = &mockCopier{calls: recorder}
	}
	if logger == nil {
		logger = &mockLogger{}
	}
	factory := func(_ string) imdbload.Connector {
		return &mockConnector{err: fmt.Errorf("no database in unit tests")}
	}
	return NewLoadService(factory, schemaMgr, copier, logger)
}

func TestNewLoadService_NilDeps(t *testing.T) {
	factory := func(_ string) imdbload.Connector { return &mockConnector{} }
	schemaMgr := &mockSchemaManager{calls: &callRecorder{}}
	copier := &mockCopier{calls: &callRecorder{}}
	logger := &mockLogger{}

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil connectorFactory", func() { NewLoadService(nil, schemaMgr, copier, logger) }},
		{"nil schemaManager", func() { NewLoadService(factory, nil, copier, logger) }},
		{"nil copier", func() { NewLoadService(factory, schemaMgr, nil, logger) }},
		{"nil logger", func() { NewLoadService(factory, schemaMgr, copier, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*imdbload.LoadConfig)
	}{
		{"missing DSN", func(c *imdbload.LoadConfig) { c.DSN = "" }},
		{"missing schema", func(c *imdbload.LoadConfig) { c.Schema = "" }},
		{"missing name path", func(c *imdbload.LoadConfig) { c.NamePath = "" }},
		{"missing title path", func(c *imdbload.LoadConfig) { c.TitlePath = "" }},
		{"missing ratings path", func(c *imdbload.LoadConfig) { c.RatingsPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validLoadConfig()
			tt.mutate(&config)

			results, err := svc.Load(ctx, config)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, imdbload.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
			if results != nil {
				t.Errorf("Expected nil results, got: %v", results)
			}
		})
	}
}

func TestLoad_ConnectorFailure(t *testing.T) {
	connectErr := fmt.Errorf("%w: connection refused", imdbload.ErrConnectionFailed)
	factory := func(_ string) imdbload.Connector {
		return &mockConnector{err: connectErr}
	}
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder}
	copier := &mockCopier{calls: recorder}
	svc := NewLoadService(factory, schemaMgr, copier, &mockLogger{})

	results, err := svc.Load(context.Background(), validLoadConfig())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !errors.Is(err, imdbload.ErrConnectionFailed) {
		t.Errorf("Expected ErrConnectionFailed, got: %v", err)
	}
	if results != nil {
		t.Errorf("Expected nil results, got: %v", results)
	}
	if calls := recorder.snapshot(); len(calls) != 0 {
		t.Errorf("Expected no downstream calls after connection failure, got: %v", calls)
	}
}

func TestLoad_PassesDSNToFactory(t *testing.T) {
	var capturedDSN string
	factory := func(dsn string) imdbload.Connector {
		capturedDSN = dsn
		return &mockConnector{err: fmt.Errorf("stop here")}
	}
	recorder := &callRecorder{}
	svc := NewLoadService(factory, &mockSchemaManager{calls: recorder}, &mockCopier{calls: recorder}, &mockLogger{})

	config := validLoadConfig()
	config.DSN = "postgresql://user@db.example.com:5433/imdb"

	_, _ = svc.Load(context.Background(), config)
	if capturedDSN != config.DSN {
		t.Errorf("Expected factory to receive %q, got %q", config.DSN, capturedDSN)
	}
}

func TestRun_SequenceWithTruncate(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder}
	copier := &mockCopier{calls: recorder, rows: 10}
	svc := newTestService(schemaMgr, copier, nil)

	config := validLoadConfig()
	config.Truncate = true

	results, err := svc.run(context.Background(), nil, config)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []string{"ensure:imdb", "truncate:imdb", "copy:name", "copy:title", "copy:ratings"}
	got := recorder.snapshot()
	if len(got) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Call %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	wantKinds := []imdbload.DatasetKind{imdbload.DatasetName, imdbload.DatasetTitle, imdbload.DatasetRatings}
	for i, kind := range wantKinds {
		if results[i].Kind != kind {
			t.Errorf("Result %d: expected kind %q, got %q", i, kind, results[i].Kind)
		}
	}
}

func TestRun_NoTruncateByDefault(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder}
	copier := &mockCopier{calls: recorder}
	svc := newTestService(schemaMgr, copier, nil)

	_, err := svc.run(context.Background(), nil, validLoadConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, call := range recorder.snapshot() {
		if strings.HasPrefix(call, "truncate:") {
			t.Errorf("Truncate must not run without the flag, saw: %v", recorder.snapshot())
		}
	}
}

func TestRun_SchemaInitFailure(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder, ensureErr: fmt.Errorf("permission denied for database")}
	copier := &mockCopier{calls: recorder}
	svc := newTestService(schemaMgr, copier, nil)

	results, err := svc.run(context.Background(), nil, validLoadConfig())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !errors.Is(err, imdbload.ErrSchemaInitFailed) {
		t.Errorf("Expected ErrSchemaInitFailed, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got: %v", results)
	}
	for _, call := range recorder.snapshot() {
		if strings.HasPrefix(call, "copy:") {
			t.Errorf("No dataset may load after schema failure, saw: %v", recorder.snapshot())
		}
	}
}

func TestRun_TruncateFailure(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder, truncateErr: fmt.Errorf("lock timeout")}
	copier := &mockCopier{calls: recorder}
	svc := newTestService(schemaMgr, copier, nil)

	config := validLoadConfig()
	config.Truncate = true

	results, err := svc.run(context.Background(), nil, config)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "truncate failed") {
		t.Errorf("Expected truncate failure, got: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results, got: %v", results)
	}
}

func TestRun_MidSequenceFailureStopsLaterLoads(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder}
	copyErr := fmt.Errorf("%w: duplicate key", imdbload.ErrLoadFailed)
	copier := &mockCopier{calls: recorder, failOn: imdbload.DatasetTitle, failErr: copyErr, rows: 5}
	svc := newTestService(schemaMgr, copier, nil)

	results, err := svc.run(context.Background(), nil, validLoadConfig())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !errors.Is(err, imdbload.ErrLoadFailed) {
		t.Errorf("Expected ErrLoadFailed, got: %v", err)
	}
	if !strings.Contains(err.Error(), "loading title dataset") {
		t.Errorf("Expected failing dataset in message, got: %v", err)
	}

	if len(results) != 1 || results[0].Kind != imdbload.DatasetName {
		t.Errorf("Expected the committed name result, got: %v", results)
	}
	for _, call := range recorder.snapshot() {
		if call == "copy:ratings" {
			t.Errorf("Ratings must not load after title failure, saw: %v", recorder.snapshot())
		}
	}
}

func TestRun_LogsRowCounts(t *testing.T) {
	recorder := &callRecorder{}
	schemaMgr := &mockSchemaManager{calls: recorder}
	copier := &mockCopier{calls: recorder, rows: 1234567}
	logger := &mockLogger{}
	svc := newTestService(schemaMgr, copier, logger)

	_, err := svc.run(context.Background(), nil, validLoadConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := logger.infoLines()
	wantLine := "Loaded 1,234,567 rows into imdb.name_basics from name.basics.tsv.gz"
	found := false
	for _, line := range lines {
		if line == wantLine {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected %q in info output, got: %v", wantLine, lines)
	}

	if len(lines) == 0 || lines[len(lines)-1] != "✓ Load completed successfully" {
		t.Errorf("Expected success marker as final line, got: %v", lines)
	}
}
