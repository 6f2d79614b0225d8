package imdbload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoadConfig contains all parameters needed for one load run.
type LoadConfig struct {
	// DSN is the PostgreSQL connection string (URL or keyword/value form).
	// It is handed to the driver verbatim.
	DSN string

	// Schema is the destination schema name.
	Schema string

	// NamePath, TitlePath, and RatingsPath locate the three source files.
	// Plain TSV or gzip-compressed TSV (by .gz extension).
	NamePath    string
	TitlePath   string
	RatingsPath string

	// Truncate empties all three destination tables before loading.
	Truncate bool

	// StrictHeader upgrades the header check from warn-and-continue to a
	// hard failure.
	StrictHeader bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.DSN == "" {
		errs = append(errs, fmt.Errorf("DSN is required (flag --dsn, $%s, $%s, or the config file): %w",
			DSNEnvVar, DSNEnvVarFallback, ErrInvalidConfig))
	}

	if c.Schema == "" {
		errs = append(errs, fmt.Errorf("Schema is required: %w", ErrInvalidConfig))
	}

	if c.NamePath == "" {
		errs = append(errs, fmt.Errorf("NamePath is required (flag --name): %w", ErrInvalidConfig))
	}

	if c.TitlePath == "" {
		errs = append(errs, fmt.Errorf("TitlePath is required (flag --title): %w", ErrInvalidConfig))
	}

	if c.RatingsPath == "" {
		errs = append(errs, fmt.Errorf("RatingsPath is required (flag --ratings): %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// PathFor returns the configured source path for a dataset kind.
func (c *LoadConfig) PathFor(kind DatasetKind) string {
	switch kind {
	case DatasetName:
		return c.NamePath
	case DatasetTitle:
		return c.TitlePath
	case DatasetRatings:
		return c.RatingsPath
	default:
		panic(fmt.Sprintf("imdbload: no source path for dataset kind %q", kind))
	}
}

// CopyRequest describes one dataset load handed to a BulkCopier.
type CopyRequest struct {
	// Schema is the destination schema name.
	Schema string

	// Dataset is the fixed dataset being loaded.
	Dataset Dataset

	// Path is the source file, plain or gzip-compressed TSV.
	Path string

	// StrictHeader makes a header mismatch fail the load instead of
	// logging a warning.
	StrictHeader bool
}

// CopyResult reports the outcome of one committed dataset load.
type CopyResult struct {
	// LoadID is the load_history primary key for this load.
	LoadID uuid.UUID

	// Kind and Table identify the dataset.
	Kind  DatasetKind
	Table string

	// Path is the source file that was streamed.
	Path string

	// RowsCopied is the number of rows this COPY transferred.
	RowsCopied int64

	// TotalRows is the table's cumulative row count after the load,
	// including rows that existed before this run.
	TotalRows int64

	// SourceSHA256 is the hex digest of the decompressed source content.
	SourceSHA256 string

	// Duration covers open-to-commit for this dataset.
	Duration time.Duration
}
