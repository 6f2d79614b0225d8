package imdbload

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Load completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or flags

	// ExitConnectionError shares the general error code on purpose: wrapper
	// scripts test for exit 1 when the initial connection fails, and that
	// value is part of the CLI contract.
	ExitConnectionError  = 1
	ExitSchemaInitFailed = 12 // Schema/DDL initialization failed
	ExitLoadFailed       = 13 // Bulk COPY load failed
)

const (
	// DefaultSchema is the destination schema when --schema is not given.
	DefaultSchema = "imdb"

	// NullToken is the literal that PostgreSQL's COPY translates to SQL NULL.
	// IMDb dataset files use it verbatim.
	NullToken = `\N`

	// GzipSuffix marks source files that must be decompressed on the fly.
	GzipSuffix = ".gz"

	// HistoryTable records one row per successful dataset load.
	// It lives in the destination schema and is never truncated.
	HistoryTable = "load_history"

	// DSNEnvVar and DSNEnvVarFallback are consulted, in that order, when
	// --dsn is not provided on the command line.
	DSNEnvVar         = "IMDBLOAD_DSN"
	DSNEnvVarFallback = "DATABASE_URL"

	// DefaultConfigFile is the project file consulted when --config is not given.
	DefaultConfigFile = "imdbload.yaml"
)
