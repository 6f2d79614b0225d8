package imdbload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, config)
//	if errors.Is(err, imdbload.ErrConnectionFailed) {
//	    // Report connection guidance, exit 1
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the initial database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSchemaInitFailed indicates schema or table creation failed.
	ErrSchemaInitFailed = errors.New("schema initialization failed")

	// ErrLoadFailed indicates a bulk COPY load failed.
	ErrLoadFailed = errors.New("load failed")

	// ErrHeaderMismatch indicates a source file header differed from the
	// expected field list while strict header checking was enabled.
	ErrHeaderMismatch = errors.New("header mismatch")

	// ErrConfigNotFound indicates no project configuration file exists.
	// Absence is not a failure; callers use this to fall back to defaults.
	ErrConfigNotFound = errors.New("config file not found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaInitFailed):
		return ExitSchemaInitFailed
	case errors.Is(err, ErrHeaderMismatch):
		return ExitLoadFailed
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	}

	// Cobra reports CLI misuse as plain errors; classify by message
	errStr := err.Error()
	if isUsageError(errStr) {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

func isUsageError(errStr string) bool {
	return strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "invalid argument") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "accepts ")
}
