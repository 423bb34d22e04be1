package cli

import (
	"errors"

	"github.com/thenoetrevino/clubhouse/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: file system errors, upload failures, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing arguments, an update with nothing to change.
	ExitUsage = 2

	// ExitNotFound indicates a requested team or staff member was not found.
	ExitNotFound = 3

	// ExitDataErr indicates the database could not be read or written.
	ExitDataErr = 4

	// ExitValidation indicates input that failed a field check.
	ExitValidation = 5
)

// ErrUsage marks a command invoked with missing or conflicting arguments
var ErrUsage = errors.New("invalid usage")

// ExitCode maps an error returned by a command to its exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoSelection):
		return ExitNotFound
	case errors.Is(err, models.ErrStorage), errors.Is(err, models.ErrNoDatabase):
		return ExitDataErr
	default:
		return ExitError
	}
}

// ErrorCode is the machine-readable code printed in JSON error output
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return "USAGE_ERROR"
	case errors.Is(err, models.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoSelection):
		return "NOT_FOUND"
	case errors.Is(err, models.ErrNoDatabase):
		return "NO_DATABASE"
	case errors.Is(err, models.ErrStorage):
		return "STORAGE_ERROR"
	case errors.Is(err, models.ErrIO):
		return "IO_ERROR"
	default:
		return "ERROR"
	}
}
