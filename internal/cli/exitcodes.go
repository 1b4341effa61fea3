package cli

import (
	"errors"

	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// Exit codes for mdstrip.
const (
	// ExitSuccess indicates successful execution with nothing to report.
	ExitSuccess = 0

	// ExitLinksFound indicates --check found links that would be rewritten.
	ExitLinksFound = 1

	// ExitFileErrors indicates some files could not be processed.
	ExitFileErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLinksFound is returned by "links --check" when links would change.
	ErrLinksFound = errors.New("links would be rewritten")

	// ErrFilesFailed is returned when one or more files failed to process.
	ErrFilesFailed = errors.New("some files could not be processed")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code for a rewrite result.
// With check set, pending link rewrites are a failure.
func ExitCodeFromResult(result *rewrite.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitFileErrors
	}

	if check && result.HasRewrites() {
		return ExitLinksFound
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLinksFound):
		return ExitLinksFound
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err is only an exit status signal that should
// not be logged.
func IsSilent(err error) bool {
	return errors.Is(err, ErrLinksFound)
}
