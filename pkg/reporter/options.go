package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always", "never".
	Color string

	// ShowSummary writes aggregate statistics after the results.
	ShowSummary bool

	// DryRun words the summary as pending changes.
	DryRun bool

	// Compact disables JSON indentation.
	Compact bool

	// WorkingDir makes reported paths relative to it when set.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
