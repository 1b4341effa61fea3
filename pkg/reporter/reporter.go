// Package reporter writes the results of a rewrite run as styled text,
// JSON or unified diffs.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// Reporter formats and writes rewrite results.
type Reporter interface {
	// Report writes output for result and returns the number of link
	// rewrites reported.
	Report(ctx context.Context, result *rewrite.Result) (int, error)
}

// New creates a Reporter for opts.Format.
//
//nolint:ireturn // Factory over the output formats.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// displayPath makes path relative to workDir when that does not climb
// out of it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}

	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
