package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdstrip/internal/ui/pretty"
	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// TextReporter lists rewrites grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *rewrite.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
			continue
		}

		if file.Result == nil || len(file.Result.Rewrites) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Rewrites)))
		for _, rw := range file.Result.Rewrites {
			fmt.Fprint(r.bw, r.styles.FormatRewrite(rw.Line, rw.Column, rw.Original, rw.Updated, rw.Located))
			total++
		}
		if file.Result.Skipped {
			fmt.Fprintln(r.bw, "  "+r.styles.Warning.Render(file.Result.Summary()))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}

	return total, nil
}
