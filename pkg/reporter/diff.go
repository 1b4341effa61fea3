package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mdstrip/internal/ui/pretty"
	"github.com/yaklabco/mdstrip/pkg/fix"
	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// DiffReporter writes the dry-run diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The count returned is the number of rewrites
// in files that have a diff.
func (r *DiffReporter) Report(_ context.Context, result *rewrite.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, additions, deletions, rewrites int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.out, r.styles.FormatFileError(displayPath(file.Path, r.opts.WorkingDir), file.Error))
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		rewrites += len(file.Result.Rewrites)

		r.writeDiff(displayPath(file.Path, r.opts.WorkingDir), file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprintf(r.out, "%s changed, %s, %s\n",
			pretty.Plural(files, "file"),
			r.styles.DiffAdd.Render(fmt.Sprintf("%d(+)", additions)),
			r.styles.DiffRemove.Render(fmt.Sprintf("%d(-)", deletions)),
		)
	}

	return rewrites, nil
}

func (r *DiffReporter) writeDiff(path string, diff *fix.Diff) {
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	// Skip the ---/+++ headers; the path above is the display path.
	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	for _, line := range lines[2:] {
		fmt.Fprintln(r.out, r.styleLine(line))
	}

	fmt.Fprintln(r.out)
}

func (r *DiffReporter) styleLine(line string) string {
	switch line[0] {
	case '@':
		return r.styles.DiffHunk.Render(line)
	case '+':
		return r.styles.DiffAdd.Render(line)
	case '-':
		return r.styles.DiffRemove.Render(line)
	default:
		return r.styles.DiffContext.Render(line)
	}
}
