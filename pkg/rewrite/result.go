package rewrite

import (
	"github.com/yaklabco/mdstrip/pkg/fix"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/mdast"
)

// LinkRewrite describes one link target changed in a file.
type LinkRewrite struct {
	// Line and Column locate the start of the destination in the original
	// source (1-based). For unlocated rewrites they point at the link text
	// when known, and are zero otherwise.
	Line   int
	Column int

	Original string
	Updated  string

	// Style is how the link was written: inline, reference or autolink.
	Style mdast.ReferenceStyle

	// Located is true when the destination was found verbatim in the
	// source and the rewrite is applied to the file. Reference-style
	// links and autolinks are reported but not written back.
	Located bool
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Rewrites lists every link whose target changes, in document order.
	Rewrites []LinkRewrite

	// Modified is true if the source content changed.
	Modified bool

	// ModifiedContent is the new source, nil if unchanged.
	ModifiedContent []byte

	// Diff is set in dry-run mode when the content changes.
	Diff *fix.Diff

	// Skipped is true if the file was not written, e.g. because it
	// changed on disk while being processed.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Unlocated returns the number of rewrites that could not be applied to
// the source.
func (r *FileResult) Unlocated() int {
	n := 0
	for _, rw := range r.Rewrites {
		if !rw.Located {
			n++
		}
	}
	return n
}

// Summary returns a short human-readable status.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "rewritten (backup created)"
	case r.Written:
		return "rewritten"
	case r.Modified:
		return "changes pending"
	case len(r.Rewrites) > 0:
		return "unlocated links"
	default:
		return "ok"
	}
}

// FileOutcome pairs a path with its result or error.
type FileOutcome struct {
	Path   string
	Result *FileResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesModified   int

	// FilesWithRewrites counts files with at least one changed link.
	FilesWithRewrites int

	LinksRewritten int
	LinksUnlocated int
}

// Result is the overall outcome of a run.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasRewrites reports whether any link target would change.
func (r *Result) HasRewrites() bool {
	return r != nil && r.Stats.LinksRewritten+r.Stats.LinksUnlocated > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++

	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesModified++
	}
	if len(res.Rewrites) > 0 {
		r.Stats.FilesWithRewrites++
	}

	unlocated := res.Unlocated()
	r.Stats.LinksUnlocated += unlocated
	r.Stats.LinksRewritten += len(res.Rewrites) - unlocated
}
