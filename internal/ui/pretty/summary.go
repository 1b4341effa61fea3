package pretty

import (
	"strings"

	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 links in 2 files would be rewritten, 1 not in source (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats rewrite.Stats, dryRun bool) string {
	checked := s.Dim.Render(" (" + Plural(stats.FilesProcessed, "file") + " checked)")

	total := stats.LinksRewritten + stats.LinksUnlocated
	if total == 0 {
		return s.Success.Render("No links to rewrite") + checked + "\n"
	}

	verb := "rewritten"
	if dryRun {
		verb = "would be rewritten"
	}

	parts := []string{
		Plural(total, "link") + " in " + Plural(stats.FilesWithRewrites, "file") + " " + verb,
	}

	if stats.LinksUnlocated > 0 {
		parts = append(parts, s.Warning.Render(Plural(stats.LinksUnlocated, "link")+" not in source"))
	}
	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(Plural(stats.FilesModified, "file")+" modified"))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(Plural(stats.FilesSkipped, "file")+" skipped"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(Plural(stats.FilesErrored, "file")+" failed"))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}
