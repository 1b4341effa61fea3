package pretty

import (
	"fmt"
	"strings"
)

// FormatFileHeader formats the header line for a file's rewrites.
func (s *Styles) FormatFileHeader(path string, count int) string {
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%s)", Plural(count, "link")))
}

// FormatRewrite formats one link rewrite as an indented line:
//
//	3:13  ./gleam/intro.md → ./gleam/intro
//
// Rewrites that cannot be applied to the source are marked.
func (s *Styles) FormatRewrite(line, col int, original, updated string, located bool) string {
	var b strings.Builder

	b.WriteString("  ")
	if line > 0 {
		b.WriteString(s.Location.Render(fmt.Sprintf("%d:%d", line, col)))
	} else {
		b.WriteString(s.Location.Render("-"))
	}
	b.WriteString("  ")
	b.WriteString(s.Original.Render(original))
	b.WriteString(s.Arrow.Render(" → "))
	b.WriteString(s.Updated.Render(updated))

	if !located {
		b.WriteString(" " + s.Unlocated.Render("(not in source)"))
	}

	b.WriteString("\n")
	return b.String()
}

// FormatFileError formats a per-file error line.
func (s *Styles) FormatFileError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err)) + "\n"
}

// Plural returns "1 link" or "N links".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
