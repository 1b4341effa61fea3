package goldmark

import (
	"bytes"

	"github.com/yaklabco/mdstrip/pkg/mdast"
)

// location is the result of searching the source for a link destination.
type location struct {
	// dest is the span of the destination, invalid if not found verbatim.
	dest mdast.SourceRange

	// reference is true when the label is not followed by "(".
	reference bool

	// labelEnd is the offset just after the closing bracket.
	labelEnd int
}

// locateDestination finds the destination of a link whose label text ends
// at or after from. It expects source of the form "](" optional whitespace,
// optional "<", then dest written byte for byte.
//
// Destinations that goldmark unescaped or decoded do not match the source
// and are reported as not found.
func locateDestination(content []byte, from int, dest string) location {
	loc := location{dest: mdast.NoRange()}

	if from < 0 || from >= len(content) {
		return loc
	}

	closeIdx := bytes.IndexByte(content[from:], ']')
	if closeIdx < 0 {
		return loc
	}

	pos := from + closeIdx + 1
	loc.labelEnd = pos

	if pos >= len(content) || content[pos] != '(' {
		loc.reference = true
		return loc
	}

	pos = skipLinkSpace(content, pos+1)
	if pos < len(content) && content[pos] == '<' {
		pos++
	}

	if pos > len(content) || !bytes.HasPrefix(content[pos:], []byte(dest)) {
		return loc
	}

	loc.dest = mdast.SourceRange{StartOffset: pos, EndOffset: pos + len(dest)}
	return loc
}

// skipLinkSpace skips spaces, tabs and at most one line ending.
func skipLinkSpace(content []byte, pos int) int {
	newline := false

	for pos < len(content) {
		switch content[pos] {
		case ' ', '\t':
			pos++
		case '\r', '\n':
			if newline {
				return pos
			}
			newline = true
			pos++
			if content[pos-1] == '\r' && pos < len(content) && content[pos] == '\n' {
				pos++
			}
		default:
			return pos
		}
	}

	return pos
}
