package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// prefix returns the unified diff marker for the line kind.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is a single line in a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a group of changes with surrounding context.
// Start fields are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified.
// Returns nil if the contents are line-for-line identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	orig := splitLines(original)
	mod := splitLines(modified)

	ops := diffLines(orig, mod)

	diff := &Diff{Path: path}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}

	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}

	diff.Hunks = buildHunks(ops)
	return diff
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, line := range h.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// splitLines splits content on "\n", dropping the empty element after a
// trailing newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineOp is one line of an edit script.
type lineOp struct {
	kind    DiffLineKind
	content string
}

// diffLines returns an edit script turning orig into mod, built from a
// longest-common-subsequence table. Removals precede additions within a
// change.
func diffLines(orig, mod []string) []lineOp {
	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, len(orig)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(mod)+1)
	}
	for i := len(orig) - 1; i >= 0; i-- {
		for j := len(mod) - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]lineOp, 0, max(len(orig), len(mod)))
	var adds []lineOp

	flushAdds := func() {
		ops = append(ops, adds...)
		adds = adds[:0]
	}

	i, j := 0, 0
	for i < len(orig) || j < len(mod) {
		switch {
		case i < len(orig) && j < len(mod) && orig[i] == mod[j]:
			flushAdds()
			ops = append(ops, lineOp{DiffLineContext, orig[i]})
			i++
			j++
		case j < len(mod) && (i == len(orig) || lcs[i][j+1] > lcs[i+1][j]):
			adds = append(adds, lineOp{DiffLineAdd, mod[j]})
			j++
		default:
			ops = append(ops, lineOp{DiffLineRemove, orig[i]})
			i++
		}
	}
	flushAdds()

	return ops
}

// buildHunks groups an edit script into hunks, merging changes separated
// by at most 2*contextLines unchanged lines.
func buildHunks(ops []lineOp) []DiffHunk {
	var hunks []DiffHunk

	origLine, modLine := 1, 1
	var cur *DiffHunk
	trailing := 0 // context lines since the last change in cur

	for idx, op := range ops {
		if op.kind == DiffLineContext {
			if cur != nil {
				if trailing < contextLines || nextChangeWithin(ops, idx, 2*contextLines-trailing) {
					cur.Lines = append(cur.Lines, DiffLine{op.kind, op.content})
					cur.OriginalCount++
					cur.ModifiedCount++
					trailing++
				} else {
					hunks = append(hunks, *cur)
					cur = nil
				}
			}
			origLine++
			modLine++
			continue
		}

		if cur == nil {
			lead := leadingContext(ops, idx)
			cur = &DiffHunk{
				OriginalStart: origLine - len(lead),
				ModifiedStart: modLine - len(lead),
			}
			for _, c := range lead {
				cur.Lines = append(cur.Lines, DiffLine{DiffLineContext, c.content})
			}
			cur.OriginalCount = len(lead)
			cur.ModifiedCount = len(lead)
		}
		trailing = 0

		cur.Lines = append(cur.Lines, DiffLine{op.kind, op.content})
		if op.kind == DiffLineRemove {
			cur.OriginalCount++
			origLine++
		} else {
			cur.ModifiedCount++
			modLine++
		}
	}

	if cur != nil {
		hunks = append(hunks, *cur)
	}

	return hunks
}

// leadingContext returns up to contextLines context ops directly before idx.
func leadingContext(ops []lineOp, idx int) []lineOp {
	start := idx
	for start > 0 && idx-start < contextLines && ops[start-1].kind == DiffLineContext {
		start--
	}
	return ops[start:idx]
}

// nextChangeWithin reports whether a change occurs within n ops after idx.
func nextChangeWithin(ops []lineOp, idx, n int) bool {
	for k := idx + 1; k < len(ops) && k <= idx+n; k++ {
		if ops[k].kind != DiffLineContext {
			return true
		}
	}
	return false
}
