package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// NoRange returns the invalid range used for nodes without a source span.
func NoRange() SourceRange {
	return SourceRange{StartOffset: -1, EndOffset: -1}
}

// Valid reports whether the range points into source content.
func (r SourceRange) Valid() bool {
	return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.EndOffset - r.StartOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return r.Valid() && offset >= r.StartOffset && offset < r.EndOffset
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// PositionOf converts a byte offset in the node's file to a line/column.
// Returns the zero Position if the node has no file.
func (n *Node) PositionOf(offset int) Position {
	if n == nil || n.File == nil {
		return Position{}
	}
	line, col := n.File.LineAt(offset)
	return Position{Line: line, Column: col}
}

// Text returns the source bytes covered by the node's range.
// Returns nil if the node has no file or no valid range.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Range.Valid() || n.Range.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
