package mdast

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeTableRow:      "TableRow",
	NodeTableCell:     "TableCell",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeStrikethrough: "Strikethrough",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
	NodeRaw:           "Raw",
}

// String returns the kind name, e.g. "Link".
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(unknown)"
}

// Node represents a single node in the Markdown tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte span of the node in File.Content.
	// Invalid for synthetic nodes and for inline nodes the parser
	// could not place.
	Range SourceRange

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	return n.Kind <= NodeTableCell
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return n.Kind >= NodeText && n.Kind <= NodeHTMLInline
}

// IsLink reports whether n is a link node carrying link attributes.
func (n *Node) IsLink() bool {
	return n != nil && n.Kind == NodeLink && n.Inline != nil && n.Inline.Link != nil
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// PlainText concatenates the text of all Text and CodeSpan descendants.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}

	var buf []byte

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(child *Node) error {
		if child.Inline == nil {
			return nil
		}
		switch child.Kind {
		case NodeText, NodeCodeSpan:
			buf = append(buf, child.Inline.Text...)
		case NodeSoftBreak, NodeHardBreak:
			buf = append(buf, ' ')
		}
		return nil
	})

	return string(buf)
}
