package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// HeadingID is the generated anchor id, when the parser assigns one.
	HeadingID string

	// List holds list-specific attributes for NodeList.
	List *ListAttrs

	// CodeBlock holds code block attributes for NodeCodeBlock.
	CodeBlock *CodeBlockAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Ordered is true for ordered lists.
	Ordered bool

	// Marker is the bullet or delimiter byte ('-', '+', '*', '.', ')').
	Marker byte

	// StartNumber is the starting number for ordered lists.
	StartNumber int

	// Tight is true if this is a tight list.
	Tight bool
}

// CodeBlockAttrs holds attributes for code block nodes.
type CodeBlockAttrs struct {
	// Info is the info string of a fenced block.
	Info string

	// Indented is true for indented code blocks.
	Indented bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Text holds the text content for NodeText and NodeCodeSpan.
	Text []byte

	// Link holds link attributes for NodeLink and NodeImage.
	Link *LinkAttrs

	// EmphasisLevel indicates emphasis strength (1 for emphasis, 2 for strong).
	EmphasisLevel int
}

// ReferenceStyle indicates the syntax style of a link.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleReference represents links resolved from a definition:
	// [text][label], [label][] and [label].
	RefStyleReference

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleReference:
		return "reference"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link and image nodes.
type LinkAttrs struct {
	// Destination is the link target as the parser resolved it.
	Destination string

	// Title is the optional link title.
	Title string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle

	// DestinationRange is where Destination appears verbatim in the source.
	// It is invalid when the destination could not be located, e.g. for
	// reference-style links or destinations written with escapes.
	DestinationRange SourceRange
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets the emphasis level and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}

// NewLink creates a link node with the given destination.
// The destination range is left invalid.
func NewLink(destination string) *Node {
	n := NewNode(NodeLink)
	n.Inline = NewInlineAttrs().WithLink(&LinkAttrs{
		Destination:      destination,
		DestinationRange: NoRange(),
	})
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	n := NewNode(NodeText)
	n.Inline = NewInlineAttrs().WithText([]byte(text))
	return n
}
