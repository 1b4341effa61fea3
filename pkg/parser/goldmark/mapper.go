package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/mdstrip/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
//
// cursor tracks the end of the last inline source span seen, in document
// order. Link destinations are searched for starting there.
type mapper struct {
	content []byte
	cursor  int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	doc.Range = mdast.SourceRange{StartOffset: 0, EndOffset: len(m.content)}
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}

		// goldmark flags line breaks on the preceding text node.
		if t, ok := child.(*ast.Text); ok {
			switch {
			case t.HardLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
			case t.SoftLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	// Inline content never starts before its block. Without this, an
	// empty-label link after a code or HTML block would match link-like
	// text inside that block.
	if gmNode.Type() == ast.TypeBlock {
		if r := blockRange(gmNode); r.Valid() {
			m.advance(r.StartOffset)
		}
	}

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = m.mapContainer(gmNode, mdast.NodeParagraph)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = m.mapContainer(gmNode, mdast.NodeListItem)

	case *ast.Blockquote:
		node = m.mapContainer(gmNode, mdast.NodeBlockquote)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)
		node.Range = blockRange(gmn)
		m.advance(node.Range.EndOffset)
		if gmn.HasClosure() {
			m.advance(gmn.ClosureLine.Stop)
		}

	// Inline-level nodes.
	case *ast.Text:
		node = m.mapText(gmn)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn)

	case *ast.Image:
		node = m.mapImage(gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = m.mapRawHTML(gmn)

	case *ast.String:
		node = mdast.NewText(string(gmn.Value))

	// GFM extension nodes.
	case *east.Strikethrough:
		node = m.mapContainer(gmNode, mdast.NodeStrikethrough)

	case *east.Table:
		node = m.mapContainer(gmNode, mdast.NodeTable)

	case *east.TableHeader, *east.TableRow:
		node = m.mapContainer(gmNode, mdast.NodeTableRow)

	case *east.TableCell:
		node = m.mapContainer(gmNode, mdast.NodeTableCell)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeRaw)

	default:
		// Fallback for unknown node types.
		node = m.mapContainer(gmNode, mdast.NodeRaw)
	}

	return node
}

// mapContainer maps a node whose only payload is its children.
func (m *mapper) mapContainer(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)
	if gmNode.Type() == ast.TypeBlock {
		node.Range = blockRange(gmNode)
	}
	if !node.Range.Valid() {
		node.Range = childrenRange(node)
	}
	return node
}

// mapHeading converts a goldmark Heading to an mdast node.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := m.mapContainer(h, mdast.NodeHeading)
	node.Block = mdast.NewBlockAttrs().WithHeadingLevel(h.Level)

	if id, ok := h.AttributeString("id"); ok {
		if b, isBytes := id.([]byte); isBytes {
			node.Block.HeadingID = string(b)
		}
	}

	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := m.mapContainer(list, mdast.NodeList)
	node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		Marker:      list.Marker,
		StartNumber: list.Start,
		Tight:       list.IsTight,
	})
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Range = blockRange(codeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.content))
		m.advance(codeBlock.Info.Segment.Stop)
	}
	m.advance(node.Range.EndOffset)

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Info: info})
	return node
}

// mapIndentedCodeBlock converts a goldmark indented CodeBlock to an mdast node.
func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Range = blockRange(codeBlock)
	m.advance(node.Range.EndOffset)
	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Indented: true})
	return node
}

// mapText converts a goldmark Text node to an mdast node.
func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	seg := textNode.Segment
	m.advance(seg.Stop)

	node := mdast.NewNode(mdast.NodeText)
	node.Inline = mdast.NewInlineAttrs().WithText(textNode.Value(m.content))
	node.Range = mdast.SourceRange{StartOffset: seg.Start, EndOffset: seg.Stop}
	return node
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level == 2 {
		kind = mdast.NodeStrong
	}

	node := m.mapContainer(emphasis, kind)
	node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(emphasis.Level)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var code []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			code = append(code, textNode.Value(m.content)...)
			m.advance(textNode.Segment.Stop)
		}
	}

	node.Inline = mdast.NewInlineAttrs().WithText(code)
	return node
}

// mapLink converts a goldmark Link to an mdast node.
// goldmark resolves reference-style links during parsing; they are told
// apart by what follows the closing bracket in the source.
func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	return m.mapLinkLike(link, mdast.NodeLink, link.Destination, link.Title)
}

// mapImage converts a goldmark Image to an mdast node.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	return m.mapLinkLike(img, mdast.NodeImage, img.Destination, img.Title)
}

func (m *mapper) mapLinkLike(gmNode ast.Node, kind mdast.NodeKind, dest, title []byte) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)

	attrs := &mdast.LinkAttrs{
		Destination:      string(dest),
		Title:            string(title),
		ReferenceStyle:   mdast.RefStyleInline,
		DestinationRange: mdast.NoRange(),
	}

	loc := locateDestination(m.content, m.cursor, attrs.Destination)
	switch {
	case loc.reference:
		attrs.ReferenceStyle = mdast.RefStyleReference
		m.advance(loc.labelEnd)
	case loc.dest.Valid():
		attrs.DestinationRange = loc.dest
		m.advance(loc.dest.EndOffset)
	}

	node.Inline = mdast.NewInlineAttrs().WithLink(attrs)
	node.Range = childrenRange(node)
	return node
}

// mapAutoLink converts a goldmark AutoLink to an mdast node.
// The destination is the href goldmark renders, so email autolinks get a
// mailto: prefix. Autolinks have no separate destination in source.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)

	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:      AutoLinkHref(al, m.content),
		ReferenceStyle:   mdast.RefStyleAutolink,
		DestinationRange: mdast.NoRange(),
	})

	mdast.AppendChild(node, mdast.NewText(string(al.Label(m.content))))

	return node
}

// AutoLinkHref returns the href goldmark's HTML renderer emits for al.
func AutoLinkHref(al *ast.AutoLink, source []byte) string {
	url := al.URL(source)
	if al.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		return "mailto:" + string(url)
	}
	return string(url)
}

// mapRawHTML converts inline HTML and records its span.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLInline)

	segs := raw.Segments
	if segs != nil && segs.Len() > 0 {
		node.Range = mdast.SourceRange{
			StartOffset: segs.At(0).Start,
			EndOffset:   segs.At(segs.Len() - 1).Stop,
		}
		m.advance(node.Range.EndOffset)
	}

	return node
}

func (m *mapper) advance(offset int) {
	if offset > m.cursor {
		m.cursor = offset
	}
}

// blockRange returns the span of a block's content lines.
func blockRange(gmNode ast.Node) mdast.SourceRange {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return mdast.NoRange()
	}

	return mdast.SourceRange{
		StartOffset: lines.At(0).Start,
		EndOffset:   lines.At(lines.Len() - 1).Stop,
	}
}

// childrenRange returns the union of the children's valid ranges.
func childrenRange(node *mdast.Node) mdast.SourceRange {
	out := mdast.NoRange()

	for child := node.FirstChild; child != nil; child = child.Next {
		r := child.Range
		if !r.Valid() {
			continue
		}
		if !out.Valid() || r.StartOffset < out.StartOffset {
			out.StartOffset = r.StartOffset
		}
		if r.EndOffset > out.EndOffset {
			out.EndOffset = r.EndOffset
		}
	}

	return out
}
