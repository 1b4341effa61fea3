package mdast

import "bytes"

// Clone returns a deep copy of the subtree rooted at n.
//
// The copy shares no mutable state with the original: attributes and text
// buffers are duplicated. The copy is detached from n's parent and siblings
// but keeps the File back-reference, so source positions stay resolvable.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	cp := &Node{
		Kind:   n.Kind,
		Range:  n.Range,
		File:   n.File,
		Block:  cloneBlock(n.Block),
		Inline: cloneInline(n.Inline),
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(cp, Clone(child))
	}

	return cp
}

func cloneBlock(a *BlockAttrs) *BlockAttrs {
	if a == nil {
		return nil
	}

	cp := *a
	if a.List != nil {
		list := *a.List
		cp.List = &list
	}
	if a.CodeBlock != nil {
		code := *a.CodeBlock
		cp.CodeBlock = &code
	}
	return &cp
}

func cloneInline(a *InlineAttrs) *InlineAttrs {
	if a == nil {
		return nil
	}

	cp := *a
	if a.Text != nil {
		cp.Text = bytes.Clone(a.Text)
	}
	if a.Link != nil {
		link := *a.Link
		cp.Link = &link
	}
	return &cp
}
