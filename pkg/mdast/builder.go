package mdast

// NewNode creates a new node of the specified kind.
// The node is detached and has no source range.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:  kind,
		Range: NoRange(),
	}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild appends a child node to a parent.
// A child that already has a parent is detached from it first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		removeChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// removeChild detaches child from parent.
func removeChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(node, func(child *Node) error {
		child.File = file
		return nil
	})
}
