package mdast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return SkipChildren to skip the node's subtree, or any other non-nil
// error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren is returned by a WalkFunc to skip the children of the
// current node. Walk itself never returns it.
//
//nolint:gochecknoglobals // Sentinel error.
var SkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of the tree starting at root.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	// Capture Next before descending so callbacks may replace the child.
	for child := root.FirstChild; child != nil; {
		next := child.Next
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
		child = next
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Links returns every link node under root that carries link attributes.
func Links(root *Node) []*Node {
	return FindAll(root, (*Node).IsLink)
}
