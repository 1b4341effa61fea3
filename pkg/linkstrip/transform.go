package linkstrip

import "github.com/yaklabco/mdstrip/pkg/mdast"

// Rewrite records one link whose destination was changed.
type Rewrite struct {
	// Node is the link node.
	Node *mdast.Node

	// Original is the destination before rewriting.
	Original string

	// Updated is the destination after rewriting.
	Updated string
}

// RemovedAt returns the offset within Original of the removed bytes.
func (r Rewrite) RemovedAt() int {
	n := min(len(r.Original), len(r.Updated))
	for i := range n {
		if r.Original[i] != r.Updated[i] {
			return i
		}
	}
	return n
}

// RemovedLen returns the number of bytes removed from Original.
func (r Rewrite) RemovedLen() int {
	return len(r.Original) - len(r.Updated)
}

// Apply rewrites link destinations under root in place and returns the
// rewrites in document order. Images and other nodes are not touched.
func Apply(root *mdast.Node) []Rewrite {
	return collect(root, true)
}

// Plan reports the rewrites Apply would make without changing the tree.
func Plan(root *mdast.Node) []Rewrite {
	return collect(root, false)
}

// Transform returns a rewritten copy of the tree rooted at root.
// The input tree is not modified.
func Transform(root *mdast.Node) *mdast.Node {
	if root == nil {
		return nil
	}

	out := mdast.Clone(root)
	Apply(out)
	return out
}

func collect(root *mdast.Node, mutate bool) []Rewrite {
	var rewrites []Rewrite

	for _, link := range mdast.Links(root) {
		attrs := link.Inline.Link

		updated := StripTarget(attrs.Destination)
		if updated == attrs.Destination {
			continue
		}

		rewrites = append(rewrites, Rewrite{
			Node:     link,
			Original: attrs.Destination,
			Updated:  updated,
		})

		if mutate {
			attrs.Destination = updated
		}
	}

	return rewrites
}
