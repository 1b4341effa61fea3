package linkstrip_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstrip/pkg/linkstrip"
	"github.com/yaklabco/mdstrip/pkg/mdast"
	"github.com/yaklabco/mdstrip/pkg/parser/goldmark"
)

const sample = `# Notes

See [intro](./gleam/intro.md), [setup](../uncategorized/notes.md#setup)
and [the site](https://example.com/page.md).

![diagram](./diagram.md)

- [guide](guide.md)
- [logo](image.png)
`

func parse(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := goldmark.New(goldmark.FlavorCommonMark).Parse(context.Background(), "notes.md", []byte(content))
	require.NoError(t, err)
	return snapshot
}

func destinations(root *mdast.Node) []string {
	var out []string
	for _, link := range mdast.Links(root) {
		out = append(out, link.Inline.Link.Destination)
	}
	return out
}

func TestApply(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, sample)

	rewrites := linkstrip.Apply(snapshot.Root)
	require.Len(t, rewrites, 3)

	assert.Equal(t, "./gleam/intro.md", rewrites[0].Original)
	assert.Equal(t, "./gleam/intro", rewrites[0].Updated)
	assert.Equal(t, "../uncategorized/notes#setup", rewrites[1].Updated)
	assert.Equal(t, "guide", rewrites[2].Updated)

	assert.Equal(t, []string{
		"./gleam/intro",
		"../uncategorized/notes#setup",
		"https://example.com/page.md",
		"guide",
		"image.png",
	}, destinations(snapshot.Root))

	images := mdast.FindByKind(snapshot.Root, mdast.NodeImage)
	require.Len(t, images, 1)
	assert.Equal(t, "./diagram.md", images[0].Inline.Link.Destination)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, sample)

	linkstrip.Apply(snapshot.Root)
	first := destinations(snapshot.Root)

	assert.Empty(t, linkstrip.Apply(snapshot.Root))
	assert.Equal(t, first, destinations(snapshot.Root))
}

func TestApply_NonLinkNodesUnchanged(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, sample)
	before := mdast.Clone(snapshot.Root)

	linkstrip.Apply(snapshot.Root)

	var want, got []string
	for _, n := range mdast.FindAll(before, func(n *mdast.Node) bool { return !n.IsLink() }) {
		want = append(want, n.Kind.String()+":"+n.PlainText())
	}
	for _, n := range mdast.FindAll(snapshot.Root, func(n *mdast.Node) bool { return !n.IsLink() }) {
		got = append(got, n.Kind.String()+":"+n.PlainText())
	}

	assert.Equal(t, want, got)
}

func TestApply_SkipsMalformedLinks(t *testing.T) {
	t.Parallel()

	doc := mdast.NewDocument()
	mdast.AppendChild(doc, mdast.NewNode(mdast.NodeLink))
	mdast.AppendChild(doc, mdast.NewLink("a.md"))

	rewrites := linkstrip.Apply(doc)
	require.Len(t, rewrites, 1)
	assert.Equal(t, "a", rewrites[0].Updated)

	assert.Nil(t, linkstrip.Apply(nil))
}

func TestPlan(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, sample)

	rewrites := linkstrip.Plan(snapshot.Root)
	require.Len(t, rewrites, 3)
	assert.Equal(t, "./gleam/intro.md", mdast.Links(snapshot.Root)[0].Inline.Link.Destination)
}

func TestTransform_Immutable(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, sample)

	out := linkstrip.Transform(snapshot.Root)
	require.NotNil(t, out)
	assert.NotSame(t, snapshot.Root, out)

	assert.Equal(t, "./gleam/intro.md", destinations(snapshot.Root)[0])
	assert.Equal(t, "./gleam/intro", destinations(out)[0])

	assert.Nil(t, linkstrip.Transform(nil))
}

func TestRewrite_Removed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rewrite linkstrip.Rewrite
		at      int
	}{
		{linkstrip.Rewrite{Original: "guide.md", Updated: "guide"}, 5},
		{linkstrip.Rewrite{Original: "a.md#b.md", Updated: "a#b.md"}, 1},
		{linkstrip.Rewrite{Original: "a.md.md", Updated: "a.md"}, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.at, tt.rewrite.RemovedAt(), tt.rewrite.Original)
		assert.Equal(t, 3, tt.rewrite.RemovedLen(), tt.rewrite.Original)
	}
}
