package goldmark

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yaklabco/mdstrip/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := New(tt.flavor).Flavor(); got != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", got, tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	t.Parallel()

	content := []byte("# Hello\n\nWorld")
	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Path != "test.md" {
		t.Errorf("Path = %q, want %q", snapshot.Path, "test.md")
	}

	if &snapshot.Content[0] == &content[0] {
		t.Error("Content should be a copy, not the same slice")
	}

	if snapshot.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", snapshot.LineCount())
	}

	if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
		t.Fatalf("unexpected root %v", snapshot.Root)
	}

	err = mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
		if n.File != snapshot {
			t.Errorf("node %v has incorrect File reference", n.Kind)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk error: %v", err)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if snapshot.Root == nil || snapshot.Root.HasChildren() {
		t.Errorf("expected empty document, got %v", snapshot.Root)
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(FlavorCommonMark).Parse(ctx, "test.md", []byte("# Hello")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), -1*time.Second)
	defer cancel()

	if _, err := New(FlavorCommonMark).Parse(ctx, "test.md", []byte("# Hello")); err == nil {
		t.Error("expected error for timed out context")
	}
}

func TestParser_Parse_Structure(t *testing.T) {
	t.Parallel()

	content := []byte("# Heading\n\n" +
		"Paragraph with *emphasis* and **strong**.\n\n" +
		"- Item 1\n- Item 2\n\n" +
		"> Blockquote\n\n" +
		"```go\nfunc main() {}\n```\n\n" +
		"[Link](./guide.md)\n")

	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "test.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	counts := map[mdast.NodeKind]int{
		mdast.NodeHeading:    1,
		mdast.NodeList:       1,
		mdast.NodeListItem:   2,
		mdast.NodeBlockquote: 1,
		mdast.NodeCodeBlock:  1,
		mdast.NodeEmphasis:   1,
		mdast.NodeStrong:     1,
		mdast.NodeLink:       1,
	}

	for kind, want := range counts {
		if got := len(mdast.FindByKind(snapshot.Root, kind)); got != want {
			t.Errorf("%s count = %d, want %d", kind, got, want)
		}
	}

	code := mdast.FindByKind(snapshot.Root, mdast.NodeCodeBlock)[0]
	if code.Block.CodeBlock.Info != "go" {
		t.Errorf("code info = %q, want go", code.Block.CodeBlock.Info)
	}

	heading := mdast.FindByKind(snapshot.Root, mdast.NodeHeading)[0]
	if heading.PlainText() != "Heading" {
		t.Errorf("heading text = %q", heading.PlainText())
	}
}

func TestParser_Parse_GFM(t *testing.T) {
	t.Parallel()

	content := []byte("| a | b |\n|---|---|\n| [x](x.md) | ~~y~~ |\n\nsee https://example.com/a.md\n")

	gfm, err := New(FlavorGFM).Parse(context.Background(), "t.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(mdast.FindByKind(gfm.Root, mdast.NodeTable)) != 1 {
		t.Error("expected a table under gfm")
	}

	if len(mdast.FindByKind(gfm.Root, mdast.NodeStrikethrough)) != 1 {
		t.Error("expected strikethrough under gfm")
	}

	links := mdast.Links(gfm.Root)
	if len(links) != 2 {
		t.Fatalf("expected 2 links under gfm, got %d", len(links))
	}

	if links[1].Inline.Link.ReferenceStyle != mdast.RefStyleAutolink {
		t.Errorf("expected linkified autolink, got %s", links[1].Inline.Link.ReferenceStyle)
	}

	cm, err := New(FlavorCommonMark).Parse(context.Background(), "t.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(mdast.FindByKind(cm.Root, mdast.NodeTable)) != 0 {
		t.Error("commonmark should not parse tables")
	}
}

func TestParser_Parse_LineBreaks(t *testing.T) {
	t.Parallel()

	snapshot, err := New(FlavorCommonMark).Parse(context.Background(), "t.md", []byte("one\ntwo  \nthree\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	para := mdast.FindByKind(snapshot.Root, mdast.NodeParagraph)[0]
	if text := para.PlainText(); !strings.HasPrefix(text, "one two") || !strings.HasSuffix(text, "three") {
		t.Errorf("PlainText() = %q", text)
	}

	if len(mdast.FindByKind(para, mdast.NodeSoftBreak)) != 1 {
		t.Error("expected one soft break")
	}

	if len(mdast.FindByKind(para, mdast.NodeHardBreak)) != 1 {
		t.Error("expected one hard break")
	}
}
