// Package render builds the documentation site: Markdown pages with front
// matter are rendered to HTML through goldmark, with relative ".md" link
// targets stripped by the linkstrip extension, and wrapped in a layout with
// an autogenerated sidebar.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdstrip/pkg/linkstrip"
)

// ErrUnknownExtension is returned for an extension name not in the registry.
var ErrUnknownExtension = errors.New("unknown markdown extension")

//nolint:gochecknoglobals // Read-only lookup table.
var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
	"definition":    extension.DefinitionList,
}

// ExtensionNames returns the supported extension names, sorted.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Engine renders Markdown bodies to HTML.
type Engine struct {
	md goldmark.Markdown
}

// NewEngine builds an Engine with the named goldmark extensions enabled.
// Names are case-insensitive and duplicates are ignored. Heading IDs are
// generated and link targets always go through linkstrip.
func NewEngine(extensions []string) (*Engine, error) {
	exts := []goldmark.Extender{}
	seen := map[string]struct{}{}

	for _, name := range extensions {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, name)
		}

		exts = append(exts, ext)
		seen[key] = struct{}{}
	}

	exts = append(exts, linkstrip.New())

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	return &Engine{md: md}, nil
}

// Markdown returns the underlying goldmark instance.
func (e *Engine) Markdown() goldmark.Markdown {
	return e.md
}

// Render converts body to HTML and returns the text of the first heading,
// if any.
func (e *Engine) Render(body []byte) ([]byte, string, error) {
	doc := e.md.Parser().Parse(text.NewReader(body))

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, body, doc); err != nil {
		return nil, "", fmt.Errorf("render markdown: %w", err)
	}

	return buf.Bytes(), firstHeading(doc, body), nil
}

func firstHeading(doc ast.Node, source []byte) string {
	var heading *ast.Heading

	//nolint:errcheck // the walker never returns an error
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			heading = h
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if heading == nil {
		return ""
	}
	return strings.TrimSpace(plainText(heading, source))
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder

	//nolint:errcheck // the walker never returns an error
	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return b.String()
}
