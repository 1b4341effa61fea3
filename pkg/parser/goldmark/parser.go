// Package goldmark builds mdast trees from Markdown using the goldmark library.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdstrip/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown source into mdast trees.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// ValidFlavor reports whether flavor names a supported Markdown flavor.
func ValidFlavor(flavor string) bool {
	return flavor == FlavorCommonMark || flavor == FlavorGFM
}

// Parse converts raw Markdown bytes into a fully-populated FileSnapshot.
//
// The content is copied, so callers may reuse the slice. Link nodes carry
// their destination as goldmark resolved it, and a DestinationRange when the
// destination was found verbatim in the source.
//
// Returns nil and an error if the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	reader := text.NewReader(snapshot.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	mapper := newMapper(snapshot.Content)
	snapshot.Root = mapper.mapDocument(gmDoc)

	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	if ValidFlavor(flavor) {
		return flavor
	}
	return FlavorCommonMark
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
