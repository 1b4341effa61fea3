package linkstrip

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	gmparser "github.com/yaklabco/mdstrip/pkg/parser/goldmark"
)

// DefaultPriority runs the transformer after goldmark's built-in ones.
const DefaultPriority = 100

// Extension registers the link rewriting transformer with goldmark.
type Extension struct {
	priority int
}

// Option configures an Extension.
type Option func(*Extension)

// WithPriority sets the AST transformer priority.
func WithPriority(priority int) Option {
	return func(e *Extension) {
		e.priority = priority
	}
}

// New creates an Extension.
func New(opts ...Option) *Extension {
	e := &Extension{priority: DefaultPriority}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(util.Prioritized(&Transformer{}, e.priority)),
	)
}

var _ goldmark.Extender = (*Extension)(nil)

// Transformer rewrites link destinations in a goldmark document.
type Transformer struct{}

var _ parser.ASTTransformer = (*Transformer)(nil)

// Transform implements parser.ASTTransformer.
//
// Autolinks whose href changes are replaced by a plain link with the same
// label, since an autolink renders its text as its href.
func (t *Transformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var autolinks []*ast.AutoLink

	//nolint:errcheck // the walker never returns an error
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			node.Destination = []byte(StripTarget(string(node.Destination)))
		case *ast.AutoLink:
			autolinks = append(autolinks, node)
		}

		return ast.WalkContinue, nil
	})

	for _, al := range autolinks {
		href := gmparser.AutoLinkHref(al, source)
		updated := StripTarget(href)
		if updated == href {
			continue
		}

		link := ast.NewLink()
		link.Destination = []byte(updated)
		link.AppendChild(link, ast.NewString(al.Label(source)))

		parent := al.Parent()
		parent.ReplaceChild(parent, al, link)
	}
}
