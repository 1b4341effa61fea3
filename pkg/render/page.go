package render

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the page metadata recognized in a YAML front matter block.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Sidebar     struct {
		Order *int   `yaml:"order"`
		Label string `yaml:"label"`
	} `yaml:"sidebar"`
}

// Page is a rendered Markdown page.
type Page struct {
	// Path is the page's path relative to the content directory.
	Path string

	// Slug is the slash-separated path relative to the content directory,
	// without the Markdown extension.
	Slug string

	Title       string
	Description string

	// SidebarLabel overrides Title in the sidebar.
	SidebarLabel string

	// Order sorts the page within its sidebar group when HasOrder is set.
	Order    int
	HasOrder bool

	Body template.HTML
}

// Label returns the text used for the page in the sidebar.
func (p *Page) Label() string {
	if p.SidebarLabel != "" {
		return p.SidebarLabel
	}
	return p.Title
}

// Dir returns the slash-separated directory of the page's slug, or "" for
// pages at the content root.
func (p *Page) Dir() string {
	i := strings.LastIndexByte(p.Slug, '/')
	if i < 0 {
		return ""
	}
	return p.Slug[:i]
}

// RenderPage splits the front matter from source and renders the body.
// path is relative to the content directory and determines the slug.
// A missing title falls back to the first heading, then the file name.
func (e *Engine) RenderPage(path string, source []byte) (*Page, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter %s: %w", path, err)
	}

	html, heading, err := e.Render(body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	page := &Page{
		Path:         path,
		Slug:         strings.TrimSuffix(filepath.ToSlash(path), filepath.Ext(path)),
		Title:        strings.TrimSpace(meta.Title),
		Description:  strings.TrimSpace(meta.Description),
		SidebarLabel: strings.TrimSpace(meta.Sidebar.Label),
		//nolint:gosec // rendered by goldmark without unsafe HTML
		Body: template.HTML(html),
	}

	if meta.Sidebar.Order != nil {
		page.Order = *meta.Sidebar.Order
		page.HasOrder = true
	}

	if page.Title == "" {
		page.Title = heading
	}
	if page.Title == "" {
		page.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return page, nil
}
