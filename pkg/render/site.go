package render

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdstrip/internal/logging"
	"github.com/yaklabco/mdstrip/pkg/config"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// ErrNoContentDir is returned when the site has no content directory.
var ErrNoContentDir = errors.New("content directory not configured")

// Site renders a directory of Markdown pages into an HTML site.
type Site struct {
	Config config.SiteConfig

	// WorkingDir resolves relative content and output directories.
	WorkingDir string

	// Extensions are the file extensions treated as pages.
	// Defaults to rewrite.DefaultExtensions().
	Extensions []string

	engine *Engine
}

// BuildResult summarizes a site build.
type BuildResult struct {
	// Pages are the rendered pages in slug order.
	Pages []*Page

	// Written counts output files whose content changed.
	Written int
}

// NewSite creates a Site, building the rendering engine from the
// configured Markdown extensions.
func NewSite(cfg config.SiteConfig, workingDir string) (*Site, error) {
	if cfg.ContentDir == "" {
		return nil, ErrNoContentDir
	}

	engine, err := NewEngine(cfg.MarkdownExtensions)
	if err != nil {
		return nil, err
	}

	return &Site{
		Config:     cfg,
		WorkingDir: workingDir,
		engine:     engine,
	}, nil
}

// ContentDir returns the absolute content directory.
func (s *Site) ContentDir() string {
	return s.resolve(s.Config.ContentDir)
}

// OutDir returns the absolute output directory.
func (s *Site) OutDir() string {
	return s.resolve(s.Config.OutDir)
}

func (s *Site) resolve(dir string) string {
	if filepath.IsAbs(dir) || s.WorkingDir == "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(s.WorkingDir, dir)
}

// Build renders every page under the content directory and writes each to
// <out>/<slug>.html. Files whose rendered output is unchanged are left
// alone.
func (s *Site) Build(ctx context.Context) (*BuildResult, error) {
	logger := logging.FromContext(ctx)
	contentDir := s.ContentDir()
	outDir := s.OutDir()

	files, err := rewrite.Discover(ctx, rewrite.Options{
		Paths:      []string{contentDir},
		WorkingDir: contentDir,
		Extensions: s.Extensions,
	})
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}

	pages := make([]*Page, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled: %w", err)
		}

		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}

		rel, err := filepath.Rel(contentDir, file)
		if err != nil {
			return nil, fmt.Errorf("relative page path: %w", err)
		}

		page, err := s.engine.RenderPage(rel, source)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	slices.SortFunc(pages, func(a, b *Page) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	groups := s.sidebar(pages)
	result := &BuildResult{Pages: pages}

	for _, page := range pages {
		var buf bytes.Buffer
		data := layoutData{
			Site:    s.Config,
			Page:    page,
			Sidebar: sidebarFor(groups, page),
			Root:    rootPrefix(page.Slug),
		}
		if err := layout.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("execute layout for %s: %w", page.Path, err)
		}

		target := filepath.Join(outDir, filepath.FromSlash(page.Slug)+".html")
		written, err := fsutil.WriteAtomicIfChanged(ctx, target, buf.Bytes(), 0)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", target, err)
		}
		if written {
			result.Written++
			logger.Debug("wrote page", logging.FieldPath, target)
		}
	}

	logger.Info("site built",
		logging.FieldPages, len(pages),
		logging.FieldOutput, outDir,
		logging.FieldFilesModified, result.Written,
	)

	return result, nil
}

// sidebarGroup is one configured sidebar section with its pages.
type sidebarGroup struct {
	label string
	pages []*Page
}

// sidebar groups pages by the configured directories. A page belongs to a
// group when its slug is below the group's directory. Pages are ordered by
// sidebar order, with ordered pages first, then by label.
func (s *Site) sidebar(pages []*Page) []sidebarGroup {
	groups := make([]sidebarGroup, 0, len(s.Config.Sidebar))

	for _, cfg := range s.Config.Sidebar {
		dir := strings.Trim(filepath.ToSlash(cfg.Directory), "/")
		group := sidebarGroup{label: cfg.Label}

		for _, page := range pages {
			if dir == "" || strings.HasPrefix(page.Slug, dir+"/") {
				group.pages = append(group.pages, page)
			}
		}

		slices.SortStableFunc(group.pages, comparePages)
		groups = append(groups, group)
	}

	return groups
}

func comparePages(a, b *Page) int {
	switch {
	case a.HasOrder && !b.HasOrder:
		return -1
	case !a.HasOrder && b.HasOrder:
		return 1
	case a.HasOrder && b.HasOrder && a.Order != b.Order:
		return cmp.Compare(a.Order, b.Order)
	}
	return cmp.Or(
		strings.Compare(strings.ToLower(a.Label()), strings.ToLower(b.Label())),
		strings.Compare(a.Slug, b.Slug),
	)
}

// sidebarFor builds the sidebar view with current marking it for page.
func sidebarFor(groups []sidebarGroup, current *Page) []sidebarView {
	views := make([]sidebarView, 0, len(groups))
	for _, group := range groups {
		view := sidebarView{Label: group.label}
		for _, page := range group.pages {
			view.Entries = append(view.Entries, sidebarEntry{
				Label:   page.Label(),
				Slug:    page.Slug,
				Current: page == current,
			})
		}
		views = append(views, view)
	}
	return views
}
