// Package config defines the configuration types for mdstrip.
// These are pure data structures; loading and merging live in
// internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies the output format for rewrite reports.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// BackupsConfig controls backup behavior when rewriting sources.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// SocialLink is an icon link shown in the site header.
type SocialLink struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// SidebarGroup is a sidebar section autogenerated from the pages in
// Directory, relative to the content directory.
type SidebarGroup struct {
	Label     string `yaml:"label"`
	Directory string `yaml:"directory"`
}

// SiteConfig describes the rendered documentation site.
type SiteConfig struct {
	Title string `yaml:"title"`

	Social []SocialLink `yaml:"social"`

	Sidebar []SidebarGroup `yaml:"sidebar"`

	// ContentDir holds the Markdown pages.
	ContentDir string `yaml:"content_dir"`

	// OutDir receives the rendered HTML.
	OutDir string `yaml:"out_dir"`

	// MarkdownExtensions lists the goldmark extensions enabled for
	// rendering: gfm, table, strikethrough, linkify, tasklist, footnote,
	// definition.
	MarkdownExtensions []string `yaml:"markdown_extensions"`
}

// Config is the root configuration structure.
type Config struct {
	// Flavor is the Markdown flavor used when rewriting sources.
	Flavor Flavor `yaml:"flavor"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Extensions are the file extensions treated as Markdown.
	Extensions []string `yaml:"extensions"`

	Backups BackupsConfig `yaml:"backups"`

	Site SiteConfig `yaml:"site"`

	// CLI-level options (not persisted to config files).

	// DryRun reports changes without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of parallel workers; 0 means runtime.NumCPU().
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with the defaults of the Field Notes site.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorGFM,
		Extensions: []string{".md", ".markdown"},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Site: SiteConfig{
			Title: "Field Notes",
			Social: []SocialLink{
				{Icon: "github", Label: "GitHub", Href: "https://github.com/mooreryan/fieldnotes"},
			},
			Sidebar: []SidebarGroup{
				{Label: "Gleam", Directory: "gleam"},
				{Label: "Uncategorized", Directory: "uncategorized"},
			},
			ContentDir:         "src/content/docs",
			OutDir:             "dist",
			MarkdownExtensions: []string{"gfm"},
		},
		Format: FormatText,
	}
}
