package config

// Header is written above generated configuration files.
const Header = `# mdstrip configuration
#
# flavor: markdown flavor used when rewriting sources (commonmark, gfm)
# ignore: glob patterns of files to skip
# backups.mode: sidecar writes <file>.mdstrip.bak before rewriting
# site.sidebar: one group per directory under site.content_dir`

// DefaultTemplate returns the YAML written by "mdstrip init".
func DefaultTemplate() ([]byte, error) {
	return NewConfig().ToYAMLWithHeader(Header)
}
