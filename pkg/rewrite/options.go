// Package rewrite strips ".md" from relative link targets in Markdown
// sources on disk. Each file is parsed into an mdast tree, the link
// rewrites are computed with linkstrip, and only the removed bytes are
// edited out of the source.
package rewrite

import "github.com/yaklabco/mdstrip/pkg/fsutil"

// Options controls a multi-file rewrite run.
type Options struct {
	// Paths are files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns.
	// Defaults to the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as Markdown.
	// Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to
	// WorkingDir. "**" matches across path separators.
	ExcludeGlobs []string

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	File FileOptions
}

// FileOptions controls how a single file is processed.
type FileOptions struct {
	// DryRun computes rewrites and a diff without writing.
	DryRun bool

	// Backup configures backups taken before writing.
	Backup fsutil.BackupConfig
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
