// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run options.
	FieldFlavor = "flavor"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Rewrite statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldLinksRewritten  = "links_rewritten"
	FieldLinksUnlocated  = "links_unlocated"

	// Site rendering.
	FieldPages   = "pages"
	FieldContent = "content_dir"
	FieldEvent   = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
