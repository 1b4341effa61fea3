package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/mdstrip/pkg/config"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "site.sidebar[0].label").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
	config.FormatDiff: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.addError("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !fsutil.ValidBackupMode(fsutil.BackupMode(cfg.Backups.Mode)) {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.Backups.Enabled && cfg.Backups.Mode == string(fsutil.BackupModeNone) {
		result.addWarning("backups", cfg.Backups.Mode, "backups are enabled but mode is none; no backups will be written")
	}

	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)
	validateSite(&cfg.Site, result)

	return result
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		result.addWarning("extensions", cfg.Extensions, "no Markdown extensions configured; defaults will be used")
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
}

func validateSite(site *config.SiteConfig, result *ValidationResult) {
	if site.ContentDir == "" {
		result.addWarning("site.content_dir", site.ContentDir, "no content directory; render is unavailable")
	}

	known := render.ExtensionNames()
	for i, name := range site.MarkdownExtensions {
		if !slices.Contains(known, strings.ToLower(strings.TrimSpace(name))) {
			result.addError(fmt.Sprintf("site.markdown_extensions[%d]", i), name,
				"unknown markdown extension %q; must be one of: %s", name, strings.Join(known, ", "))
		}
	}

	for i, link := range site.Social {
		if link.Href == "" {
			result.addError(fmt.Sprintf("site.social[%d].href", i), link.Href, "social link requires an href")
		}
	}

	seen := make(map[string]int)
	for i, group := range site.Sidebar {
		field := fmt.Sprintf("site.sidebar[%d]", i)

		if strings.TrimSpace(group.Label) == "" {
			result.addError(field+".label", group.Label, "sidebar group requires a label")
		}
		if strings.TrimSpace(group.Directory) == "" {
			result.addError(field+".directory", group.Directory, "sidebar group requires a directory")
			continue
		}

		dir := strings.Trim(filepath.ToSlash(group.Directory), "/")
		if prev, ok := seen[dir]; ok {
			result.addWarning(field+".directory", group.Directory,
				"directory %q is also used by site.sidebar[%d]", group.Directory, prev)
		}
		seen[dir] = i
	}

	if site.ContentDir != "" && site.OutDir != "" && isWithin(site.OutDir, site.ContentDir) {
		result.addWarning("site.out_dir", site.OutDir, "output directory is inside the content directory")
	}
}

// isWithin reports whether path equals or is below dir, lexically.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
