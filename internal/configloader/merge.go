package configloader

import "github.com/yaklabco/mdstrip/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true in override is applied
//
// Config files are decoded onto the accumulated configuration instead, so
// they can set false and empty values; merge serves the CLI layer where
// unset flags are zero.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	mergeSite(&result.Site, override.Site)

	return result
}

func mergeSite(base *config.SiteConfig, override config.SiteConfig) {
	if override.Title != "" {
		base.Title = override.Title
	}
	if override.ContentDir != "" {
		base.ContentDir = override.ContentDir
	}
	if override.OutDir != "" {
		base.OutDir = override.OutDir
	}
	if override.Social != nil {
		base.Social = override.Social
	}
	if override.Sidebar != nil {
		base.Sidebar = override.Sidebar
	}
	if override.MarkdownExtensions != nil {
		base.MarkdownExtensions = override.MarkdownExtensions
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
