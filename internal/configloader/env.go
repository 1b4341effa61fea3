package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdstrip/pkg/config"
)

// envVarPrefix is the prefix for all mdstrip environment variables.
const envVarPrefix = "MDSTRIP_"

// envMapping binds one MDSTRIP_* variable to the config field it overrides.
type envMapping struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(field, description string, set func(*config.Config, string)) envMapping {
	return envMapping{field, description, func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}}
}

func boolVar(field, description string, set func(*config.Config, bool)) envMapping {
	return envMapping{field, description, func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true/false/1/0, got %q", value)
		}
		set(cfg, b)
		return nil
	}}
}

func intVar(field, description string, set func(*config.Config, int)) envMapping {
	return envMapping{field, description, func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", value)
		}
		set(cfg, n)
		return nil
	}}
}

func listVar(field, description string, set func(*config.Config, []string)) envMapping {
	return envMapping{field, description, func(cfg *config.Config, value string) error {
		set(cfg, splitList(value))
		return nil
	}}
}

// envMappings is keyed by variable name without the prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR": stringVar("flavor", "Markdown flavor: commonmark or gfm",
		func(c *config.Config, v string) { c.Flavor = config.Flavor(v) }),
	"DRY_RUN": boolVar("dry_run", "Dry-run mode: true or false",
		func(c *config.Config, v bool) { c.DryRun = v }),
	"JOBS": intVar("jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config, v int) { c.Jobs = v }),
	"FORMAT": stringVar("format", "Output format: text, json, or diff",
		func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	"BACKUPS_ENABLED": boolVar("backups.enabled", "Back up files before rewriting: true or false",
		func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	"BACKUPS_MODE": stringVar("backups.mode", "Backup mode: sidecar or none",
		func(c *config.Config, v string) { c.Backups.Mode = v }),
	"IGNORE": listVar("ignore", "Comma-separated list of ignore patterns",
		func(c *config.Config, v []string) { c.Ignore = v }),
	"EXTENSIONS": listVar("extensions", "Comma-separated Markdown file extensions",
		func(c *config.Config, v []string) { c.Extensions = v }),
	"SITE_TITLE": stringVar("site.title", "Title of the rendered site",
		func(c *config.Config, v string) { c.Site.Title = v }),
	"CONTENT_DIR": stringVar("site.content_dir", "Directory holding the site pages",
		func(c *config.Config, v string) { c.Site.ContentDir = v }),
	"OUT_DIR": stringVar("site.out_dir", "Directory receiving the rendered site",
		func(c *config.Config, v string) { c.Site.OutDir = v }),
	"MARKDOWN_EXTENSIONS": listVar("site.markdown_extensions", "Comma-separated goldmark extensions",
		func(c *config.Config, v []string) { c.Site.MarkdownExtensions = v }),
}

// LoadFromEnv applies MDSTRIP_* overrides (e.g. MDSTRIP_FLAVOR) to cfg.
// Unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		value := getenv(envVarPrefix + suffix)
		if value == "" {
			continue
		}
		if err := mapping.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid %s%s: %w", envVarPrefix, suffix, err)
		}
	}

	return nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the variable overriding field, or "" if none does.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
