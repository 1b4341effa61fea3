package configloader

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yaklabco/mdstrip/pkg/config"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, fakeEnv(map[string]string{
		"MDSTRIP_FLAVOR":              "commonmark",
		"MDSTRIP_DRY_RUN":             "1",
		"MDSTRIP_JOBS":                "4",
		"MDSTRIP_BACKUPS_ENABLED":     "true",
		"MDSTRIP_IGNORE":              " drafts/** , ,vendor/**",
		"MDSTRIP_SITE_TITLE":          "Lab",
		"MDSTRIP_MARKDOWN_EXTENSIONS": "gfm,footnote",
	}))
	if err != nil {
		t.Fatalf("loadFromEnv() error = %v", err)
	}

	if cfg.Flavor != config.FlavorCommonMark {
		t.Errorf("flavor = %q", cfg.Flavor)
	}
	if !cfg.DryRun || !cfg.Backups.Enabled {
		t.Errorf("expected dry run and backups enabled, got %v %v", cfg.DryRun, cfg.Backups.Enabled)
	}
	if cfg.Jobs != 4 {
		t.Errorf("jobs = %d", cfg.Jobs)
	}
	if !reflect.DeepEqual(cfg.Ignore, []string{"drafts/**", "vendor/**"}) {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if cfg.Site.Title != "Lab" {
		t.Errorf("title = %q", cfg.Site.Title)
	}
	if !reflect.DeepEqual(cfg.Site.MarkdownExtensions, []string{"gfm", "footnote"}) {
		t.Errorf("markdown extensions = %v", cfg.Site.MarkdownExtensions)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"MDSTRIP_DRY_RUN": "maybe",
		"MDSTRIP_JOBS":    "many",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			err := loadFromEnv(config.NewConfig(), fakeEnv(map[string]string{key: value}))
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Errorf("expected error naming %s, got %v", key, err)
			}
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("site.content_dir"); got != "MDSTRIP_CONTENT_DIR" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("rules"); got != "" {
		t.Errorf("expected empty name for unknown field, got %q", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Errorf("expected %d vars, got %d", len(envMappings), len(vars))
	}
	if _, ok := vars["MDSTRIP_BACKUPS_MODE"]; !ok {
		t.Error("missing MDSTRIP_BACKUPS_MODE")
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"a"}

	override := &config.Config{
		Format: config.FormatJSON,
		Site:   config.SiteConfig{OutDir: "public"},
	}

	merged := MergeAll(base, override)

	if merged.Format != config.FormatJSON {
		t.Errorf("format = %q", merged.Format)
	}
	if merged.Site.OutDir != "public" || merged.Site.Title != "Field Notes" {
		t.Errorf("site = %+v", merged.Site)
	}
	if !reflect.DeepEqual(merged.Ignore, []string{"a"}) {
		t.Errorf("ignore = %v", merged.Ignore)
	}
	if base.Format != config.FormatText {
		t.Error("merge modified base")
	}
}
