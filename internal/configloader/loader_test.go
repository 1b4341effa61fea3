package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdstrip/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if result.Config.Site.Title != "Field Notes" {
		t.Errorf("expected title %q, got %q", "Field Notes", result.Config.Site.Title)
	}
	if len(result.Config.Site.Sidebar) != 2 {
		t.Errorf("expected 2 sidebar groups, got %d", len(result.Config.Site.Sidebar))
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), `
flavor: commonmark
backups:
  enabled: true
site:
  title: Lab Notebook
  sidebar:
    - label: Rust
      directory: rust
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor %q, got %q", config.FlavorCommonMark, cfg.Flavor)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Mode != "sidecar" {
		t.Errorf("expected enabled sidecar backups, got %+v", cfg.Backups)
	}
	if cfg.Site.Title != "Lab Notebook" {
		t.Errorf("expected title %q, got %q", "Lab Notebook", cfg.Site.Title)
	}
	if len(cfg.Site.Sidebar) != 1 || cfg.Site.Sidebar[0].Directory != "rust" {
		t.Errorf("expected sidebar to be replaced, got %+v", cfg.Site.Sidebar)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Site.ContentDir != "src/content/docs" {
		t.Errorf("expected default content dir, got %q", cfg.Site.ContentDir)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfigFile(t, filepath.Join(root, ".mdstrip.yaml"), "flavor: commonmark\n")

	nested := filepath.Join(root, "docs", "gleam")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.Project != filepath.Join(root, ".mdstrip.yaml") {
		t.Errorf("expected project config at root, got %q", result.Paths.Project)
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor %q, got %q", config.FlavorCommonMark, result.Config.Flavor)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfigFile(t, filepath.Join(outer, ".mdstrip.yml"), "flavor: commonmark\n")

	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at VCS root, found %q", path)
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "flavor: commonmark\nignore: [\"drafts/**\"]\n")

	explicit := filepath.Join(tmpDir, "custom.yml")
	writeConfigFile(t, explicit, "flavor: gfm\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "drafts/**" {
		t.Errorf("expected project ignore to survive, got %v", result.Config.Ignore)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("expected project then explicit, got %v", result.LoadedFrom)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfigFile(t, filepath.Join(xdg, "mdstrip", "config.yaml"), "site:\n  out_dir: public\n")

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "site:\n  title: Project\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: tmpDir, IgnoreEnv: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Site.OutDir != "public" {
		t.Errorf("expected out_dir from user config, got %q", result.Config.Site.OutDir)
	}
	if result.Config.Site.Title != "Project" {
		t.Errorf("expected title from project config, got %q", result.Config.Site.Title)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected 2 loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_EnvAndCLIPrecedence(t *testing.T) {
	t.Setenv("MDSTRIP_FLAVOR", "commonmark")
	t.Setenv("MDSTRIP_JOBS", "3")
	t.Setenv("MDSTRIP_OUT_DIR", "from-env")

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "flavor: gfm\n")

	cli := &config.Config{Jobs: 8, DryRun: true}

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:       tmpDir,
		IgnoreUserConfig: true,
		CLIConfig:        cli,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Flavor != config.FlavorCommonMark {
		t.Errorf("expected env flavor to override file, got %q", cfg.Flavor)
	}
	if cfg.Jobs != 8 {
		t.Errorf("expected CLI jobs to override env, got %d", cfg.Jobs)
	}
	if !cfg.DryRun {
		t.Error("expected dry run from CLI")
	}
	if cfg.Site.OutDir != "from-env" {
		t.Errorf("expected out_dir from env, got %q", cfg.Site.OutDir)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), `
flavor: kramdown
backups:
  mode: cloud
`)

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "flavor") || !strings.Contains(err.Error(), "backups.mode") {
		t.Errorf("expected both errors reported, got %v", err)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "flavor: [gfm\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.Contains(err.Error(), "project config") {
		t.Errorf("expected error to name the layer, got %v", err)
	}
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "rules:\n  MD001: false\nflavor: gfm\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown key "rules"`) {
		t.Errorf("expected unknown key warning, got %v", result.Warnings)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfigFile(t, filepath.Join(tmpDir, ".mdstrip.yml"), "# nothing yet\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected default flavor, got %q", result.Config.Flavor)
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".mdstrip.yml")

	if err := WriteConfig(config.NewConfig(), path); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if result.Config.Site.Social[0].Href != "https://github.com/mooreryan/fieldnotes" {
		t.Errorf("unexpected social link %+v", result.Config.Site.Social)
	}
}
