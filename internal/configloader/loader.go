// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered decoding,
// environment variable support, and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstrip/pkg/config"
)

// ConfigFilePermissions is the file mode for configuration files.
const ConfigFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// knownKeys are the top-level keys of a config file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = []string{"flavor", "ignore", "extensions", "backups", "site"}

// Load resolves the final configuration from all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDSTRIP_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdstrip.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdstrip/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		unknown, err := decodeFile(layer.path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		for _, key := range unknown {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown key %q; it will be ignored", layer.path, key))
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		errs := make([]error, 0, len(validation.Errors))
		for i := range validation.Errors {
			errs = append(errs, &validation.Errors[i])
		}
		return nil, errors.Join(errs...)
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// decodeFile decodes the YAML file at path onto cfg. Keys present in the
// file replace the corresponding values; absent keys are left untouched.
// Unknown top-level keys are returned.
func decodeFile(path string, cfg *config.Config) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(content, &keys); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := yaml.NewDecoder(bytes.NewReader(content)).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	var unknown []string
	for key := range keys {
		if !slices.Contains(knownKeys, key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)

	return unknown, nil
}

// WriteConfig writes a configuration with the standard header to path.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(config.Header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, ConfigFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
