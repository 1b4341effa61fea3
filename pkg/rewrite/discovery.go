package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files under opts.Paths and returns their absolute
// paths, sorted and de-duplicated. Hidden files and directories found while
// walking are skipped; explicitly named files are not.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts.effectiveExtensions(), opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matchFile(absPath) {
				add(absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, entry fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if walkErr != nil {
				if errors.Is(walkErr, fs.ErrPermission) {
					return nil
				}
				return walkErr
			}

			hidden := path != absPath && strings.HasPrefix(entry.Name(), ".")

			if entry.IsDir() {
				if hidden || m.excluded(path) {
					return filepath.SkipDir
				}
				return nil
			}

			if !hidden && entry.Type().IsRegular() && m.matchFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory %s: %w", input, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// matcher decides which paths are Markdown files to process.
type matcher struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
}

func newMatcher(workDir string, extensions, patterns []string) (*matcher, error) {
	m := &matcher{workDir: workDir}

	for _, ext := range extensions {
		m.extensions = append(m.extensions, strings.ToLower(ext))
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		m.excludes = append(m.excludes, g)
	}

	return m, nil
}

func (m *matcher) matchFile(path string) bool {
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	return !m.excluded(path)
}

// excluded matches the path relative to the working directory, and its
// base name, against the exclude patterns.
func (m *matcher) excluded(path string) bool {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, g := range m.excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
