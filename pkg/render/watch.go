package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdstrip/internal/logging"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// OnBuild is called after every rebuild, including the initial one.
	OnBuild func(*BuildResult, error)
}

// Watch builds the site, then rebuilds whenever files under the content
// directory change, until ctx is cancelled. Build errors are reported to
// OnBuild and logged; they do not stop the watch.
func (s *Site) Watch(ctx context.Context, opts WatchOptions) error {
	logger := logging.FromContext(ctx)

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Error("close file watcher", logging.FieldError, err)
		}
	}()

	contentDir := s.ContentDir()
	if err := addTree(watcher, contentDir); err != nil {
		return err
	}

	build := func() {
		result, err := s.Build(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Error("site build failed", logging.FieldError, err)
		}
		if opts.OnBuild != nil {
			opts.OnBuild(result, err)
		}
	}

	build()
	logger.Info("watching for changes", logging.FieldContent, contentDir)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}

			logger.Debug("content changed", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())

			// fsnotify does not watch recursively; new directories are added.
			if event.Has(fsnotify.Create) {
				if err := addTree(watcher, event.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
					logger.Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
				}
			}

			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", logging.FieldError, err)

		case <-timer.C:
			build()
		}
	}
}

// addTree watches root and every non-hidden directory below it. A root that
// is not a directory is ignored.
func addTree(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch content directory: %w", err)
	}
	return nil
}
