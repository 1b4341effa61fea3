package rewrite

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdstrip/internal/logging"
)

// Runner processes many files with a bounded worker pool.
type Runner struct {
	Pipeline *Pipeline
}

// NewRunner creates a Runner using pipeline.
func NewRunner(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and processes them concurrently. Outcomes are
// returned in path order regardless of completion order. Per-file errors
// are recorded in the outcome; only discovery failures and cancellation
// are returned as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.File)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldLinksRewritten, result.Stats.LinksRewritten,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts FileOptions) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}

		res, err := r.Pipeline.ProcessFile(ctx, path, opts)
		if err != nil {
			outcome.Error = err
			logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		} else {
			outcome.Result = res
			logger.Debug("file processed", logging.FieldPath, path, "status", res.Summary())
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
