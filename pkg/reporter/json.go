package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

// jsonVersion is the schema version of the JSON report.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string        `json:"path"`
	Rewrites   []JSONRewrite `json:"rewrites"`
	Written    bool          `json:"written,omitempty"`
	Skipped    bool          `json:"skipped,omitempty"`
	SkipReason string        `json:"skipReason,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// JSONRewrite represents a single link rewrite.
type JSONRewrite struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Original string `json:"original"`
	Updated  string `json:"updated"`
	Style    string `json:"style"`
	Located  bool   `json:"located"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesWithRewrites int `json:"filesWithRewrites"`
	FilesModified     int `json:"filesModified"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	LinksRewritten    int `json:"linksRewritten"`
	LinksUnlocated    int `json:"linksUnlocated"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *rewrite.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.LinksRewritten + output.Summary.LinksUnlocated, nil
}

func (r *JSONReporter) buildOutput(result *rewrite.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:     displayPath(file.Path, r.opts.WorkingDir),
			Rewrites: make([]JSONRewrite, 0),
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			entry.Written = res.Written
			entry.Skipped = res.Skipped
			entry.SkipReason = res.SkipReason

			for _, rw := range res.Rewrites {
				entry.Rewrites = append(entry.Rewrites, JSONRewrite{
					Line:     rw.Line,
					Column:   rw.Column,
					Original: rw.Original,
					Updated:  rw.Updated,
					Style:    rw.Style.String(),
					Located:  rw.Located,
				})
			}
		}

		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesWithRewrites: stats.FilesWithRewrites,
		FilesModified:     stats.FilesModified,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		LinksRewritten:    stats.LinksRewritten,
		LinksUnlocated:    stats.LinksUnlocated,
	}

	return output
}
