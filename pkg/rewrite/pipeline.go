package rewrite

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdstrip/internal/logging"
	"github.com/yaklabco/mdstrip/pkg/fix"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/linkstrip"
	"github.com/yaklabco/mdstrip/pkg/mdast"
	"github.com/yaklabco/mdstrip/pkg/parser/goldmark"
)

// Pipeline error types for categorization.
var (
	// ErrParseFailure indicates the source could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrEditFailure indicates the computed edits were invalid.
	ErrEditFailure = errors.New("edit failure")

	// ErrWriteFailure indicates the rewritten file could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Pipeline rewrites a single file.
type Pipeline struct {
	Parser *goldmark.Parser
}

// NewPipeline creates a pipeline parsing with the given flavor.
func NewPipeline(flavor string) *Pipeline {
	return &Pipeline{Parser: goldmark.New(flavor)}
}

// ProcessFile runs the rewrite for one file:
//  1. Read and hash the file.
//  2. Parse it and apply linkstrip to the tree.
//  3. Turn each located rewrite into a deletion of the ".md" bytes.
//  4. In dry-run mode, attach a diff and stop.
//  5. Skip the file if it changed on disk meanwhile.
//  6. Back it up if enabled, then write it atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts FileOptions) (*FileResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		logging.FromContext(ctx).Warn("skipping file", logging.FieldPath, path, "reason", result.SkipReason)
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent computes the rewrites for in-memory content without any
// file I/O. In dry-run mode the result carries a diff.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, opts FileOptions) (*FileResult, error) {
	snapshot, err := p.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result := &FileResult{Path: path}
	builder := fix.NewEditBuilder()

	for _, rw := range linkstrip.Apply(snapshot.Root) {
		attrs := rw.Node.Inline.Link
		lr := LinkRewrite{
			Original: rw.Original,
			Updated:  rw.Updated,
			Style:    attrs.ReferenceStyle,
		}

		pos := mdast.Position{}
		switch {
		case attrs.DestinationRange.Valid():
			start := attrs.DestinationRange.StartOffset + rw.RemovedAt()
			builder.Delete(start, start+rw.RemovedLen())
			lr.Located = true
			pos = rw.Node.PositionOf(attrs.DestinationRange.StartOffset)
		case rw.Node.Range.Valid():
			pos = rw.Node.PositionOf(rw.Node.Range.StartOffset)
		}
		lr.Line, lr.Column = pos.Line, pos.Column

		result.Rewrites = append(result.Rewrites, lr)
	}

	if builder.Len() == 0 {
		return result, nil
	}

	edits, err := fix.PrepareEdits(builder.Edits, len(snapshot.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEditFailure, path, err)
	}

	result.ModifiedContent = fix.ApplyEdits(snapshot.Content, edits)
	result.Modified = true

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, snapshot.Content, result.ModifiedContent)
	}

	return result, nil
}
