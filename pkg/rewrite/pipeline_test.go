package rewrite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/mdast"
	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

const notes = `# Notes

See [intro](./gleam/intro.md) and [setup](../uncategorized/notes.md#setup).
Visit [the site](https://example.com/page.md) or read [the guide][guide].

![logo](image.png) [logo](image.png)

[guide]: guide.md
`

const notesRewritten = `# Notes

See [intro](./gleam/intro) and [setup](../uncategorized/notes#setup).
Visit [the site](https://example.com/page.md) or read [the guide][guide].

![logo](image.png) [logo](image.png)

[guide]: guide.md
`

func TestProcessContent(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline("gfm")

	res, err := p.ProcessContent(context.Background(), "notes.md", []byte(notes), rewrite.FileOptions{DryRun: true})
	require.NoError(t, err)

	require.Len(t, res.Rewrites, 3)

	assert.Equal(t, rewrite.LinkRewrite{
		Line: 3, Column: 13,
		Original: "./gleam/intro.md", Updated: "./gleam/intro",
		Style: mdast.RefStyleInline, Located: true,
	}, res.Rewrites[0])

	assert.Equal(t, "../uncategorized/notes#setup", res.Rewrites[1].Updated)
	assert.True(t, res.Rewrites[1].Located)

	// Reference definitions are reported but not rewritten.
	assert.Equal(t, "guide", res.Rewrites[2].Updated)
	assert.Equal(t, mdast.RefStyleReference, res.Rewrites[2].Style)
	assert.False(t, res.Rewrites[2].Located)
	assert.Equal(t, 1, res.Unlocated())

	assert.True(t, res.Modified)
	assert.Equal(t, notesRewritten, string(res.ModifiedContent))
	require.NotNil(t, res.Diff)
	assert.Equal(t, 1, res.Diff.Additions)
	assert.Equal(t, "changes pending", res.Summary())
}

func TestProcessContent_NoChanges(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline("commonmark")

	res, err := p.ProcessContent(context.Background(), "a.md", []byte("[x](https://x.io/a.md)\n"), rewrite.FileOptions{})
	require.NoError(t, err)

	assert.Empty(t, res.Rewrites)
	assert.False(t, res.Modified)
	assert.Nil(t, res.ModifiedContent)
	assert.Equal(t, "ok", res.Summary())
}

func TestProcessContent_Idempotent(t *testing.T) {
	t.Parallel()

	p := rewrite.NewPipeline("gfm")
	ctx := context.Background()

	first, err := p.ProcessContent(ctx, "a.md", []byte(notes), rewrite.FileOptions{})
	require.NoError(t, err)

	second, err := p.ProcessContent(ctx, "a.md", first.ModifiedContent, rewrite.FileOptions{})
	require.NoError(t, err)

	assert.False(t, second.Modified)
	assert.Equal(t, 1, second.Unlocated(), "reference link still reported")
}

func TestProcessContent_LeavesBlockContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "fenced code block",
			content: "Intro text.\n\n```md\n[x](./a.md)\n```\n\n[](./a.md)\n",
			want:    "Intro text.\n\n```md\n[x](./a.md)\n```\n\n[](./a)\n",
		},
		{
			name:    "fence info string",
			content: "```[x](./a.md)\ncode\n```\n\n[](./a.md)\n",
			want:    "```[x](./a.md)\ncode\n```\n\n[](./a)\n",
		},
		{
			name:    "indented code block",
			content: "Intro text.\n\n    [x](./a.md)\n\n[](./a.md)\n",
			want:    "Intro text.\n\n    [x](./a.md)\n\n[](./a)\n",
		},
		{
			name:    "html block",
			content: "<div>[x](./a.md)</div>\n\n[](./a.md)\n",
			want:    "<div>[x](./a.md)</div>\n\n[](./a)\n",
		},
		{
			name:    "html block with closing line",
			content: "<pre>\n[x](./a.md)\n</pre>\n\n[](./a.md)\n",
			want:    "<pre>\n[x](./a.md)\n</pre>\n\n[](./a)\n",
		},
		{
			name:    "image-only label",
			content: "```\n[![](./b.png)](./a.md)\n```\n\n[![](./b.png)](./a.md)\n",
			want:    "```\n[![](./b.png)](./a.md)\n```\n\n[![](./b.png)](./a)\n",
		},
	}

	p := rewrite.NewPipeline("gfm")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := p.ProcessContent(context.Background(), "a.md", []byte(tt.content), rewrite.FileOptions{})
			require.NoError(t, err)

			require.Len(t, res.Rewrites, 1)
			assert.True(t, res.Rewrites[0].Located)
			assert.Equal(t, "./a", res.Rewrites[0].Updated)
			assert.Equal(t, tt.want, string(res.ModifiedContent))
		})
	}
}

func TestProcessContent_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rewrite.NewPipeline("gfm").ProcessContent(ctx, "a.md", []byte(notes), rewrite.FileOptions{})
	require.ErrorIs(t, err, rewrite.ErrParseFailure)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(notes), 0o640))

	p := rewrite.NewPipeline("gfm")
	res, err := p.ProcessFile(context.Background(), path, rewrite.FileOptions{
		Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
	})
	require.NoError(t, err)

	assert.True(t, res.Written)
	assert.True(t, res.BackupCreated)
	assert.Nil(t, res.Diff)
	assert.Equal(t, "rewritten (backup created)", res.Summary())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notesRewritten, string(got))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, notes, string(backup))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())
}

func TestProcessFile_DryRunLeavesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(notes), 0o644))

	res, err := rewrite.NewPipeline("gfm").ProcessFile(context.Background(), path, rewrite.FileOptions{DryRun: true})
	require.NoError(t, err)

	assert.False(t, res.Written)
	require.NotNil(t, res.Diff)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notes, string(got))
}

func TestProcessFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := rewrite.NewPipeline("gfm").ProcessFile(context.Background(), filepath.Join(t.TempDir(), "x.md"), rewrite.FileOptions{})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
