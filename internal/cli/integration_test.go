package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstrip/internal/cli"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
)

const notes = "# Notes\n\nSee [intro](./gleam/intro.md) and [setup](../misc/setup.md#install).\n" +
	"Also [the site](https://example.com/page.md).\n"

const notesStripped = "# Notes\n\nSee [intro](./gleam/intro) and [setup](../misc/setup#install).\n" +
	"Also [the site](https://example.com/page.md).\n"

// execute runs the root command with an isolated config file and returns
// stdout and the command error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "mdstrip.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: gfm\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeNotes(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(notes), 0o644))
	return path
}

func TestIntegration_Links(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	out, err := execute(t, "links", path)
	require.NoError(t, err)

	assert.Contains(t, out, "3:13")
	assert.Contains(t, out, "./gleam/intro.md")
	assert.Contains(t, out, "../misc/setup#install")
	assert.NotContains(t, out, "https://example.com/page")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notes, string(content), "links must not modify files")
}

func TestIntegration_LinksCheck(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	_, err := execute(t, "links", "--check", path)
	require.ErrorIs(t, err, cli.ErrLinksFound)
	assert.Equal(t, cli.ExitLinksFound, cli.ExitCode(err))

	clean := filepath.Join(t.TempDir(), "clean.md")
	require.NoError(t, os.WriteFile(clean, []byte(notesStripped), 0o644))

	_, err = execute(t, "links", "--check", clean)
	require.NoError(t, err)
}

func TestIntegration_LinksJSON(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	out, err := execute(t, "links", "--format", "json", path)
	require.NoError(t, err)

	var report struct {
		Version string `json:"version"`
		Files   []struct {
			Rewrites []struct {
				Line     int    `json:"line"`
				Original string `json:"original"`
				Updated  string `json:"updated"`
			} `json:"rewrites"`
		} `json:"files"`
		Summary struct {
			LinksRewritten int `json:"linksRewritten"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "1.0.0", report.Version)
	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].Rewrites, 2)
	assert.Equal(t, "./gleam/intro", report.Files[0].Rewrites[0].Updated)
	assert.Equal(t, 2, report.Summary.LinksRewritten)
}

func TestIntegration_LinksDiff(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	out, err := execute(t, "links", "--format", "diff", path)
	require.NoError(t, err)

	assert.Contains(t, out, "-See [intro](./gleam/intro.md)")
	assert.Contains(t, out, "+See [intro](./gleam/intro)")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "links", "--format", "sarif", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Rewrite(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	_, err := execute(t, "rewrite", "--backup", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notesStripped, string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, notes, string(backup))

	// A second run has nothing left to change.
	_, err = execute(t, "links", "--check", path)
	require.NoError(t, err)
}

func TestIntegration_RewriteDryRun(t *testing.T) {
	t.Parallel()

	path := writeNotes(t)

	_, err := execute(t, "rewrite", "--dry-run", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, notes, string(content))
}

func TestIntegration_RewriteIgnore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kept := filepath.Join(dir, "drafts", "wip.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(kept), 0o755))
	require.NoError(t, os.WriteFile(kept, []byte(notes), 0o644))

	_, err := execute(t, "rewrite", "--ignore", "**/drafts/**", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(kept)
	require.NoError(t, err)
	assert.Equal(t, notes, string(content))
}

func TestIntegration_BadConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("flavor: kramdown\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgFile, "links", t.TempDir()})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := filepath.Join(dir, "docs")
	out := filepath.Join(dir, "site")

	require.NoError(t, os.MkdirAll(filepath.Join(content, "gleam"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "gleam", "intro.md"),
		[]byte("---\ntitle: Intro\n---\nNext: [types](./types.md#records)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(content, "gleam", "types.md"), []byte("# Types\n"), 0o644))

	stdout, err := execute(t, "render", "--content", content, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rendered 2 pages")

	f, err := os.Open(filepath.Join(out, "gleam", "intro.html"))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	href, ok := doc.Find("main a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "./types#records", href)
	assert.True(t, strings.HasPrefix(doc.Find("title").Text(), "Intro"))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), ".mdstrip.yml")

	_, err := execute(t, "init", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdstrip configuration")
	assert.Contains(t, string(content), "title: Field Notes")

	// Non-interactive input without --force refuses to overwrite.
	_, err = execute(t, "init", "--output", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "init", "--output", target, "--force")
	require.NoError(t, err)
}
