package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/internal/cli"
	"github.com/yaklabco/wikispan/pkg/analysis"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/spans"
)

const samplePage = "{{Infobox|name=[[Page]]}}\n<!-- note -->\n"

// execute runs the CLI with an empty explicit config so that no user or
// project file changes the outcome.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("jobs: 2\n"), 0o600))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test-version", Commit: "abc123", Date: "today"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeBatch(t *testing.T, yaml string) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "edits.yaml", yaml)
}

func TestIntegration_ScanText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.wiki", samplePage)
	writeFile(t, dir, "notes.txt", "{{ignored}}")

	out, err := execute(t, "", "scan", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "a.wiki (3 spans)")
	assert.Contains(t, out, "1:1  Template        Infobox")
	assert.Contains(t, out, "1:16  WikiLink        Page  [[Page]]")
	assert.Contains(t, out, "2:1  Comment")
	assert.NotContains(t, out, "ignored")
	assert.Contains(t, out, "3 spans (1 Template, 1 WikiLink, 1 Comment) in 1 file")
}

func TestIntegration_ScanJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.wiki", samplePage)
	writeFile(t, dir, "b.mediawiki", "{{#if:x|{{{1}}}}}")

	out, err := execute(t, "", "scan", "--format", "json", dir)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Totals.Files)
	assert.Equal(t, 5, report.Totals.Spans)
	require.Len(t, report.ByFile, 2)
	assert.Len(t, report.ByFile[0].Digest, 12)
}

func TestIntegration_ScanCategoryFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.wiki", samplePage)

	out, err := execute(t, "", "scan", "--format", "json", "--category", "wikilink", path)
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Spans, 1)
	assert.Equal(t, spans.WikiLink, report.Spans[0].Category)
	assert.Equal(t, "Page", report.Spans[0].Label)
}

func TestIntegration_ScanStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "{{a}}<ref>x</ref>", "scan", "--format", "json", "-")
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Spans, 2)
	assert.Equal(t, "-", report.Spans[0].FilePath)
	assert.Equal(t, spans.ExtensionTag, report.Spans[1].Category)
	assert.Equal(t, "ref", report.Spans[1].Label)
}

func TestIntegration_ScanSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.wiki", samplePage)

	out, err := execute(t, "", "scan", "--format", "summary", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Categories")
	assert.Contains(t, out, "Total: 3 spans")
}

func TestIntegration_ScanErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown format", args: []string{"scan", "--format", "xml"}, want: cli.ExitInvalidUsage},
		{name: "unknown flag", args: []string{"scan", "--nope"}, want: cli.ExitInvalidUsage},
		{name: "unknown category", args: []string{"scan", "--category", "Heading"}, want: cli.ExitConfigError},
		{name: "missing path", args: []string{"scan", "/does/not/exist.wiki"}, want: cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), err.Error())
		})
	}
}

func TestIntegration_Shadow(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.wiki", "a{{b}}c<!--d-->[[e]]")

	out, err := execute(t, "", "shadow", path)
	require.NoError(t, err)
	assert.Equal(t, "a_____c        _____", out)

	out, err = execute(t, "", "shadow", "--category", "Comment", path)
	require.NoError(t, err)
	assert.Equal(t, "a{{b}}c        [[e]]", out)

	out, err = execute(t, "x{{y}}", "shadow")
	require.NoError(t, err)
	assert.Equal(t, "x_____", out)
}

func TestIntegration_EditPrint(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.wiki", "{{t|a|b}}")
	batch := writeBatch(t, "edits:\n  - start: 2\n    stop: 3\n    text: x\n")

	out, err := execute(t, "", "edit", path, "--edits", batch)
	require.NoError(t, err)
	assert.Equal(t, "{{x|a|b}}", out)
	assert.Equal(t, "{{t|a|b}}", readFile(t, path), "file is untouched without --write")
}

func TestIntegration_EditBatchFromStdin(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "page.txt", "abc")

	out, err := execute(t, "edits:\n  - start: 3\n    stop: 3\n    text: '{{d}}'\n", "edit", path, "--edits", "-")
	require.NoError(t, err)
	assert.Equal(t, "abc{{d}}", out)
}

func TestIntegration_EditDryRun(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.wiki", "{{t|a|b}}\n")
	batch := writeBatch(t, "edits:\n  - start: 2\n    stop: 3\n    text: x\n")

	out, err := execute(t, "", "edit", path, "--edits", batch, "--dry-run", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "-{{t|a|b}}\n")
	assert.Contains(t, out, "+{{x|a|b}}\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
	assert.Equal(t, "{{t|a|b}}\n", readFile(t, path))
}

func TestIntegration_EditWrite(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.wiki", "{{t|a|b}}")
	batch := writeBatch(t, "edits:\n  - start: 4\n    stop: 5\n  - start: 2\n    stop: 3\n    text: x\n")

	out, err := execute(t, "", "edit", path, "--edits", batch, "--write", "--backup")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "{{x||b}}", readFile(t, path))
	assert.Equal(t, "{{t|a|b}}", readFile(t, fsutil.BackupPath(path)))
}

func TestIntegration_EditErrors(t *testing.T) {
	t.Parallel()

	overlapping := "edits:\n  - start: 0\n    stop: 3\n  - start: 2\n    stop: 5\n"

	tests := []struct {
		name  string
		batch string
		extra []string
		want  int
	}{
		{name: "overlap", batch: overlapping, want: cli.ExitInvalidUsage},
		{name: "out of range", batch: "edits:\n  - start: 0\n    stop: 100\n", want: cli.ExitInvalidUsage},
		{name: "unknown field", batch: "edits:\n  - begin: 0\n", want: cli.ExitInvalidUsage},
		{name: "no file", batch: overlapping, extra: []string{"--edits"}, want: cli.ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "a.wiki", "abcdefg")
			args := []string{"edit", path, "--edits", writeBatch(t, tt.batch)}
			if tt.extra != nil {
				args = append([]string{"edit"}, tt.extra...)
			}
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), err.Error())
			assert.Equal(t, "abcdefg", readFile(t, path))
		})
	}
}

func TestIntegration_EditLenient(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.wiki", "abcdefg")
	batch := writeBatch(t, "edits:\n  - start: 0\n    stop: 3\n  - start: 2\n    stop: 5\n")

	out, err := execute(t, "", "edit", path, "--edits", batch, "--lenient")
	require.NoError(t, err)
	assert.Equal(t, "fg", out)
}

func TestIntegration_RenameTemplate(t *testing.T) {
	t.Parallel()

	const page = "{{cite web|url={{Cite_web}}}} {{ Template:cite web }} {{cite news}}\n"

	t.Run("dry run by default", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "a.wiki", page)
		out, err := execute(t, "", "rename-template", "Cite web", "Cite news", path)
		require.NoError(t, err)
		assert.Contains(t, out, "-"+page)
		assert.Contains(t, out, "+{{Cite news|url={{Cite news}}}} {{ Cite news }} {{cite news}}\n")
		assert.Equal(t, page, readFile(t, path))
	})

	t.Run("write", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "a.wiki", page)
		other := writeFile(t, dir, "b.wiki", "{{other}}")

		_, err := execute(t, "", "rename-template", "cite_web", "Cite news", "--write", dir)
		require.NoError(t, err)
		assert.Equal(t, "{{Cite news|url={{Cite news}}}} {{ Cite news }} {{cite news}}\n", readFile(t, path))
		assert.Equal(t, "{{other}}", readFile(t, other))
	})

	t.Run("markup in new name", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "rename-template", "a", "{{b}}")
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wikispan.yml")

	_, err := execute(t, "", "init", "--output", path, "--full")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, path), "parsable_tags")

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "abc123")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Span categories:")
	assert.Contains(t, out, "ParserFunction")
	assert.Contains(t, out, "rename-template")
}
