package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/pkg/analysis"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/reporter"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func outcome(path, text string) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   path,
		Digest: fsutil.Sum([]byte(text)),
		Root:   wikitext.Parse(text),
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		outcome("/w/b.wiki", "{{t}}\n[[Link|x]]"),
		outcome("/w/a.wiki", "{{x}}"),
		{Path: "/w/c.wiki", Error: errors.New("boom")},
	}}
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		wantErr bool
	}{
		{name: "text reporter", format: config.FormatText},
		{name: "table reporter", format: config.FormatTable},
		{name: "json reporter", format: config.FormatJSON},
		{name: "summary reporter", format: config.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{
		Format:      config.FormatText,
		ShowSummary: true,
		WorkingDir:  "/w",
	}, sampleResult())

	assert.Equal(t, 3, count)

	aHeader := strings.Index(out, "a.wiki (1 span)")
	bHeader := strings.Index(out, "b.wiki (2 spans)")
	require.NotEqual(t, -1, aHeader)
	require.NotEqual(t, -1, bHeader)
	assert.Less(t, aHeader, bHeader, "files are listed alphabetically")

	assert.Contains(t, out, "  1:1  Template        x  {{x}}\n")
	assert.Contains(t, out, "  2:1  WikiLink        Link  [[Link|x]]\n")
	assert.Contains(t, out, "c.wiki: error: boom\n")
	assert.Contains(t, out, fsutil.Sum([]byte("{{x}}")).Short())
	assert.True(t, strings.HasSuffix(out, "3 spans (2 Template, 1 WikiLink) in 3 files, 1 failed\n"), out)
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{ShowSummary: true}, &runner.Result{})
	assert.Zero(t, count)
	assert.Equal(t, "No files to scan.\n", out)
}

func TestReporter_CategoryFilter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{
		Format:     config.FormatText,
		Categories: []spans.Category{spans.WikiLink},
	}, sampleResult())

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "WikiLink")
	assert.NotContains(t, out, "Template")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatJSON, Compact: true, WorkingDir: "/w"}, sampleResult())
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Totals.Spans)
	assert.Equal(t, 1, report.Totals.FilesErrored)
	require.Len(t, report.Spans, 3)
	assert.Equal(t, "a.wiki", report.Spans[0].FilePath)
	assert.Equal(t, spans.WikiLink, report.Spans[2].Category)
	assert.Equal(t, "Link", report.Spans[2].Label)
}

func TestJSONReporter_EmptySpans(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatJSON}, &runner.Result{
		Files: []runner.FileOutcome{outcome("plain.wiki", "no markup")},
	})
	assert.Contains(t, out, `"spans": []`)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{
		Format:      config.FormatTable,
		ShowSummary: true,
		WorkingDir:  "/w",
		TermWidth:   80,
	}, sampleResult())

	assert.Equal(t, 3, count)
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Contains(t, out, "[[Link|x]]")
	assert.Contains(t, out, "3 spans")
}

func TestTableReporter_NoSpans(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatTable, ShowSummary: true}, &runner.Result{
		Files: []runner.FileOutcome{outcome("plain.wiki", "no markup")},
	})
	assert.Zero(t, count)
	assert.Equal(t, "No spans found\n1 files scanned\n", out)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: config.FormatSummary, WorkingDir: "/w"}, sampleResult())

	assert.Equal(t, 3, count)
	assert.Contains(t, out, "Categories\n")
	assert.Contains(t, out, "Files\n")
	assert.Regexp(t, `Template\s+2\s+2\n`, out)
	assert.Regexp(t, `WikiLink\s+1\s+1\n`, out)
	assert.Regexp(t, `b\.wiki\s+2\s+16\n`, out)
	assert.Contains(t, out, "c.wiki")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "Total: 3 spans")
}

func TestSummaryReporter_NoSpans(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: config.FormatSummary}, &runner.Result{
		Files: []runner.FileOutcome{outcome("plain.wiki", "no markup")},
	})
	assert.Equal(t, "No spans found\n", out)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/a.wiki", Patch: edit.Diff("/w/a.wiki", []byte("a\n"), []byte("b\n"))},
		{Path: "/w/same.wiki"},
		{Path: "/w/bad.wiki", Error: errors.New("boom")},
	}}

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/w",
	})

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "diff --git a/a.wiki b/a.wiki\n" +
		"--- a/a.wiki\n" +
		"+++ b/a.wiki\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-a\n" +
		"+b\n" +
		"\n" +
		"bad.wiki: error: boom\n" +
		"1 file changed, 1 insertion(+), 1 deletion(-)\n"
	assert.Equal(t, want, buf.String())
}

func TestDiffReporter_Nil(t *testing.T) {
	t.Parallel()

	rep := reporter.NewDiffReporter(reporter.Options{Writer: &bytes.Buffer{}})
	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}
