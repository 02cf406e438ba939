package reporter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/runner"
)

// DiffReporter writes the patches produced by a transform as unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. It returns the number of changed files.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, added, removed int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.out, r.styles.FormatFileError(r.relativePath(file.Path), file.Error))
			continue
		}
		if file.Patch == nil {
			continue
		}

		files++
		added += file.Patch.Added
		removed += file.Patch.Removed
		r.writePatch(file.Patch)

		if file.Skipped {
			fmt.Fprintln(r.out, r.styles.Warning.Render("skipped: "+file.SkipReason))
		}
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, added, removed)
	}
	return files, nil
}

func (r *DiffReporter) writePatch(p *edit.Patch) {
	path := filepath.ToSlash(r.relativePath(p.Path))

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range p.Hunks {
		fmt.Fprintln(r.out, r.styles.DiffHunk.Render(
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)))
		for _, l := range h.Lines {
			switch l.Kind {
			case edit.Added:
				fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+"+l.Text))
			case edit.Removed:
				fmt.Fprintln(r.out, r.styles.DiffRemove.Render("-"+l.Text))
			default:
				fmt.Fprintln(r.out, r.styles.DiffContext.Render(" "+l.Text))
			}
		}
	}

	fmt.Fprintln(r.out)
}

// relativePath shortens path against the working directory. Paths that
// would climb more than two levels keep only their base name.
func (r *DiffReporter) relativePath(path string) string {
	if r.opts.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}

func (r *DiffReporter) writeSummary(files, added, removed int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", added, plural(added, "insertion", "insertions"))))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", removed, plural(removed, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
