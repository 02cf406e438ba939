package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/analysis"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/spans"
)

// Table layout constants for summary output.
const (
	tableWidth        = 80
	categoryColWidth  = 20
	fileColWidth      = 56
	numColWidth       = 7
	maxFilePathLength = 54
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated category and file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Spans == 0 && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No spans found"))
		return nil
	}

	r.renderCategoryTable(report.ByCategory)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(summaryStats(report)))

	return nil
}

func (r *SummaryRenderer) rule() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderCategoryTable(categories []analysis.CategoryAnalysis) {
	if len(categories) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Categories"))
	r.rule()
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("Category", categoryColWidth)),
		r.styles.TableHeader.Render(padLeft("Spans", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.rule()

	for _, c := range categories {
		fmt.Fprintf(r.out, "%s %s %s\n",
			r.styles.Category(c.Category).Render(padRight(string(c.Category), categoryColWidth)),
			padLeft(strconv.Itoa(c.Spans), numColWidth),
			padLeft(strconv.Itoa(len(c.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	r.rule()
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Spans", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Bytes", numColWidth)),
	)
	r.rule()

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		padded := padRight(path, fileColWidth)
		if file.Error != "" {
			fmt.Fprintf(r.out, "%s %s\n", r.styles.Failure.Render(padded), r.styles.Error.Render(file.Error))
			continue
		}
		fmt.Fprintf(r.out, "%s %s %s\n",
			padded,
			padLeft(strconv.Itoa(file.Spans), numColWidth),
			padLeft(strconv.Itoa(file.Bytes), numColWidth),
		)
	}
}

// summaryStats rebuilds run statistics from a report so summaries respect
// its category filter.
func summaryStats(report *analysis.Report) runner.Stats {
	stats := runner.Stats{
		FilesProcessed:  report.Totals.Files,
		FilesErrored:    report.Totals.FilesErrored,
		FilesSkipped:    report.Totals.FilesSkipped,
		FilesChanged:    report.Totals.FilesChanged,
		FilesWritten:    report.Totals.FilesWritten,
		SpansTotal:      report.Totals.Spans,
		SpansByCategory: make(map[spans.Category]int, len(report.ByCategory)),
	}
	for _, c := range report.ByCategory {
		stats.SpansByCategory[c.Category] = c.Spans
	}
	return stats
}
