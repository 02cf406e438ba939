package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/analysis"
)

// TableRenderer formats spans as a table with colour-coded categories.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	termWidth := opts.TermWidth
	if termWidth <= 0 {
		termWidth = getTerminalWidth(opts.Writer)
	}

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, termWidth),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if len(report.Spans) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No spans found"))
			fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d files scanned", report.Totals.Files)))
		}
		return nil
	}

	rows := make([]pretty.TableRow, len(report.Spans))
	for i, e := range report.Spans {
		rows[i] = pretty.TableRow{
			File:     e.FilePath,
			Location: strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column),
			Category: e.Category,
			Label:    e.Label,
			Snippet:  e.Snippet,
		}
	}
	fmt.Fprint(bw, r.formatter.FormatTable(rows))

	if r.opts.ShowSummary {
		fmt.Fprintln(bw)
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(summaryStats(report)))
	}
	return nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return pretty.DefaultTermWidth
}
