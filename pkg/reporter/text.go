package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
	"github.com/yaklabco/wikispan/pkg/analysis"
)

// TextRenderer lists spans grouped by file.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{opts: opts, styles: pretty.NewStyles(colorEnabled)}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to scan."))
		}
		return nil
	}

	// Spans are sorted by file, so each file's entries are contiguous.
	byPath := make(map[string][]analysis.SpanEntry)
	for _, e := range report.Spans {
		byPath[e.FilePath] = append(byPath[e.FilePath], e)
	}

	for _, file := range report.ByFile {
		if file.Error != "" {
			fmt.Fprint(bw, r.styles.FormatFileError(file.Path, errors.New(file.Error)))
			continue
		}
		entries := byPath[file.Path]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintln(bw, r.styles.FormatFileHeader(file.Path, len(entries), file.Digest))
		for _, e := range entries {
			fmt.Fprint(bw, r.styles.FormatSpanLine(pretty.SpanLine{
				Line:     e.Line,
				Column:   e.Column,
				Category: e.Category,
				Label:    e.Label,
				Snippet:  e.Snippet,
			}))
		}
		fmt.Fprintln(bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(summaryStats(report)))
	}
	return nil
}
