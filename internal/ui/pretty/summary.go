package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/spans"
)

// FormatSummaryOneLine formats run statistics as one line, e.g.
// "42 spans (30 Template, 12 WikiLink) in 3 files, 1 changed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	files := fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))

	var parts []string
	if stats.SpansTotal == 0 {
		parts = append(parts, s.Success.Render("No spans found")+s.Dim.Render(" ("+files+" scanned)"))
	} else {
		var byCat []string
		for _, c := range spans.ScannedCategories() {
			if n := stats.SpansByCategory[c]; n > 0 {
				byCat = append(byCat, s.Category(c).Render(fmt.Sprintf("%d %s", n, c)))
			}
		}
		parts = append(parts, fmt.Sprintf("%d %s (%s) in %s",
			stats.SpansTotal, plural(stats.SpansTotal, "span", "spans"), strings.Join(byCat, ", "), files))
	}

	if stats.FilesChanged > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d changed", stats.FilesChanged)))
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}
