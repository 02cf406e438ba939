package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

const (
	tablePadding     = 2
	tableColumnCount = 5
	minFileWidth     = 16
	minLocWidth      = 7
	minLabelWidth    = 12
	minSnippetWidth  = 20
	heavySeparator   = "="
	lightSeparator   = "-"

	// DefaultTermWidth is used when the terminal width is unknown.
	DefaultTermWidth = 100
)

// TableRow is one span in the table reporter.
type TableRow struct {
	File     string
	Location string
	Category spans.Category
	Label    string
	Snippet  string
}

type columnWidths struct {
	file, loc, category, label, snippet int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.category + w.label + w.snippet + tablePadding*tableColumnCount
}

// TableFormatter lays rows out in columns that fit the terminal.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a table formatter. A termWidth of 0 means
// DefaultTermWidth.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, colorEnabled: colorEnabled, termWidth: termWidth}
}

// FormatTable renders rows, drawing a light separator between files.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.widths(rows)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.file, "FILE",
		widths.loc, "LOC",
		widths.category, "CATEGORY",
		widths.label, "NAME",
		widths.snippet, "TEXT",
	)))
	b.WriteString("\n")
	b.WriteString(t.separator(widths, heavySeparator))

	for i, row := range rows {
		if i > 0 && row.File != rows[i-1].File {
			b.WriteString(t.separator(widths, lightSeparator))
		}
		category := fmt.Sprintf("%-*s", widths.category, row.Category)
		b.WriteString(fmt.Sprintf(" %-*s  %-*s  %s  %-*s  %s\n",
			widths.file, truncatePath(row.File, widths.file),
			widths.loc, truncate(row.Location, widths.loc),
			t.styles.Category(row.Category).Render(category),
			widths.label, truncate(row.Label, widths.label),
			truncate(row.Snippet, widths.snippet),
		))
	}

	b.WriteString(t.separator(widths, heavySeparator))
	if t.colorEnabled {
		b.WriteString(t.legend())
	}
	return b.String()
}

func (t *TableFormatter) widths(rows []TableRow) columnWidths {
	w := columnWidths{
		file:     minFileWidth,
		loc:      minLocWidth,
		category: categoryWidth,
		label:    minLabelWidth,
		snippet:  minSnippetWidth,
	}
	for _, r := range rows {
		w.file = max(w.file, len(r.File))
		w.loc = max(w.loc, len(r.Location))
		w.label = max(w.label, len(r.Label))
		w.snippet = max(w.snippet, len(r.Snippet))
	}

	// Shrink the free-text columns first, then the path.
	shrink := func(col *int, floor int) {
		if excess := w.total() - t.termWidth; excess > 0 {
			*col = max(floor, *col-excess)
		}
	}
	shrink(&w.snippet, minSnippetWidth)
	shrink(&w.label, minLabelWidth)
	shrink(&w.file, minFileWidth)
	return w
}

func (t *TableFormatter) separator(w columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, w.total())) + "\n"
}

func (t *TableFormatter) legend() string {
	samples := make([]string, 0, len(spans.ScannedCategories()))
	for _, c := range spans.ScannedCategories() {
		samples = append(samples, t.styles.Category(c).Render(string(c)))
	}
	return t.styles.TableLegend.Render(" Legend: ") + strings.Join(samples, "  ") + "\n"
}

// truncate shortens s to maxLen, marking the cut with "...".
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// truncatePath keeps the end of a path, where the file name is.
func truncatePath(p string, maxLen int) string {
	if len(p) <= maxLen {
		return p
	}
	if maxLen <= 3 {
		return p[len(p)-maxLen:]
	}
	return "..." + p[len(p)-maxLen+3:]
}
