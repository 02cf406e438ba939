package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// categoryWidth fits the longest category name.
const categoryWidth = 14

// SpanLine is one span as shown by the text reporter.
type SpanLine struct {
	Line     int
	Column   int
	Category spans.Category
	Label    string
	Snippet  string
}

// FormatSpanLine renders "  line:col  Category  label  snippet".
func (s *Styles) FormatSpanLine(l SpanLine) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(s.Location.Render(fmt.Sprintf("%d:%d", l.Line, l.Column)))
	b.WriteString("  ")
	b.WriteString(s.Category(l.Category).Render(fmt.Sprintf("%-*s", categoryWidth, l.Category)))
	if l.Label != "" {
		b.WriteString("  ")
		b.WriteString(s.Label.Render(l.Label))
	}
	if l.Snippet != "" {
		b.WriteString("  ")
		b.WriteString(s.Snippet.Render(l.Snippet))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatFileHeader renders a file path with its span count and a short
// content digest.
func (s *Styles) FormatFileHeader(path string, count int, digest string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, "span", "spans")))
	}
	if digest != "" {
		header += " " + s.Digest.Render(digest)
	}
	return header
}

// FormatFileError renders a file that could not be processed.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render("error: "+err.Error()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
