// Package pretty renders wikispan output for terminals with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds every style used for terminal output.
type Styles struct {
	// Categories colours each span category.
	Categories map[spans.Category]lipgloss.Style

	FilePath lipgloss.Style
	Location lipgloss.Style
	Label    lipgloss.Style
	Snippet  lipgloss.Style
	Digest   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newPlainStyles()
	}

	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return &Styles{
		Categories: map[spans.Category]lipgloss.Style{
			spans.Template:       fg("12"),
			spans.ParserFunction: fg("13"),
			spans.Parameter:      fg("14"),
			spans.WikiLink:       fg("10"),
			spans.Comment:        fg("8").Italic(true),
			spans.ExtensionTag:   fg("11"),
			spans.Section:        fg("15").Bold(true),
			spans.Argument:       fg("6"),
		},

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: fg("8"),
		Label:    lipgloss.NewStyle(),
		Snippet:  fg("7"),
		Digest:   fg("8"),
		Error:    fg("9").Bold(true),
		Warning:  fg("11").Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		Success: fg("10").Bold(true),
		Failure: fg("9").Bold(true),

		TableHeader:    fg("7").Bold(true),
		TableSeparator: fg("8"),
		TableLegend:    fg("8").Italic(true),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Categories:     map[spans.Category]lipgloss.Style{},
		FilePath:       plain,
		Location:       plain,
		Label:          plain,
		Snippet:        plain,
		Digest:         plain,
		Error:          plain,
		Warning:        plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// Category returns the style for c, or an unstyled one.
func (s *Styles) Category(c spans.Category) lipgloss.Style {
	if style, ok := s.Categories[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled resolves a colour mode for writer. In auto mode colour is
// used only on a terminal and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
