package analysis

import "github.com/yaklabco/wikispan/pkg/spans"

// SortField specifies how ByFile and ByCategory are ordered.
type SortField string

const (
	// SortByCount orders by span count.
	SortByCount SortField = "count"
	// SortByAlpha orders by path or category name, ascending.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options configures Analyze.
type Options struct {
	// IncludeSpans fills Report.Spans with one entry per span.
	IncludeSpans bool

	// IncludeByFile fills Report.ByFile.
	IncludeByFile bool

	// IncludeByCategory fills Report.ByCategory.
	IncludeByCategory bool

	// Categories limits the report. Empty means every scanned category.
	Categories []spans.Category

	// SortBy orders ByFile and ByCategory. Span entries always follow file
	// order and then document order.
	SortBy SortField

	// SortDesc sorts counts highest first.
	SortDesc bool

	// WorkingDir makes paths relative. Empty keeps them as they are.
	WorkingDir string

	// SnippetLength caps the text shown per span, in runes.
	SnippetLength int
}

// DefaultOptions returns Options with every view enabled.
func DefaultOptions() Options {
	return Options{
		IncludeSpans:      true,
		IncludeByFile:     true,
		IncludeByCategory: true,
		SortBy:            SortByCount,
		SortDesc:          true,
		SnippetLength:     defaultSnippetLength,
	}
}

func (o Options) categories() []spans.Category {
	if len(o.Categories) == 0 {
		return spans.ScannedCategories()
	}
	return o.Categories
}
