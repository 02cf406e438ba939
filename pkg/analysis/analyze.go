package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

const defaultSnippetLength = 40

// Analyze builds a Report from result in one pass over its files.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	categories := opts.categories()
	byCategory := make(map[spans.Category]*CategoryAnalysis, len(categories))
	for _, c := range categories {
		byCategory[c] = &CategoryAnalysis{Category: c}
	}

	for _, file := range result.Files {
		report.Totals.Files++
		path := displayPath(file.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: path}

		if file.Error != nil || file.Root == nil {
			if file.Error != nil {
				report.Totals.FilesErrored++
				fa.Error = file.Error.Error()
			}
			report.ByFile = appendIf(opts.IncludeByFile, report.ByFile, fa)
			continue
		}

		fa.Digest = file.Digest.Short()
		fa.Bytes = file.Root.Len()
		fa.Changed = file.Changed()
		fa.Written = file.Written
		fa.ByCategory = make(map[spans.Category]int, len(categories))
		if fa.Changed {
			report.Totals.FilesChanged++
		}
		if fa.Written {
			report.Totals.FilesWritten++
		}
		if file.Skipped {
			fa.Skipped = file.SkipReason
			report.Totals.FilesSkipped++
		}

		doc := file.Root.Document()
		var lines *lineIndex
		if opts.IncludeSpans {
			lines = newLineIndex(doc.String())
		}

		for _, c := range categories {
			found := doc.Spans(c)
			if len(found) == 0 {
				continue
			}
			fa.ByCategory[c] = len(found)
			fa.Spans += len(found)
			byCategory[c].Spans += len(found)
			byCategory[c].Files = append(byCategory[c].Files, path)

			if opts.IncludeSpans {
				report.Spans = append(report.Spans, entries(path, c, file.Root, found, lines, opts)...)
			}
		}

		report.Totals.Spans += fa.Spans
		if fa.Spans > 0 {
			report.Totals.FilesWithSpans++
		}
		report.ByFile = appendIf(opts.IncludeByFile, report.ByFile, fa)
	}

	if opts.IncludeSpans {
		// Group by file, then document order across categories.
		slices.SortStableFunc(report.Spans, func(a, b SpanEntry) int {
			return cmp.Or(cmp.Compare(a.FilePath, b.FilePath), cmp.Compare(a.Start, b.Start), cmp.Compare(b.End, a.End))
		})
	}
	if opts.IncludeByFile {
		sortFiles(report.ByFile, opts.SortBy, opts.SortDesc)
	}
	if opts.IncludeByCategory {
		for _, c := range categories {
			if ca := byCategory[c]; ca.Spans > 0 {
				report.ByCategory = append(report.ByCategory, *ca)
			}
		}
		sortCategories(report.ByCategory, opts.SortBy, opts.SortDesc)
	}

	return report
}

func appendIf[T any](ok bool, s []T, v T) []T {
	if !ok {
		return s
	}
	return append(s, v)
}

func displayPath(path, workDir string) string {
	if workDir == "" || path == runner.StdinPath {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func entries(path string, c spans.Category, root *wikitext.Node, found []spans.Span, lines *lineIndex, opts Options) []SpanEntry {
	labels := labelsFor(root, c)
	text := root.Document().String()
	limit := opts.SnippetLength
	if limit <= 0 {
		limit = defaultSnippetLength
	}

	out := make([]SpanEntry, 0, len(found))
	for _, s := range found {
		line, col := lines.position(s.Start)
		out = append(out, SpanEntry{
			FilePath: path,
			Category: c,
			Start:    s.Start,
			End:      s.End,
			Line:     line,
			Column:   col,
			Label:    labels[[2]int{s.Start, s.End}],
			Snippet:  snippet(text[s.Start:s.End], limit),
		})
	}
	return out
}

// labelsFor names every span of category c through its typed view.
func labelsFor(root *wikitext.Node, c spans.Category) map[[2]int]string {
	labels := map[[2]int]string{}
	put := func(n *wikitext.Node, label string) {
		start, end := n.Span()
		labels[[2]int{start, end}] = label
	}

	switch c {
	case spans.Template:
		for _, v := range root.Templates() {
			put(v.Node, v.Name())
		}
	case spans.ParserFunction:
		for _, v := range root.ParserFunctions() {
			put(v.Node, v.Name())
		}
	case spans.Parameter:
		for _, v := range root.Parameters() {
			put(v.Node, v.Name())
		}
	case spans.WikiLink:
		for _, v := range root.WikiLinks() {
			put(v.Node, v.Target())
		}
	case spans.ExtensionTag:
		for _, v := range root.ExtensionTags() {
			put(v.Node, v.Name())
		}
	}
	return labels
}

// snippet returns the first line of s, cut to limit runes.
func snippet(s string, limit int) string {
	cut := false
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s, cut = s[:nl], true
	}
	if utf8.RuneCountInString(s) > limit {
		runes := []rune(s)
		s, cut = string(runes[:limit]), true
	}
	if cut {
		s += "…"
	}
	return s
}

func sortFiles(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(a, b FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(a.Path, b.Path)
		}
		return cmp.Or(compareCount(a.Spans, b.Spans, desc), cmp.Compare(a.Path, b.Path))
	})
}

func sortCategories(cats []CategoryAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(cats, func(a, b CategoryAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(a.Category, b.Category)
		}
		return cmp.Or(compareCount(a.Spans, b.Spans, desc), cmp.Compare(a.Category, b.Category))
	})
}

func compareCount(a, b int, desc bool) int {
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}
