// Package reporter renders scan results as text, tables, JSON, summaries
// or unified diffs.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/wikispan/pkg/analysis"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*reporterFacade)(nil)
	_ Reporter = (*DiffReporter)(nil)
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of spans reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Spans, nil
}

func newRendererFacade(renderer Renderer, opts Options, analysisOpts analysis.Options) *reporterFacade {
	analysisOpts.Categories = opts.Categories
	analysisOpts.WorkingDir = opts.WorkingDir
	return &reporterFacade{renderer: renderer, analysisOpts: analysisOpts}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	all := analysis.DefaultOptions()
	switch format {
	case config.FormatText:
		all.SortBy = analysis.SortByAlpha
		return newRendererFacade(NewTextRenderer(opts), opts, all), nil
	case config.FormatTable:
		all.IncludeByFile = false
		all.IncludeByCategory = false
		return newRendererFacade(NewTableRenderer(opts), opts, all), nil
	case config.FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, all), nil
	case config.FormatSummary:
		all.IncludeSpans = false
		return newRendererFacade(NewSummaryRenderer(opts), opts, all), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
