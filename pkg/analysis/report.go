// Package analysis turns a runner result into the per-span, per-file and
// per-category views every reporter renders.
package analysis

import (
	"time"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// Report is computed once by Analyze and shared by all renderers.
type Report struct {
	Spans      []SpanEntry        `json:"spans"`
	ByFile     []FileAnalysis     `json:"byFile,omitempty"`
	ByCategory []CategoryAnalysis `json:"byCategory,omitempty"`
	Totals     Totals             `json:"summary"`
	Version    string             `json:"version"`
	Timestamp  time.Time          `json:"timestamp"`
}

// SpanEntry is one span with its position and a readable label.
type SpanEntry struct {
	FilePath string         `json:"filePath"`
	Category spans.Category `json:"category"`
	Start    int            `json:"start"`
	End      int            `json:"end"`
	Line     int            `json:"line"`
	Column   int            `json:"column"`

	// Label is the template, function, parameter or tag name, or the link
	// target. Comments have none.
	Label string `json:"label,omitempty"`

	// Snippet is the start of the span's text, cut at the first newline.
	Snippet string `json:"snippet"`
}

// Totals aggregates the whole run.
type Totals struct {
	Files          int `json:"filesScanned"`
	FilesWithSpans int `json:"filesWithSpans"`
	FilesErrored   int `json:"filesErrored"`
	FilesChanged   int `json:"filesChanged"`
	FilesWritten   int `json:"filesWritten"`
	FilesSkipped   int `json:"filesSkipped"`
	Spans          int `json:"totalSpans"`
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis summarises one file.
type FileAnalysis struct {
	Path       string                 `json:"path"`
	Digest     string                 `json:"digest,omitempty"`
	Bytes      int                    `json:"bytes"`
	Spans      int                    `json:"spans"`
	ByCategory map[spans.Category]int `json:"byCategory,omitempty"`
	Changed    bool                   `json:"changed,omitempty"`
	Written    bool                   `json:"written,omitempty"`
	Skipped    string                 `json:"skipped,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// CategoryAnalysis summarises one category across files.
type CategoryAnalysis struct {
	Category spans.Category `json:"category"`
	Spans    int            `json:"spans"`
	Files    []string       `json:"files,omitempty"`
}
