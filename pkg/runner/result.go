package runner

import (
	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path, or StdinPath.
	Path string

	// Digest is the BLAKE3 hash of the content as read.
	Digest fsutil.Digest

	// Root is the root view of the parsed, possibly transformed, document.
	// Nil when Error is set.
	Root *wikitext.Node

	// Counts holds the live spans per category after any transform.
	Counts map[spans.Category]int

	// Patch is the change the transform made, or nil.
	Patch *edit.Patch

	// Written is true if the file was replaced on disk.
	Written bool

	// BackupCreated is true if a sidecar backup was written.
	BackupCreated bool

	// Skipped is true if a write was abandoned; SkipReason says why.
	Skipped    bool
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Changed reports whether the transform altered the document.
func (o *FileOutcome) Changed() bool {
	return o.Patch != nil
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesSkipped    int
	FilesChanged    int
	FilesWritten    int

	// SpansTotal counts live spans of every scanned category.
	SpansTotal int

	// SpansByCategory counts live spans per category.
	SpansByCategory map[spans.Category]int

	// LinesAdded and LinesRemoved total the patches.
	LinesAdded   int
	LinesRemoved int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in discovery order.
	Files []FileOutcome

	// Stats aggregates Files.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any document was changed.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

func newStats() Stats {
	return Stats{SpansByCategory: make(map[spans.Category]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesProcessed++

	for _, c := range spans.ScannedCategories() {
		n := outcome.Counts[c]
		r.Stats.SpansByCategory[c] += n
		r.Stats.SpansTotal += n
	}

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Patch != nil {
		r.Stats.FilesChanged++
		r.Stats.LinesAdded += outcome.Patch.Added
		r.Stats.LinesRemoved += outcome.Patch.Removed
	}
}
