// Package runner scans and edits many wikitext files concurrently.
package runner

import (
	"context"
	"io"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// StdinPath is the path argument that reads one document from standard input.
const StdinPath = "-"

// Transform edits a parsed document in place through its root view. The
// runner diffs the result against the file and writes it when asked to.
type Transform func(ctx context.Context, path string, root *wikitext.Node) error

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process. StdinPath reads from
	// Stdin. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions are the lowercase, dot-prefixed extensions treated as
	// wikitext when walking directories.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means everything with a matching extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs is the worker count. 0 or negative means one per CPU.
	Jobs int

	// Transform, when set, is applied to every document.
	Transform Transform

	// Write replaces changed files in place. Without it a changed document
	// only produces a patch.
	Write bool

	// Backup keeps a sidecar copy of each file before its first write.
	Backup bool

	// Stdin is read when Paths contains StdinPath.
	Stdin io.Reader

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the discovery and scan fields from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:          paths,
		Extensions:     cfg.EffectiveExtensions(),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: cfg.FollowSymlinks,
		Jobs:           cfg.Jobs,
		Write:          cfg.Write && !cfg.DryRun,
		Config:         cfg,
	}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
