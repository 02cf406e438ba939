package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// Sentinel errors for categorizing per-file failures.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTransform        = errors.New("transform failed")
	ErrWriteFailure     = errors.New("write failed")
)

// processFile reads, parses and optionally transforms and writes one file.
//
// Writing is guarded: the file is re-checked for concurrent modification,
// backed up if asked, then replaced atomically.
func processFile(ctx context.Context, path string, sc *spans.Scanner, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	var (
		content []byte
		info    *fsutil.FileInfo
		err     error
	)
	if path == StdinPath {
		content, err = readStdin(opts.Stdin)
	} else {
		content, info, err = fsutil.ReadFile(ctx, path)
	}
	if err != nil {
		outcome.Error = categorize(err)
		return outcome
	}
	outcome.Digest = fsutil.Sum(content)

	root := wikitext.Parse(string(content), wikitext.WithScanner(sc))
	outcome.Root = root

	if opts.Transform != nil {
		if err := opts.Transform(ctx, path, root); err != nil {
			outcome.Error = fmt.Errorf("%w: %w", ErrTransform, err)
			return outcome
		}
		outcome.Patch = edit.Diff(path, content, root.Document().Bytes())
	}
	outcome.Counts = root.Document().Counts()

	if outcome.Patch == nil || !opts.Write || info == nil {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome
	}
	if modified {
		outcome.Skipped = true
		outcome.SkipReason = "file modified during processing"
		return outcome
	}

	if opts.Backup {
		created, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			outcome.Error = fmt.Errorf("create backup: %w", err)
			return outcome
		}
		outcome.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, root.Document().Bytes(), info.Mode.Perm()); err != nil {
		outcome.Error = fmt.Errorf("%w: %w", ErrWriteFailure, err)
		return outcome
	}
	outcome.Written = true
	return outcome
}

func readStdin(r io.Reader) ([]byte, error) {
	if r == nil {
		r = os.Stdin
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return buf.Bytes(), nil
}

func categorize(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}
