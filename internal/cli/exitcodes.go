package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// Exit codes for wikispan.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFileErrors indicates the run completed but some files failed.
	ExitFileErrors = 1

	// ExitDeadIndex indicates an edit addressed a dead view or an offset
	// outside the document.
	ExitDeadIndex = 3

	// ExitInvalidUsage indicates invalid command-line usage or edit batch.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors that select an exit code.
var (
	ErrFilesFailed = errors.New("one or more files could not be processed")
	ErrUsage       = errors.New("invalid usage")
	ErrConfig      = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result != nil && result.HasErrors() {
		return ExitFileErrors
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		validation *edit.ValidationError
		conflict   *edit.ConflictError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrUsage), errors.As(err, &validation), errors.As(err, &conflict):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, wikitext.ErrDeadIndex), errors.Is(err, wikitext.ErrIndexOutOfRange),
		errors.Is(err, wikitext.ErrUnsupported):
		return ExitDeadIndex
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, runner.ErrFileNotFound), errors.Is(err, runner.ErrPermissionDenied),
		errors.Is(err, runner.ErrWriteFailure), errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
