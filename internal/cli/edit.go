package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/reporter"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

type editFlags struct {
	edits   string
	write   bool
	dryRun  bool
	backup  bool
	lenient bool
}

func newEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Apply a batch of byte-offset edits to a file",
		Long: `Apply a YAML batch of byte-offset edits to a wikitext file.

Offsets refer to the original text. Edits are validated and sorted, then
applied from the end of the document backwards so that every offset stays
valid. Overlapping edits are rejected unless --lenient is given, which
merges overlapping deletions and skips other overlapping edits.

The batch looks like:

  edits:
    - start: 2
      stop: 3
      text: Infobox

Without --write the edited document is printed to stdout.

Examples:
  wikispan edit page.wiki --edits fix.yaml             # Print the result
  wikispan edit page.wiki --edits fix.yaml --dry-run   # Show a diff
  wikispan edit page.wiki --edits fix.yaml --write     # Replace the file`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.edits, "edits", "e", "", "YAML edit batch file (- for stdin)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show a diff without writing")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a "+fsutil.BackupSuffix+" copy when writing")
	cmd.Flags().BoolVar(&flags.lenient, "lenient", false, "merge or skip overlapping edits instead of failing")
	_ = cmd.MarkFlagRequired("edits")

	return cmd
}

func runEdit(cmd *cobra.Command, path string, flags *editFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if flags.edits == runner.StdinPath && path == runner.StdinPath {
		return fmt.Errorf("%w: the file and the edit batch cannot both be read from stdin", ErrUsage)
	}

	batchData, err := readInput(cmd, flags.edits)
	if err != nil {
		return err
	}
	batch, err := edit.ParseBatch(batchData)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	logger.Debug("loaded edit batch", logging.FieldPath, flags.edits, logging.FieldEdits, len(batch.Edits))

	cfg, workDir, err := loadConfig(cmd, &config.Config{Write: flags.write, DryRun: flags.dryRun})
	if err != nil {
		return err
	}

	transform := func(ctx context.Context, path string, root *wikitext.Node) error {
		return applyBatch(ctx, path, root, batch.Edits, flags.lenient)
	}

	return runTransform(cmd, cfg, workDir, []string{path}, transform, flags.backup, true)
}

// applyBatch prepares edits against the document length and applies them.
func applyBatch(ctx context.Context, path string, root *wikitext.Node, edits []edit.Edit, lenient bool) error {
	if !lenient {
		prepared, err := edit.Prepare(edits, root.Len())
		if err != nil {
			return err
		}
		return edit.Apply(root, prepared)
	}

	prepared, skipped, merged, err := edit.PrepareLenient(edits, root.Len())
	if err != nil {
		return err
	}
	if len(skipped) > 0 || merged > 0 {
		logging.FromContext(ctx).Warn("overlapping edits",
			logging.FieldPath, path,
			"skipped", len(skipped),
			"merged", merged,
		)
	}
	return edit.Apply(root, prepared)
}

// runTransform runs transform over paths and reports the outcome. A dry
// run prints a diff; a write logs each replaced file. Otherwise, when
// printResult is set, the edited text of each file is printed.
func runTransform(cmd *cobra.Command, cfg *config.Config, workDir string, paths []string,
	transform runner.Transform, backup, printResult bool,
) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	opts := runner.OptionsFromConfig(cfg, paths)
	opts.WorkingDir = workDir
	opts.Stdin = cmd.InOrStdin()
	opts.Transform = transform
	opts.Backup = backup
	for _, p := range paths {
		// Files named on the command line are edited whatever their extension.
		if ext := filepath.Ext(p); ext != "" && p != runner.StdinPath {
			opts.Extensions = append(opts.Extensions, strings.ToLower(ext))
		}
	}

	result, err := runner.New(cfg.Scanner()).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	switch {
	case cfg.DryRun || (!opts.Write && !printResult):
		rep := reporter.NewDiffReporter(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Color:       colorMode(cmd),
			ShowSummary: true,
			WorkingDir:  workDir,
		})
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report diff: %w", err)
		}
	case opts.Write:
		for _, file := range result.Files {
			switch {
			case file.Written:
				logger.Info("wrote file", logging.FieldPath, file.Path, "backup", file.BackupCreated)
			case file.Skipped:
				logger.Warn("skipped file", logging.FieldPath, file.Path, "reason", file.SkipReason)
			}
		}
	default:
		var out bytes.Buffer
		for _, file := range result.Files {
			if file.Root != nil && file.Error == nil {
				out.WriteString(file.Root.String())
			}
		}
		if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	if len(result.Files) == 1 && result.Files[0].Error != nil {
		return result.Files[0].Error
	}
	for _, file := range result.Files {
		if file.Error != nil {
			logger.Error("file failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
		}
	}
	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}
