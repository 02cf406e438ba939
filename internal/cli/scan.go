package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/reporter"
	"github.com/yaklabco/wikispan/pkg/runner"
)

type scanFlags struct {
	format         string
	categories     []string
	ignore         []string
	jobs           int
	followSymlinks bool
	compact        bool
	noSummary      bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Report the spans in wikitext files",
		Long:  scanLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().StringSliceVar(&flags.categories, "category", nil,
		"only report these categories (Template, ParserFunction, Parameter, WikiLink, Comment, ExtensionTag)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")

	return cmd
}

const scanLongDescription = `Scan wikitext files and report their spans.

By default, scans all .wiki, .wikitext, .mediawiki and .mw files in the
current directory and subdirectories. Use - to read from stdin.

Examples:
  wikispan scan                         # Scan current directory
  wikispan scan pages/                  # Scan a directory
  wikispan scan Main_Page.wiki          # Scan a single file
  cat page.wiki | wikispan scan -       # Scan stdin
  wikispan scan --category Template     # Only report templates
  wikispan scan --format json           # Output as JSON`

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{
		Ignore:         flags.ignore,
		Categories:     flags.categories,
		Jobs:           flags.jobs,
		FollowSymlinks: flags.followSymlinks,
	}
	if cmd.Flags().Changed("format") {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = format
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	categories, err := cfg.ReportCategories()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.Stdin = cmd.InOrStdin()

	logger.Debug("starting scan",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(cfg.Scanner()).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode(cmd),
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		Categories:  categories,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	count, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	logger.Debug("scan finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldSpans, count,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}
