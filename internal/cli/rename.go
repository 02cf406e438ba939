package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

type renameFlags struct {
	write  bool
	dryRun bool
	backup bool
	ignore []string
}

func newRenameTemplateCommand() *cobra.Command {
	flags := &renameFlags{}

	cmd := &cobra.Command{
		Use:   "rename-template <old> <new> [paths...]",
		Short: "Rename every transclusion of a template",
		Long: `Rename every transclusion of a template, including those nested in other
templates, links and extension tags. Names are compared the way MediaWiki
resolves titles, so {{infobox_city}} and {{ Template:Infobox city }} both
match "Infobox city".

Without --write the change is shown as a diff.

Examples:
  wikispan rename-template "Cite web" "Cite news" pages/
  wikispan rename-template Infobox Infobox_person --write page.wiki`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenameTemplate(cmd, args[0], args[1], args[2:], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write changed files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show a diff without writing")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a "+fsutil.BackupSuffix+" copy when writing")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

func runRenameTemplate(cmd *cobra.Command, oldName, newName string, paths []string, flags *renameFlags) error {
	if wikitext.CanonicalTitle(oldName) == "" || strings.TrimSpace(newName) == "" {
		return fmt.Errorf("%w: template names must not be empty", ErrUsage)
	}
	if strings.ContainsAny(newName, "{}|") {
		return fmt.Errorf("%w: new template name %q contains markup", ErrUsage, newName)
	}

	cfg, workDir, err := loadConfig(cmd, &config.Config{
		Ignore: flags.ignore,
		Write:  flags.write,
		DryRun: flags.dryRun,
	})
	if err != nil {
		return err
	}

	transform := func(ctx context.Context, path string, root *wikitext.Node) error {
		renamed := 0
		for _, tmpl := range root.Templates() {
			if !tmpl.NameIs(oldName) {
				continue
			}
			if err := tmpl.SetName(newName); err != nil {
				return fmt.Errorf("rename template: %w", err)
			}
			renamed++
		}
		if renamed > 0 {
			logging.FromContext(ctx).Debug("renamed templates", logging.FieldPath, path, logging.FieldCount, renamed)
		}
		return nil
	}

	return runTransform(cmd, cfg, workDir, paths, transform, flags.backup, false)
}
