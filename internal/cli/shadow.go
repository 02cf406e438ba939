package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/fsutil"
	"github.com/yaklabco/wikispan/pkg/runner"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func newShadowCommand() *cobra.Command {
	var categories []string

	cmd := &cobra.Command{
		Use:   "shadow [file]",
		Short: "Print a document with its spans masked",
		Long: `Print the shadow of a document: the same text, byte for byte, with every
span overwritten. Comments become spaces and all other spans become
underscores, so the remaining text can be searched without matching
markup.

With no file, or with -, the document is read from stdin.

Examples:
  wikispan shadow page.wiki
  wikispan shadow --category Comment page.wiki   # Only hide comments`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := runner.StdinPath
			if len(args) == 1 {
				path = args[0]
			}
			return runShadow(cmd, path, categories)
		},
	}

	cmd.Flags().StringSliceVar(&categories, "category", nil, "categories to mask (default: all)")

	return cmd
}

func runShadow(cmd *cobra.Command, path string, names []string) error {
	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	masked := make([]spans.Category, 0, len(names))
	for _, name := range names {
		c, err := spans.ParseCategory(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		masked = append(masked, c)
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	root := wikitext.Parse(string(content), wikitext.WithScanner(cfg.Scanner()))
	if _, err := cmd.OutOrStdout().Write(root.Shadow(masked...)); err != nil {
		return fmt.Errorf("write shadow: %w", err)
	}
	return nil
}

// readInput reads a file, or stdin for runner.StdinPath.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == runner.StdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}
	content, _, err := fsutil.ReadFile(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
