package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/wikispan/pkg/config"
)

// envVarPrefix is the prefix for all wikispan environment variables.
const envVarPrefix = "WIKISPAN_"

// envVar describes one environment variable and how it applies to a Config.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"FORMAT", "Output format: text, table, json, or summary", func(cfg *config.Config, v string) error {
		f, err := config.ParseFormat(v)
		if err != nil {
			return err
		}
		cfg.Format = f
		return nil
	}},
	{"JOBS", "Number of parallel workers (0 = one per CPU)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"IGNORE", "Comma-separated glob patterns of files to skip", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"EXTENSIONS", "Comma-separated file extensions to scan", func(cfg *config.Config, v string) error {
		cfg.Extensions = parseSliceValue(v)
		return nil
	}},
	{"CATEGORIES", "Comma-separated categories to report", func(cfg *config.Config, v string) error {
		cfg.Categories = parseSliceValue(v)
		return nil
	}},
	{"PARSABLE_TAGS", "Extra extension tags whose contents are wikitext", func(cfg *config.Config, v string) error {
		cfg.Names.ParsableTags = append(cfg.Names.ParsableTags, parseSliceValue(v)...)
		return nil
	}},
	{"UNPARSABLE_TAGS", "Extra extension tags whose contents are opaque", func(cfg *config.Config, v string) error {
		cfg.Names.UnparsableTags = append(cfg.Names.UnparsableTags, parseSliceValue(v)...)
		return nil
	}},
	{"PARSER_FUNCTIONS", "Extra parser function names accepted without '#'", func(cfg *config.Config, v string) error {
		cfg.Names.ParserFunctions = append(cfg.Names.ParserFunctions, parseSliceValue(v)...)
		return nil
	}},
	{"EXTERNAL_LINK_SCHEMES", "Extra external link URL prefixes", func(cfg *config.Config, v string) error {
		cfg.Names.ExternalLinkSchemes = append(cfg.Names.ExternalLinkSchemes, parseSliceValue(v)...)
		return nil
	}},
	{"FOLLOW_SYMLINKS", "Walk into symlinked directories: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		cfg.FollowSymlinks = b
		return nil
	}},
	{"DRY_RUN", "Show edit diffs without writing: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		cfg.DryRun = b
		return nil
	}},
}

// LoadFromEnv applies WIKISPAN_* environment variables to cfg. Name lists
// are appended; every other value replaces the configured one.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list and drops empty elements.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[envVarPrefix+ev.suffix] = ev.description
	}
	return out
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, envVarPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}
