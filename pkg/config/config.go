// Package config defines the configuration types for wikispan.
// These types are plain data; loading and merging live in internal/configloader.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// OutputFormat selects how scan results are rendered.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSummary}
}

// IsValid reports whether f is a supported output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(Formats(), f)
}

// ParseFormat parses an output format name case-insensitively.
func ParseFormat(name string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown output format %q", name)
	}
	return f, nil
}

// DefaultExtensions returns the file extensions treated as wikitext.
func DefaultExtensions() []string {
	return []string{".wiki", ".wikitext", ".mediawiki", ".mw"}
}

// Config is the root configuration structure for wikispan.
type Config struct {
	// Names extends the built-in tag, parser function and scheme sets. Every
	// list is added to the built-in one.
	Names spans.Names `yaml:",inline"`

	// Extensions are the file extensions scanned when walking directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Categories limits reports to these categories. Empty means all.
	Categories []string `yaml:"categories,omitempty"`

	// FollowSymlinks enables walking into symlinked directories.
	FollowSymlinks bool `yaml:"follow_symlinks,omitempty"`

	// Jobs is the number of parallel workers. 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Write replaces edited files in place.
	Write bool `yaml:"-"`

	// DryRun shows the diff an edit would make without writing.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: DefaultExtensions(),
		Format:     FormatText,
	}
}

// ScanNames returns the built-in name sets extended by c.Names.
func (c *Config) ScanNames() spans.Names {
	if c == nil {
		return spans.DefaultNames()
	}
	return spans.DefaultNames().Merge(c.Names)
}

// Scanner builds a scanner for ScanNames.
func (c *Config) Scanner() *spans.Scanner {
	if c == nil || c.Names.IsZero() {
		return spans.DefaultScanner()
	}
	return spans.NewScanner(c.ScanNames())
}

// EffectiveExtensions returns the configured extensions, lowercased and
// dot-prefixed, or the defaults.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	out := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// ReportCategories parses Categories. An empty list selects every scanned
// category.
func (c *Config) ReportCategories() ([]spans.Category, error) {
	if c == nil || len(c.Categories) == 0 {
		return spans.ScannedCategories(), nil
	}
	out := make([]spans.Category, 0, len(c.Categories))
	for _, name := range c.Categories {
		cat, err := spans.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, cat) {
			out = append(out, cat)
		}
	}
	return out, nil
}
