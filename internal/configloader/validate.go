package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/spans"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "parsable_tags[2]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, formatList())
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means one per CPU)")
	}

	for i, name := range cfg.Categories {
		if _, err := spans.ParseCategory(name); err != nil {
			result.errorf(fmt.Sprintf("categories[%d]", i), name, "%v", err)
		}
	}
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
	for i, ext := range cfg.Extensions {
		if strings.TrimSpace(ext) == "" {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext, "extension must not be empty")
		}
	}

	validateNames(cfg.Names, result)

	return result
}

func validateNames(names spans.Names, result *ValidationResult) {
	lists := []struct {
		field  string
		values []string
	}{
		{"parsable_tags", names.ParsableTags},
		{"unparsable_tags", names.UnparsableTags},
		{"parser_functions", names.ParserFunctions},
		{"external_link_schemes", names.ExternalLinkSchemes},
	}
	for _, l := range lists {
		for i, v := range l.values {
			if strings.TrimSpace(v) == "" || strings.ContainsAny(v, " \t\n") {
				result.errorf(fmt.Sprintf("%s[%d]", l.field, i), v, "name must be non-empty and contain no whitespace")
			}
		}
	}

	for i, tag := range names.UnparsableTags {
		if slices.ContainsFunc(names.ParsableTags, func(p string) bool { return strings.EqualFold(p, tag) }) {
			result.warnf(fmt.Sprintf("unparsable_tags[%d]", i), tag, "tag %q is also parsable; it will be scanned as wikitext", tag)
		}
	}
	for i, fn := range names.ParserFunctions {
		if strings.HasPrefix(fn, "#") {
			result.warnf(fmt.Sprintf("parser_functions[%d]", i), fn, "%q starts with '#'; '#' names are always parser functions", fn)
		}
	}
}

func formatList() string {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
