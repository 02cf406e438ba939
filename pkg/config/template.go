package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// commentWrapWidth is the maximum width of a wrapped list in a template.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists the built-in name sets as comments.
	Full bool
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# wikispan configuration
# Every list below is added to the built-in one.

# Extension tags whose contents are scanned as wikitext
# parsable_tags:
#   - mytag

# Extension tags whose contents are opaque
# unparsable_tags:
#   - rawtag

# Parser functions accepted without a leading '#'
# parser_functions:
#   - MYFUNCTION

# URL schemes that keep "[[" from opening a link
# external_link_schemes:
#   - "gemini://"

# File extensions scanned when walking directories
extensions:
  - .wiki
  - .wikitext
  - .mediawiki
  - .mw

# Categories to report, case-insensitive (empty = all):
# Template, ParserFunction, Parameter, WikiLink, Comment, ExtensionTag
# categories: []

# File patterns to ignore (glob patterns)
# ignore:
#   - "archive/**"

# Number of parallel workers (0 = auto)
# jobs: 0
`)

	if opts.Full {
		defaults := spans.DefaultNames()
		buf.WriteString("\n# Built-in name sets\n")
		writeList(&buf, "parsable_tags", defaults.ParsableTags)
		writeList(&buf, "unparsable_tags", defaults.UnparsableTags)
		writeList(&buf, "parser_functions", defaults.ParserFunctions)
		writeList(&buf, "external_link_schemes", defaults.ExternalLinkSchemes)
	}

	return buf.Bytes()
}

func writeList(buf *bytes.Buffer, key string, items []string) {
	fmt.Fprintf(buf, "#\n# %s:\n#   %s\n", key, wrapComment(strings.Join(items, ", "), commentWrapWidth))
}

// wrapComment wraps text to maxWidth, continuing on indented comment lines.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n#   ")
}

// DefaultTemplateHeader returns the header written above generated configs.
func DefaultTemplateHeader() string {
	return "# wikispan configuration"
}
