package wikitext

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// DefaultShadowCategories are masked by Shadow when no categories are given.
func DefaultShadowCategories() []spans.Category {
	return []spans.Category{
		spans.Template, spans.ParserFunction, spans.Parameter,
		spans.WikiLink, spans.ExtensionTag, spans.Comment,
	}
}

// shadowCache holds the last shadow computed for a node.
type shadowCache struct {
	valid   bool
	version uint64
	key     string
	text    []byte
}

// Shadow returns a copy of the node's text, of the same length, in which
// every span of the given categories is overwritten: comments with spaces,
// everything else with underscores. A span equal to a non-root node's own
// window stays visible.
func (n *Node) Shadow(categories ...spans.Category) []byte {
	start, end, ok := n.bounds()
	if !ok {
		return []byte{}
	}
	if len(categories) == 0 {
		categories = DefaultShadowCategories()
	}

	key := shadowKey(categories)
	if n.cache.valid && n.cache.version == n.doc.version && n.cache.key == key {
		return bytes.Clone(n.cache.text)
	}

	out := bytes.Clone(n.doc.buf[start:end])
	// Comments first: structural filler wins where the two nest.
	ordered := slices.Clone(categories)
	slices.SortStableFunc(ordered, func(a, b spans.Category) int {
		return boolRank(b == spans.Comment) - boolRank(a == spans.Comment)
	})
	for _, c := range ordered {
		l, found := n.doc.table.Lookup(c)
		if !found {
			continue
		}
		fill := byte('_')
		if c == spans.Comment {
			fill = ' '
		}
		for _, sp := range l.Within(start, end) {
			if !n.IsRoot() && sp.Start == start && sp.End == end {
				continue
			}
			for i := sp.Start; i < sp.End; i++ {
				out[i-start] = fill
			}
		}
	}

	n.cache = shadowCache{valid: true, version: n.doc.version, key: key, text: out}
	return bytes.Clone(out)
}

func shadowKey(categories []spans.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	slices.Sort(names)
	return strings.Join(slices.Compact(names), ",")
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
