package wikitext

import (
	"slices"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// DefaultAncestorCategories are searched by Ancestors when no categories are
// given.
func DefaultAncestorCategories() []spans.Category {
	return []spans.Category{
		spans.Template, spans.ParserFunction, spans.Parameter,
		spans.WikiLink, spans.ExtensionTag,
	}
}

// Ancestors returns the nodes enclosing n, nearest first.
//
// A span encloses n when it starts at or before n and ends strictly after
// it, so a node is never its own ancestor.
func (n *Node) Ancestors(categories ...spans.Category) []*Node {
	start, end, ok := n.bounds()
	if !ok {
		return nil
	}
	if len(categories) == 0 {
		categories = DefaultAncestorCategories()
	}

	type candidate struct {
		node       *Node
		start, end int
	}
	var found []candidate
	for _, c := range categories {
		l, exists := n.doc.table.Lookup(c)
		if !exists {
			continue
		}
		for slot, sp := range l.StartingAtOrBefore(start) {
			if end < sp.End {
				found = append(found, candidate{node: n.doc.node(c, slot), start: sp.Start, end: sp.End})
			}
		}
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		if a.start != b.start {
			return b.start - a.start
		}
		return a.end - b.end
	})

	out := make([]*Node, len(found))
	for i, f := range found {
		out[i] = f.node
	}
	return out
}

// Parent returns the nearest ancestor, or nil.
func (n *Node) Parent(categories ...spans.Category) *Node {
	ancestors := n.Ancestors(categories...)
	if len(ancestors) == 0 {
		return nil
	}
	return ancestors[0]
}
