package wikitext

import (
	"github.com/yaklabco/wikispan/pkg/spans"
)

// Node is a live view of a byte range of a document.
//
// The root node always covers the whole text. Every other node is bound to
// one span of the document's table and follows it through edits.
type Node struct {
	doc  *Document
	cat  spans.Category
	slot int

	cache shadowCache
}

// IsRoot reports whether n is the document's root node.
func (n *Node) IsRoot() bool {
	return n.cat == ""
}

// Document returns the document n belongs to.
func (n *Node) Document() *Document {
	return n.doc
}

// Category returns the node's category. The root node has none.
func (n *Node) Category() spans.Category {
	return n.cat
}

// Span returns the node's window as absolute offsets. A dead node returns
// (0, 0).
func (n *Node) Span() (int, int) {
	start, end, _ := n.bounds()
	return start, end
}

// Dead reports whether the node's text was closed or deleted.
func (n *Node) Dead() bool {
	_, _, ok := n.bounds()
	return !ok
}

// Len returns the length of the node's text in bytes.
func (n *Node) Len() int {
	start, end, _ := n.bounds()
	return end - start
}

// String returns the node's text, or "" for a dead node.
func (n *Node) String() string {
	start, end, ok := n.bounds()
	if !ok {
		return ""
	}
	return string(n.doc.buf[start:end])
}

// At returns the byte at index i of the node's text.
func (n *Node) At(i int) (byte, error) {
	start, end, err := n.window()
	if err != nil {
		return 0, err
	}
	idx, err := resolveIndex("at", i, end-start)
	if err != nil {
		return 0, err
	}
	return n.doc.buf[start+idx], nil
}

// Slice returns the node's text between start and stop.
func (n *Node) Slice(start, stop int) (string, error) {
	ws, we, err := n.window()
	if err != nil {
		return "", err
	}
	s, e, err := resolveSlice("slice", start, stop, we-ws)
	if err != nil {
		return "", err
	}
	return string(n.doc.buf[ws+s : ws+e]), nil
}

// SubSpans returns the live spans of category c inside the node's window.
func (n *Node) SubSpans(c spans.Category) []spans.Span {
	start, end, ok := n.bounds()
	if !ok {
		return nil
	}
	l, found := n.doc.table.Lookup(c)
	if !found {
		return nil
	}
	var out []spans.Span
	for _, sp := range l.Within(start, end) {
		out = append(out, *sp)
	}
	return out
}

// span returns the table entry behind n, or nil for the root.
func (n *Node) span() *spans.Span {
	if n.IsRoot() {
		return nil
	}
	l, ok := n.doc.table.Lookup(n.cat)
	if !ok {
		return nil
	}
	return l.Slot(n.slot)
}

// bounds returns the node's window and whether the node is alive.
func (n *Node) bounds() (int, int, bool) {
	if n.IsRoot() {
		return 0, len(n.doc.buf), true
	}
	sp := n.span()
	if sp == nil || sp.Dead() {
		return 0, 0, false
	}
	return sp.Start, sp.End, true
}

// window is bounds for operations that must fail on a dead node.
func (n *Node) window() (int, int, error) {
	start, end, ok := n.bounds()
	if !ok {
		return 0, 0, ErrDeadIndex
	}
	return start, end, nil
}

// children returns nodes for the live spans of c inside n, excluding n.
func (n *Node) children(c spans.Category) []*Node {
	start, end, ok := n.bounds()
	if !ok {
		return nil
	}
	l, found := n.doc.table.Lookup(c)
	if !found {
		return nil
	}
	var out []*Node
	for slot := range l.Within(start, end) {
		if c == n.cat && slot == n.slot {
			continue
		}
		out = append(out, n.doc.node(c, slot))
	}
	return out
}
