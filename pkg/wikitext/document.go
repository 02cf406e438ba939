// Package wikitext exposes every construct of a wikitext document as a live,
// editable view.
//
// A Document owns one shared buffer and one span table. Every Node is a
// lightweight handle (category, slot) into that table, so an edit made
// through any node is immediately visible through every other node of the
// same document. A node whose text was overwritten or deleted becomes dead:
// reading it yields "", and editing it fails with ErrDeadIndex.
//
// A Document is not safe for concurrent use.
package wikitext

import (
	"slices"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// Document is the shared state behind every node of one parse.
type Document struct {
	buf     []byte
	table   *spans.Table
	scanner *spans.Scanner
	version uint64
	root    *Node
}

// Option configures Parse.
type Option func(*options)

type options struct {
	scanner *spans.Scanner
}

// WithNames scans with the given name sets instead of the built-in ones.
func WithNames(names spans.Names) Option {
	return func(o *options) {
		o.scanner = spans.NewScanner(names)
	}
}

// WithScanner reuses an existing scanner.
func WithScanner(sc *spans.Scanner) Option {
	return func(o *options) {
		if sc != nil {
			o.scanner = sc
		}
	}
}

// Parse scans text and returns the root node of a new document.
func Parse(text string, opts ...Option) *Node {
	o := options{scanner: spans.DefaultScanner()}
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{
		buf:     []byte(text),
		scanner: o.scanner,
	}
	doc.table = doc.scanner.Scan(doc.buf)
	doc.root = &Node{doc: doc}
	return doc.root
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.root
}

// String returns the full text.
func (d *Document) String() string {
	return string(d.buf)
}

// Bytes returns a copy of the full text.
func (d *Document) Bytes() []byte {
	return slices.Clone(d.buf)
}

// Len returns the length of the text in bytes.
func (d *Document) Len() int {
	return len(d.buf)
}

// Version is incremented by every edit.
func (d *Document) Version() uint64 {
	return d.version
}

// Spans returns copies of the live spans of category c in order.
func (d *Document) Spans(c spans.Category) []spans.Span {
	l, ok := d.table.Lookup(c)
	if !ok {
		return nil
	}
	return l.Spans()
}

// Counts returns the number of live spans per scanned category.
func (d *Document) Counts() map[spans.Category]int {
	out := make(map[spans.Category]int)
	for _, c := range spans.ScannedCategories() {
		out[c] = d.table.Count(c)
	}
	return out
}

// node returns the handle for slot of category c.
func (d *Document) node(c spans.Category, slot int) *Node {
	return &Node{doc: d, cat: c, slot: slot}
}
