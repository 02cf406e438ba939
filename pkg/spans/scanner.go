package spans

import (
	"bytes"
	"slices"
	"sync"
)

// Fill bytes written over recognised constructs.
const (
	commentFill = ' '
	maskFill    = '_'

	// opaqueFill replaces the delimiters of links and of double braces with
	// an invalid name. It is a control byte, so a template name or link
	// target that contains one is rejected.
	opaqueFill = 0x01
)

// Scanner finds construct spans in wikitext.
// A Scanner is immutable and safe for concurrent use.
type Scanner struct {
	names *nameIndex
}

// NewScanner creates a scanner for the given name sets.
// A zero Names value selects DefaultNames.
func NewScanner(names Names) *Scanner {
	if names.IsZero() {
		names = DefaultNames()
	}
	return &Scanner{names: compileNames(names)}
}

//nolint:gochecknoglobals // Memoized immutable scanner.
var defaultScanner = sync.OnceValue(func() *Scanner {
	return NewScanner(DefaultNames())
})

// DefaultScanner returns a shared scanner for DefaultNames.
func DefaultScanner() *Scanner {
	return defaultScanner()
}

// Scan classifies src and returns a table of every recognised construct.
// src is not modified.
func (s *Scanner) Scan(src []byte) *Table {
	return s.run(src).table()
}

// Scan classifies src with the default scanner.
func Scan(src []byte) *Table {
	return DefaultScanner().Scan(src)
}

// Mask returns a same-length copy of src with every recognised construct
// overwritten, comments with spaces and everything else with underscores.
// Delimiters the scanner consumed without recording a construct stay
// unprintable, so scanning the result finds nothing.
func (s *Scanner) Mask(src []byte) []byte {
	st := s.run(src)
	for _, sp := range st.found[Comment] {
		st.fill(sp.Start, sp.End, commentFill)
	}
	for c, list := range st.found {
		if c == Comment {
			continue
		}
		for _, sp := range list {
			st.fill(sp.Start, sp.End, maskFill)
		}
	}
	return st.buf
}

func (s *Scanner) run(src []byte) *scan {
	st := &scan{
		buf:   slices.Clone(src),
		names: s.names,
		found: make(map[Category][]Span),
	}
	st.comments()
	st.parse(0, len(st.buf))
	return st
}

// scan is the mutable state of one Scan call.
type scan struct {
	buf   []byte
	names *nameIndex
	found map[Category][]Span
}

func (st *scan) record(c Category, start, end int) {
	st.found[c] = append(st.found[c], Span{Start: start, End: end})
}

func (st *scan) fill(start, end int, b byte) {
	for i := start; i < end; i++ {
		st.buf[i] = b
	}
}

// parse runs the tag, link and brace passes on buf[lo:hi].
func (st *scan) parse(lo, hi int) {
	st.tags(lo, hi)
	st.links(lo, hi)
	st.braces(lo, hi)
}

// comments masks every HTML comment with spaces. A comment that is never
// closed runs to the end of the text.
func (st *scan) comments() {
	open := []byte("<!--")
	closing := []byte("-->")
	for i := 0; i < len(st.buf); {
		j := bytes.Index(st.buf[i:], open)
		if j < 0 {
			return
		}
		start := i + j
		end := len(st.buf)
		if k := bytes.Index(st.buf[start+len(open):], closing); k >= 0 {
			end = start + len(open) + k + len(closing)
		}
		st.record(Comment, start, end)
		st.fill(start, end, commentFill)
		i = end
	}
}

// mark is a snapshot of how many spans each category had recorded.
type mark map[Category]int

func (st *scan) mark() mark {
	m := make(mark, len(st.found))
	for c, list := range st.found {
		m[c] = len(list)
	}
	return m
}

// rollback discards spans recorded after m.
func (st *scan) rollback(m mark) {
	for c, list := range st.found {
		st.found[c] = list[:m[c]]
	}
}

func (st *scan) table() *Table {
	t := NewTable()
	for c, list := range st.found {
		l := t.List(c)
		for _, sp := range list {
			l.Insert(sp.Start, sp.End)
		}
	}
	return t
}
