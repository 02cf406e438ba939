package wikitext

import (
	"slices"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// caller is the window of the node an edit was made through, captured
// before the edit, and the table entry behind it.
type caller struct {
	start, end int
	self       *spans.Span
}

func (n *Node) caller() caller {
	start, end, _ := n.bounds()
	return caller{start: start, end: end, self: n.span()}
}

// encloses reports whether sp is the caller's own span or one that starts
// at or before it and ends at or after it. The root encloses nothing, and
// an empty caller window is enclosed only by its own span.
func (c caller) encloses(sp *spans.Span) bool {
	switch {
	case c.self == nil:
		return false
	case sp == c.self:
		return true
	case c.start == c.end:
		return false
	}
	return sp.Start <= c.start && sp.End >= c.end
}

// replace overwrites buf[start:stop] with text and updates the table.
func (d *Document) replace(c caller, start, stop int, text string) {
	d.close(c, start, stop)
	d.rewrite(start, stop, text)
	switch delta := len(text) - (stop - start); {
	case delta > 0:
		d.extend(c, stop, delta)
	case delta < 0:
		d.shrink(start+len(text), stop)
	}
	d.absorb(start, text)
}

// insert places text at index.
func (d *Document) insert(c caller, index int, text string) {
	if text == "" {
		return
	}
	d.rewrite(index, index, text)
	d.extend(c, index, len(text))
	d.absorb(index, text)
}

// remove deletes buf[start:stop].
func (d *Document) remove(start, stop int) {
	if start == stop {
		return
	}
	d.rewrite(start, stop, "")
	d.shrink(start, stop)
	d.table.Normalize()
	d.version++
}

func (d *Document) rewrite(start, stop int, text string) {
	d.buf = slices.Replace(d.buf, start, stop, []byte(text)...)
}

// absorb scans the literal inserted text and merges its spans at offset.
func (d *Document) absorb(offset int, text string) {
	d.table.Normalize()
	if text != "" {
		d.table.Merge(d.scanner.Scan([]byte(text)), offset)
	}
	d.version++
}

// close kills every span inside [start, stop) except those equal to the
// caller's window, since their text is about to be replaced wholesale.
func (d *Document) close(c caller, start, stop int) {
	for _, sp := range d.table.Live() {
		if sp.Start < start || sp.Start >= stop || sp.End > stop {
			continue
		}
		if sp.Start == c.start && sp.End == c.end {
			continue
		}
		sp.Kill()
	}
}

// extend accounts for length bytes inserted at index.
//
// A span starting after index moves right; a span straddling index grows.
// At a span's start the span keeps its start only if it encloses the
// caller, so text inserted at a node's own start becomes part of that node
// and of its parents, while a sibling starting there moves right. At a
// span's end the span grows only if it encloses the caller and ends where
// the caller ends, so text appended through a node becomes part of it.
func (d *Document) extend(c caller, index, length int) {
	for _, sp := range d.table.Live() {
		enclosing := c.encloses(sp)
		grows := index < sp.End || (index == sp.End && enclosing && sp.End == c.end)
		if !grows {
			continue
		}
		if index < sp.Start || (index == sp.Start && !enclosing) {
			sp.Start += length
		}
		sp.End += length
	}
}

// shrink accounts for the removal of [rmstart, rmend). Spans after the
// range move left, spans inside it die and spans overlapping it are clipped.
func (d *Document) shrink(rmstart, rmend int) {
	removed := rmend - rmstart
	for _, sp := range d.table.Live() {
		switch {
		case rmend <= sp.Start:
			sp.Start -= removed
			sp.End -= removed
		case rmstart <= sp.Start && sp.End <= rmend:
			sp.Kill()
		case rmstart <= sp.Start:
			sp.Start = rmstart
			sp.End -= removed
		case sp.End <= rmstart:
		case sp.End <= rmend:
			sp.End = rmstart
		default:
			sp.End -= removed
		}
	}
}
