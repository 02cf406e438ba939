package spans

import (
	"cmp"
	"iter"
	"slices"
)

// List holds the spans of one category.
//
// Spans live in an append-only arena of slots, so a slot index stays valid for
// the lifetime of the list and can be used as a handle. The live order keeps
// the slots of live spans sorted by (Start, End).
type List struct {
	slots []*Span
	order []int
}

// Len returns the number of live spans.
func (l *List) Len() int {
	return len(l.order)
}

// Slot returns the span stored at slot, or nil if the slot does not exist.
func (l *List) Slot(slot int) *Span {
	if slot < 0 || slot >= len(l.slots) {
		return nil
	}
	return l.slots[slot]
}

// All yields the live spans in order together with their slots.
func (l *List) All() iter.Seq2[int, *Span] {
	return l.yieldRange(0, len(l.order))
}

// Spans returns copies of the live spans in order.
func (l *List) Spans() []Span {
	out := make([]Span, 0, len(l.order))
	for _, sp := range l.All() {
		out = append(out, *sp)
	}
	return out
}

// Within yields the live spans lying inside [start, end].
func (l *List) Within(start, end int) iter.Seq2[int, *Span] {
	lo := l.searchStart(start)
	hi := l.searchStart(end + 1)
	return func(yield func(int, *Span) bool) {
		for _, slot := range l.order[lo:hi] {
			sp := l.slots[slot]
			if sp.dead || sp.End > end {
				continue
			}
			if !yield(slot, sp) {
				return
			}
		}
	}
}

// StartingAtOrBefore yields the live spans whose Start is <= offset.
func (l *List) StartingAtOrBefore(offset int) iter.Seq2[int, *Span] {
	return l.yieldRange(0, l.searchStart(offset+1))
}

// Insert adds [start, end) to the list and returns its slot.
//
// If a live span with the same bounds already exists its slot is returned and
// added is false, so existing handles keep their identity.
func (l *List) Insert(start, end int) (slot int, added bool) {
	target := Span{Start: start, End: end}
	idx, found := slices.BinarySearchFunc(l.order, &target, func(s int, t *Span) int {
		return compareSpans(l.slots[s], t)
	})
	if found {
		for i := idx; i < len(l.order); i++ {
			sp := l.slots[l.order[i]]
			if compareSpans(sp, &target) != 0 {
				break
			}
			if !sp.dead {
				return l.order[i], false
			}
		}
	}

	slot = len(l.slots)
	l.slots = append(l.slots, &target)
	l.order = slices.Insert(l.order, idx, slot)
	return slot, true
}

// Normalize drops dead slots from the live order and restores sorting after
// spans were moved in place.
func (l *List) Normalize() {
	l.order = slices.DeleteFunc(l.order, func(slot int) bool {
		return l.slots[slot].dead
	})
	less := func(a, b int) int {
		return compareSpans(l.slots[a], l.slots[b])
	}
	if !slices.IsSortedFunc(l.order, less) {
		slices.SortStableFunc(l.order, less)
	}
}

func (l *List) yieldRange(lo, hi int) iter.Seq2[int, *Span] {
	return func(yield func(int, *Span) bool) {
		for _, slot := range l.order[lo:hi] {
			sp := l.slots[slot]
			if sp.dead {
				continue
			}
			if !yield(slot, sp) {
				return
			}
		}
	}
}

// searchStart returns the index of the first ordered slot with Start >= offset.
func (l *List) searchStart(offset int) int {
	idx, _ := slices.BinarySearchFunc(l.order, offset, func(s int, off int) int {
		return cmp.Compare(l.slots[s].Start, off)
	})
	return idx
}

// Table maps categories to span lists.
type Table struct {
	lists map[Category]*List
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{lists: make(map[Category]*List)}
}

// List returns the list for c, creating it when absent.
func (t *Table) List(c Category) *List {
	l, ok := t.lists[c]
	if !ok {
		l = &List{}
		t.lists[c] = l
	}
	return l
}

// Lookup returns the list for c without creating it.
func (t *Table) Lookup(c Category) (*List, bool) {
	l, ok := t.lists[c]
	return l, ok
}

// Categories returns the categories present in the table, sorted by name.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.lists))
	for c := range t.lists {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Count returns the number of live spans of category c.
func (t *Table) Count(c Category) int {
	if l, ok := t.lists[c]; ok {
		return l.Len()
	}
	return 0
}

// Live yields every live span in the table. Categories are visited in name
// order.
func (t *Table) Live() iter.Seq2[Category, *Span] {
	return func(yield func(Category, *Span) bool) {
		for _, c := range t.Categories() {
			for _, sp := range t.lists[c].All() {
				if !yield(c, sp) {
					return
				}
			}
		}
	}
}

// Merge inserts every live span of other, shifted by offset. Spans equal to
// an existing live span are skipped.
func (t *Table) Merge(other *Table, offset int) {
	for c, sp := range other.Live() {
		t.List(c).Insert(sp.Start+offset, sp.End+offset)
	}
}

// Normalize normalizes every list.
func (t *Table) Normalize() {
	for _, l := range t.lists {
		l.Normalize()
	}
}
