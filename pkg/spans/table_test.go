package spans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikispan/pkg/spans"
)

func TestList_InsertKeepsOrderAndSlots(t *testing.T) {
	t.Parallel()

	var l spans.List
	a, added := l.Insert(10, 20)
	require.True(t, added)
	b, _ := l.Insert(0, 5)
	c, _ := l.Insert(10, 15)

	assert.Equal(t, []spans.Span{{Start: 0, End: 5}, {Start: 10, End: 15}, {Start: 10, End: 20}}, l.Spans())
	assert.Equal(t, 10, l.Slot(a).Start)
	assert.Equal(t, 0, l.Slot(b).Start)
	assert.Equal(t, 15, l.Slot(c).End)
	assert.Nil(t, l.Slot(99))
}

func TestList_InsertDeduplicatesLiveSpans(t *testing.T) {
	t.Parallel()

	var l spans.List
	first, _ := l.Insert(3, 7)
	again, added := l.Insert(3, 7)

	assert.False(t, added)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, l.Len())

	l.Slot(first).Kill()
	l.Normalize()
	fresh, added := l.Insert(3, 7)
	assert.True(t, added)
	assert.NotEqual(t, first, fresh)
}

func TestList_NormalizeDropsDeadAndResorts(t *testing.T) {
	t.Parallel()

	var l spans.List
	a, _ := l.Insert(0, 4)
	b, _ := l.Insert(5, 9)
	c, _ := l.Insert(10, 12)

	l.Slot(a).Kill()
	l.Slot(c).Start, l.Slot(c).End = 1, 2
	l.Normalize()

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []spans.Span{{Start: 1, End: 2}, {Start: 5, End: 9}}, l.Spans())
	assert.True(t, l.Slot(a).Dead())
	assert.Equal(t, 5, l.Slot(b).Start)
}

func TestList_Within(t *testing.T) {
	t.Parallel()

	var l spans.List
	l.Insert(0, 30)
	l.Insert(2, 8)
	l.Insert(9, 12)
	l.Insert(11, 40)

	var got []spans.Span
	for _, sp := range l.Within(2, 12) {
		got = append(got, *sp)
	}
	assert.Equal(t, []spans.Span{{Start: 2, End: 8}, {Start: 9, End: 12}}, got)

	var before []spans.Span
	for _, sp := range l.StartingAtOrBefore(2) {
		before = append(before, *sp)
	}
	assert.Equal(t, []spans.Span{{Start: 0, End: 30}, {Start: 2, End: 8}}, before)
}

func TestTable_Merge(t *testing.T) {
	t.Parallel()

	tbl := spans.NewTable()
	slot, _ := tbl.List(spans.Template).Insert(4, 9)

	other := spans.Scan([]byte("{{a}}[[b]]"))
	tbl.Merge(other, 4)

	assert.Equal(t, 1, tbl.Count(spans.Template))
	assert.Equal(t, 1, tbl.Count(spans.WikiLink))
	assert.Equal(t, 0, tbl.Count(spans.Comment))
	assert.Equal(t, spans.Span{Start: 4, End: 9}, *tbl.List(spans.Template).Slot(slot))
	assert.Equal(t, []spans.Category{spans.Template, spans.WikiLink}, tbl.Categories())
}

func TestSpan_Helpers(t *testing.T) {
	t.Parallel()

	sp := spans.Span{Start: 2, End: 6}
	assert.Equal(t, 4, sp.Len())
	assert.False(t, sp.IsEmpty())
	assert.True(t, sp.Contains(2))
	assert.False(t, sp.Contains(6))
	assert.True(t, sp.Within(0, 6))
	assert.Equal(t, "[2,6)", sp.String())

	sp.Kill()
	assert.True(t, sp.Dead())
	assert.Equal(t, "[dead]", sp.String())
	assert.True(t, sp.IsEmpty())
}

func TestNames_Merge(t *testing.T) {
	t.Parallel()

	merged := spans.Names{ParsableTags: []string{"poem", "ref"}}.
		Merge(spans.Names{ParsableTags: []string{"ref", "gallery"}})
	assert.Equal(t, []string{"gallery", "poem", "ref"}, merged.ParsableTags)
	assert.True(t, spans.Names{}.IsZero())
	assert.False(t, spans.DefaultNames().IsZero())
}
