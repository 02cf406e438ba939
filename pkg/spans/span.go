// Package spans classifies the constructs of wikitext into byte ranges.
//
// The scanner works on a disposable copy of the text. Each construct it
// recognises is recorded as a half-open Span and then masked in the copy so
// that enclosing constructs can be found on a later pass. Masking never
// changes the length of the copy, so every recorded offset is valid in the
// original text.
package spans

import (
	"fmt"
	"strings"
)

// Category names a kind of construct.
type Category string

// Scanned categories.
const (
	Template       Category = "Template"
	ParserFunction Category = "ParserFunction"
	Parameter      Category = "Parameter"
	WikiLink       Category = "WikiLink"
	Comment        Category = "Comment"
	ExtensionTag   Category = "ExtensionTag"
)

// Categories registered lazily by the query layer.
const (
	Section  Category = "Section"
	Argument Category = "Argument"
)

// ScannedCategories returns the categories produced by Scan, in report order.
func ScannedCategories() []Category {
	return []Category{Template, ParserFunction, Parameter, WikiLink, Comment, ExtensionTag}
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(name string) (Category, error) {
	for _, c := range append(ScannedCategories(), Section, Argument) {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// Span is a half-open byte range [Start, End) into a shared buffer.
//
// A dead span has been closed or shrunk to nothing by an edit. It keeps its
// slot in its List but is excluded from every query.
type Span struct {
	Start int
	End   int

	dead bool
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Within reports whether the span lies inside [start, end].
func (s Span) Within(start, end int) bool {
	return s.Start >= start && s.End <= end
}

// Dead reports whether the span has been killed.
func (s Span) Dead() bool {
	return s.dead
}

// Kill marks the span dead. It cannot be revived.
func (s *Span) Kill() {
	s.dead = true
	s.Start = 0
	s.End = 0
}

// String implements fmt.Stringer.
func (s Span) String() string {
	if s.dead {
		return "[dead]"
	}
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// compareSpans orders spans by start, then by end.
func compareSpans(a, b *Span) int {
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.End - b.End
}
