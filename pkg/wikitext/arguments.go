package wikitext

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// Argument is one "|name=value" or "|value" part of a template or parser
// function call. Its text includes the leading separator.
type Argument struct{ *Node }

// arguments splits the call at the separators visible in its shadow and
// registers one Argument span per part. A parser function's first argument
// starts at the colon after its name.
func (n *Node) arguments(colonFirst bool) []*Argument {
	start, end, ok := n.bounds()
	if !ok || end-start < 4 {
		return nil
	}
	inner := n.Shadow()
	inner = inner[2 : len(inner)-2]

	var seps []int
	i := 0
	if colonFirst {
		colon := bytes.IndexByte(inner, ':')
		if colon < 0 {
			return nil
		}
		seps = append(seps, colon)
		i = colon + 1
	}
	for ; i < len(inner); i++ {
		if inner[i] == '|' {
			seps = append(seps, i)
		}
	}

	l := n.doc.table.List(spans.Argument)
	out := make([]*Argument, 0, len(seps))
	for k, sep := range seps {
		argEnd := len(inner)
		if k+1 < len(seps) {
			argEnd = seps[k+1]
		}
		slot, _ := l.Insert(start+2+sep, start+2+argEnd)
		out = append(out, &Argument{n.doc.node(spans.Argument, slot)})
	}
	return out
}

// equals returns the offset of the '=' separating a named argument's name
// from its value, or -1 for a positional argument.
func (a *Argument) equals() int {
	text := a.String()
	if !strings.HasPrefix(text, "|") {
		return -1
	}
	eq := bytes.IndexByte(a.Shadow()[1:], '=')
	if eq < 0 {
		return -1
	}
	return eq + 1
}

// Positional reports whether the argument has no explicit name.
func (a *Argument) Positional() bool {
	return a.equals() < 0
}

// Name returns the argument name. A positional argument is named by its
// 1-based position among the positional arguments of its call.
func (a *Argument) Name() string {
	if eq := a.equals(); eq >= 0 {
		return strings.TrimSpace(a.String()[1:eq])
	}

	parent := a.Parent(spans.Template, spans.ParserFunction)
	if parent == nil {
		return ""
	}
	position := 0
	for _, sibling := range parent.arguments(parent.Category() == spans.ParserFunction) {
		if sibling.Positional() {
			position++
		}
		if sibling.slot == a.slot {
			return strconv.Itoa(position)
		}
	}
	return ""
}

// Value returns the text after the '=' of a named argument, or after the
// separator of a positional one.
func (a *Argument) Value() string {
	text := a.String()
	if eq := a.equals(); eq >= 0 {
		return text[eq+1:]
	}
	if text == "" {
		return ""
	}
	return text[1:]
}

// SetValue replaces the argument's value, keeping its name.
func (a *Argument) SetValue(value string) error {
	start := 1
	if eq := a.equals(); eq >= 0 {
		start = eq + 1
	}
	return a.SetSlice(start, a.Len(), value)
}
