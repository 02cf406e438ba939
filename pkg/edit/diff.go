package edit

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind classifies a line of a unified diff.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Added is a line only in the edited text.
	Added

	// Removed is a line only in the original text.
	Removed
)

// prefix is the unified diff marker for the kind.
func (k LineKind) prefix() byte {
	switch k {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Line numbers are
// 1-based.
type Hunk struct {
	OldStart, OldLines int
	NewStart, NewLines int
	Lines              []Line
}

// Patch is a unified diff between two versions of one document.
type Patch struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Diff compares before and after line by line. It returns nil when the two
// have the same lines.
func Diff(path string, before, after []byte) *Patch {
	a, b := lines(before), lines(after)
	ops := lineOps(a, b)

	var changes [][2]int
	for i := 0; i < len(ops); {
		if ops[i].Kind == Context {
			i++
			continue
		}
		j := i
		for j < len(ops) && ops[j].Kind != Context {
			j++
		}
		changes = append(changes, [2]int{i, j})
		i = j
	}
	if len(changes) == 0 {
		return nil
	}

	p := &Patch{Path: path}
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j][0]-changes[j-1][1] <= 2*contextLines {
			j++
		}
		p.Hunks = append(p.Hunks, hunk(ops, changes[i][0], changes[j-1][1]))
		i = j
	}
	for _, op := range ops {
		switch op.Kind {
		case Added:
			p.Added++
		case Removed:
			p.Removed++
		}
	}
	return p
}

// String renders the patch in unified diff format with a git header.
func (p *Patch) String() string {
	if p == nil || len(p.Hunks) == 0 {
		return ""
	}
	path := strings.TrimPrefix(p.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n", path, path, path, path)
	for _, h := range p.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			sb.WriteByte(l.Kind.prefix())
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// lineOps turns a longest common subsequence of a and b into a line script.
func lineOps(a, b []string) []Line {
	// suffix[i][j] is the LCS length of a[i:] and b[j:].
	suffix := make([][]int, len(a)+1)
	for i := range suffix {
		suffix[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, Line{Kind: Context, Text: a[i]})
			i++
			j++
		case j == len(b) || (i < len(a) && suffix[i+1][j] >= suffix[i][j+1]):
			ops = append(ops, Line{Kind: Removed, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Kind: Added, Text: b[j]})
			j++
		}
	}
	return ops
}

// hunk builds the hunk covering ops[from:to] plus context.
func hunk(ops []Line, from, to int) Hunk {
	lo := max(from-contextLines, 0)
	hi := min(to+contextLines, len(ops))

	h := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:lo] {
		if op.Kind != Added {
			h.OldStart++
		}
		if op.Kind != Removed {
			h.NewStart++
		}
	}
	h.Lines = append(h.Lines, ops[lo:hi]...)
	for _, op := range h.Lines {
		if op.Kind != Added {
			h.OldLines++
		}
		if op.Kind != Removed {
			h.NewLines++
		}
	}
	return h
}
