package edit_test

import (
	"testing"

	"github.com/yaklabco/wikispan/pkg/edit"
	"github.com/yaklabco/wikispan/pkg/spans"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

func FuzzApply(f *testing.F) {
	f.Add("{{a|{{b}}}}", 2, 3, "x")
	f.Add("[[a|{{z]]}}", 0, 11, "")
	f.Add("x<!--y-->z", 1, 1, "{{t}}")
	f.Add("<ref>{{a}}</ref>", 5, 10, "[[b]]")

	f.Fuzz(func(t *testing.T, content string, start, stop int, text string) {
		n := len(content)
		if n == 0 {
			return
		}
		start = ((start % (n + 1)) + n + 1) % (n + 1)
		stop = ((stop % (n + 1)) + n + 1) % (n + 1)
		if stop < start {
			start, stop = stop, start
		}

		edits := []edit.Edit{{Start: start, Stop: stop, Text: text}}
		root := wikitext.Parse(content)
		if err := edit.Apply(root, edits); err != nil {
			t.Fatalf("apply: %v", err)
		}

		want := string(edit.Splice([]byte(content), edits))
		if root.String() != want {
			t.Fatalf("document = %q, splice = %q", root.String(), want)
		}
		for _, c := range spans.ScannedCategories() {
			for _, sp := range root.Document().Spans(c) {
				if sp.Start < 0 || sp.End > root.Len() || sp.Start > sp.End {
					t.Fatalf("%s span %v outside [0,%d)", c, sp, root.Len())
				}
			}
		}
	})
}
