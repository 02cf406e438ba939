package edit

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// Apply performs prepared edits through root, last edit first, so earlier
// offsets stay valid. root must be a document's root view.
func Apply(root *wikitext.Node, edits []Edit) error {
	if !root.IsRoot() {
		return fmt.Errorf("apply edits: %w", wikitext.ErrUnsupported)
	}
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		var err error
		switch {
		case e.IsInsert():
			err = root.Insert(e.Start, e.Text)
		case e.Text == "":
			err = root.DeleteSlice(e.Start, e.Stop)
		default:
			err = root.SetSlice(e.Start, e.Stop, e.Text)
		}
		if err != nil {
			return fmt.Errorf("apply edit [%d:%d]: %w", e.Start, e.Stop, err)
		}
	}
	return nil
}

// Splice applies prepared edits to content without a document. It returns
// the same text Apply produces.
func Splice(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}
	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)
	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.Stop
	}
	out.Write(content[cursor:])
	return out.Bytes()
}
