package wikitext

import "fmt"

// Edit is a slice assignment. Step 0 and 1 both mean a contiguous slice.
type Edit struct {
	Start int
	Stop  int
	Step  int
	Text  string
}

// Apply performs e on the node's text.
func (n *Node) Apply(e Edit) error {
	if e.Step != 0 && e.Step != 1 {
		return fmt.Errorf("slice step %d: %w", e.Step, ErrUnsupported)
	}
	return n.SetSlice(e.Start, e.Stop, e.Text)
}

// SetString replaces the node's whole text.
func (n *Node) SetString(text string) error {
	return n.SetSlice(0, n.Len(), text)
}

// SetSlice replaces the node's text between start and stop with text.
// Negative bounds count from the end of the node's text.
func (n *Node) SetSlice(start, stop int, text string) error {
	ws, we, err := n.window()
	if err != nil {
		return err
	}
	s, e, err := resolveSlice("set slice", start, stop, we-ws)
	if err != nil {
		return err
	}
	n.doc.replace(n.caller(), ws+s, ws+e, text)
	return nil
}

// SetAt replaces the byte at index i with text.
func (n *Node) SetAt(i int, text string) error {
	ws, we, err := n.window()
	if err != nil {
		return err
	}
	idx, err := resolveIndex("set", i, we-ws)
	if err != nil {
		return err
	}
	n.doc.replace(n.caller(), ws+idx, ws+idx+1, text)
	return nil
}

// Delete removes the node's whole text. The node itself dies.
func (n *Node) Delete() error {
	return n.DeleteSlice(0, n.Len())
}

// DeleteSlice removes the node's text between start and stop.
func (n *Node) DeleteSlice(start, stop int) error {
	ws, we, err := n.window()
	if err != nil {
		return err
	}
	s, e, err := resolveSlice("delete slice", start, stop, we-ws)
	if err != nil {
		return err
	}
	n.doc.remove(ws+s, ws+e)
	return nil
}

// DeleteAt removes the byte at index i.
func (n *Node) DeleteAt(i int) error {
	ws, we, err := n.window()
	if err != nil {
		return err
	}
	idx, err := resolveIndex("delete", i, we-ws)
	if err != nil {
		return err
	}
	n.doc.remove(ws+idx, ws+idx+1)
	return nil
}

// Insert inserts text before index i. Negative indices count from the end;
// indices beyond either end are clamped.
func (n *Node) Insert(i int, text string) error {
	ws, we, err := n.window()
	if err != nil {
		return err
	}
	length := we - ws
	if i < 0 {
		i = max(i+length, 0)
	}
	i = min(i, length)
	n.doc.insert(n.caller(), ws+i, text)
	return nil
}
