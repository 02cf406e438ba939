package edit

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the document.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.Stop, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.Stop, e.Second.Start, e.Second.Stop)
}

// Validate checks every edit range against a document of length n and
// returns the first problem found.
func Validate(edits []Edit, n int) error {
	for _, e := range edits {
		switch {
		case e.Start < 0:
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		case e.Stop < e.Start:
			return &ValidationError{Edit: e, Message: "stop offset is before start offset"}
		case e.Stop > n:
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("stop offset %d exceeds document length %d", e.Stop, n),
			}
		}
	}
	return nil
}

// Sort orders edits by start, then stop. Inserts at the same offset keep
// their batch order.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Stop, b.Stop)
	})
}

// DetectConflicts returns the first overlap in sorted edits.
func DetectConflicts(edits []Edit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].Start < edits[i-1].Stop {
			return &ConflictError{First: edits[i-1], Second: edits[i]}
		}
	}
	return nil
}

// Prepare validates a copy of edits, sorts it and rejects overlaps.
func Prepare(edits []Edit, n int) ([]Edit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, n); err != nil {
		return nil, err
	}
	sorted := slices.Clone(edits)
	Sort(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// PrepareLenient is Prepare without the overlap error: overlapping
// deletions are merged into one and any other edit that overlaps an
// earlier one is skipped. It returns the edits to apply, the skipped ones
// and the number of merges.
func PrepareLenient(edits []Edit, n int) ([]Edit, []Edit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := Validate(edits, n); err != nil {
		return nil, nil, 0, err
	}
	sorted := slices.Clone(edits)
	Sort(sorted)

	accepted := make([]Edit, 0, len(sorted))
	var skipped []Edit
	merged := 0
	current := sorted[0]
	for _, e := range sorted[1:] {
		switch {
		case e.Start >= current.Stop:
			accepted = append(accepted, current)
			current = e
		case current.Text == "" && e.Text == "":
			current = Edit{Start: current.Start, Stop: max(current.Stop, e.Stop)}
			merged++
		default:
			skipped = append(skipped, e)
		}
	}
	accepted = append(accepted, current)
	return accepted, skipped, merged, nil
}
