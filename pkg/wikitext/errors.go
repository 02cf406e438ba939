package wikitext

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by node operations.
var (
	// ErrDeadIndex is returned when a node's text was closed or deleted by an
	// earlier edit.
	ErrDeadIndex = errors.New("dead index")

	// ErrIndexOutOfRange is matched by every *RangeError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnsupported is returned for edits that have no propagation rule.
	ErrUnsupported = errors.New("unsupported operation")
)

// RangeError reports an index or slice bound outside a node's window.
type RangeError struct {
	// Op is the operation that was attempted.
	Op string

	// Index is the offending index, relative to the node.
	Index int

	// Length is the length of the node's window.
	Length int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: index %d out of range for length %d", e.Op, e.Index, e.Length)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// resolveIndex converts a possibly negative index into [0, length).
func resolveIndex(op string, index, length int) (int, error) {
	i := index
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, &RangeError{Op: op, Index: index, Length: length}
	}
	return i, nil
}

// resolveSlice converts possibly negative slice bounds into
// 0 <= start <= stop <= length.
func resolveSlice(op string, start, stop, length int) (int, int, error) {
	s, e := start, stop
	if s < 0 {
		s += length
	}
	if e < 0 {
		e += length
	}
	if s < 0 || s > length {
		return 0, 0, &RangeError{Op: op, Index: start, Length: length}
	}
	if e < 0 || e > length {
		return 0, 0, &RangeError{Op: op, Index: stop, Length: length}
	}
	if e < s {
		return 0, 0, fmt.Errorf("stop %d precedes start %d: %w",
			stop, start, &RangeError{Op: op, Index: stop, Length: length})
	}
	return s, e, nil
}
