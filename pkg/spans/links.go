package spans

import "slices"

// links records and masks internal links in buf[lo:hi] until a pass finds
// no more. Masking an inner link lets the enclosing one match next time.
func (st *scan) links(lo, hi int) {
	for {
		matched := false
		for i := lo; i+1 < hi; {
			if st.buf[i] != '[' || st.buf[i+1] != '[' {
				i++
				continue
			}
			end, ok := st.matchLink(i, hi)
			if !ok || !st.claimLink(i, end, hi) {
				i++
				continue
			}
			matched = true
			i = end
		}
		if !matched {
			return
		}
	}
}

// matchLink matches "[[target]]" or "[[target|text]]" at i.
func (st *scan) matchLink(i, hi int) (int, bool) {
	j := i + 2

	k := j
	for k < hi && st.buf[k] == ' ' {
		k++
	}
	if st.names.hasScheme(st.buf[k:hi]) {
		return 0, false
	}

	t := j
	for t < hi && isLinkTargetByte(st.buf[t]) {
		t++
	}
	if t == j || t >= hi {
		return 0, false
	}
	if st.buf[t] == ']' {
		if t+1 < hi && st.buf[t+1] == ']' {
			return t + 2, true
		}
		return 0, false
	}
	if st.buf[t] != '|' {
		return 0, false
	}
	for k := t + 1; k < hi; k++ {
		switch st.buf[k] {
		case ']':
			if k+1 < hi && st.buf[k+1] == ']' {
				return k + 2, true
			}
		case '[':
			if k+1 < hi && st.buf[k+1] == '[' {
				return 0, false
			}
		}
	}
	return 0, false
}

// claimLink resolves the braces inside the link at [start, end) and masks it.
// It reports false, leaving the buffer untouched, when a brace construct
// opened inside the link closes after it.
func (st *scan) claimLink(start, end, hi int) bool {
	saved := slices.Clone(st.buf[start:end])
	m := st.mark()

	st.braces(start, end)

	if open := st.leftoverOpener(start+2, end-2); open >= 0 && st.closesBeyond(open, end, hi) {
		copy(st.buf[start:end], saved)
		st.rollback(m)
		return false
	}

	st.buf[start], st.buf[start+1] = opaqueFill, opaqueFill
	st.buf[end-2], st.buf[end-1] = opaqueFill, opaqueFill
	for k := start + 2; k < end-2; k++ {
		if st.buf[k] == '{' || st.buf[k] == '}' {
			st.buf[k] = maskFill
		}
	}
	st.record(WikiLink, start, end)
	return true
}

// leftoverOpener returns the offset of the first "{{" in buf[lo:hi], or -1.
func (st *scan) leftoverOpener(lo, hi int) int {
	for k := lo; k+1 < hi; k++ {
		if st.buf[k] == '{' && st.buf[k+1] == '{' {
			return k
		}
	}
	return -1
}

// closesBeyond runs the brace pass on a scratch copy of buf[open:hi] and
// reports whether a construct starting inside the link ends after linkEnd.
func (st *scan) closesBeyond(open, linkEnd, hi int) bool {
	trial := &scan{
		buf:   slices.Clone(st.buf[:hi]),
		names: st.names,
		found: make(map[Category][]Span),
	}
	trial.braces(open, hi)
	for _, c := range []Category{Parameter, ParserFunction, Template} {
		for _, sp := range trial.found[c] {
			if sp.Start >= open && sp.Start < linkEnd && sp.End > linkEnd {
				return true
			}
		}
	}
	return false
}

// isLinkTargetByte reports whether b may appear in a link target.
func isLinkTargetByte(b byte) bool {
	if b < 0x20 {
		return false
	}
	switch b {
	case '|', '[', ']', '<', '>':
		return false
	}
	return true
}
