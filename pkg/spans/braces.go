package spans

import "bytes"

// braces resolves brace constructs in buf[lo:hi], innermost first, until a
// round makes no progress. Templates are only matched once no parameter or
// parser function is left to find, so an outer call is never claimed as a
// template before its inner constructs are masked.
func (st *scan) braces(lo, hi int) {
	for {
		st.maskSingleBraces(lo, hi)
		if st.parameters(lo, hi) {
			continue
		}
		if st.parserFunctions(lo, hi) {
			continue
		}
		if !st.templates(lo, hi) {
			return
		}
	}
}

// maskSingleBraces masks every brace with no brace of the same kind next to
// it. Such a brace can never be part of a "{{" or "}}" delimiter, e.g. the
// "{|" and "|}" of table markup. Positions are decided on the unmasked
// buffer.
func (st *scan) maskSingleBraces(lo, hi int) {
	var lone []int
	for i := lo; i < hi; i++ {
		b := st.buf[i]
		if b != '{' && b != '}' {
			continue
		}
		if (i > lo && st.buf[i-1] == b) || (i+1 < hi && st.buf[i+1] == b) {
			continue
		}
		lone = append(lone, i)
	}
	for _, i := range lone {
		st.buf[i] = maskFill
	}
}

// closingRun returns the offset of the first brace at or after k in
// buf[k:hi], or hi.
func (st *scan) closingRun(k, hi int) int {
	for k < hi && st.buf[k] != '{' && st.buf[k] != '}' {
		k++
	}
	return k
}

func (st *scan) hasAt(k, hi int, delim string) bool {
	return k+len(delim) <= hi && string(st.buf[k:k+len(delim)]) == delim
}

// parameters records "{{{...}}}" with brace-free contents.
func (st *scan) parameters(lo, hi int) bool {
	progress := false
	for i := lo; i+6 <= hi; {
		if !st.hasAt(i, hi, "{{{") {
			i++
			continue
		}
		k := st.closingRun(i+3, hi)
		if !st.hasAt(k, hi, "}}}") {
			i++
			continue
		}
		st.record(Parameter, i, k+3)
		st.fill(i, i+3, maskFill)
		st.fill(k, k+3, maskFill)
		progress = true
		i = k + 3
	}
	return progress
}

// parserFunctions records "{{name:...}}" where name is '#'-prefixed or a
// known parser function.
func (st *scan) parserFunctions(lo, hi int) bool {
	progress := false
	for i := lo; i+4 <= hi; {
		if !st.hasAt(i, hi, "{{") {
			i++
			continue
		}
		colon, ok := st.parserFunctionName(i+2, hi)
		if !ok {
			i++
			continue
		}
		k := st.closingRun(colon+1, hi)
		if !st.hasAt(k, hi, "}}") {
			i++
			continue
		}
		st.record(ParserFunction, i, k+2)
		st.fill(i, i+2, maskFill)
		st.fill(k, k+2, maskFill)
		progress = true
		i = k + 2
	}
	return progress
}

// parserFunctionName reads optional whitespace and a function name at k and
// returns the offset of the colon that ends it.
func (st *scan) parserFunctionName(k, hi int) (int, bool) {
	for k < hi && isSpace(st.buf[k]) {
		k++
	}
	if k >= hi {
		return 0, false
	}
	start := k
	if st.buf[k] == '#' {
		k++
		for k < hi && !isSpace(st.buf[k]) && st.buf[k] != ':' && st.buf[k] != '{' && st.buf[k] != '}' {
			k++
		}
		if k == start+1 || k >= hi || st.buf[k] != ':' {
			return 0, false
		}
		return k, true
	}
	colon := bytes.IndexByte(st.buf[k:hi], ':')
	if colon < 0 {
		return 0, false
	}
	colon += k
	if !st.names.isFunction(st.buf[start:colon]) {
		return 0, false
	}
	return colon, true
}

// templates records "{{...}}" with brace-free contents and a valid name.
// Double braces around an invalid name are masked without being recorded,
// and poison any template name they end up in.
func (st *scan) templates(lo, hi int) bool {
	progress := false
	for i := lo; i+4 <= hi; {
		if !st.hasAt(i, hi, "{{") {
			i++
			continue
		}
		k := st.closingRun(i+2, hi)
		if !st.hasAt(k, hi, "}}") {
			i++
			continue
		}
		fill := byte(maskFill)
		if validTemplateName(st.buf[i+2 : k]) {
			st.record(Template, i, k+2)
		} else {
			fill = opaqueFill
		}
		st.fill(i, i+2, fill)
		st.fill(k, k+2, fill)
		progress = true
		i = k + 2
	}
	return progress
}

// validTemplateName checks the text before the first '|' of a template body.
func validTemplateName(body []byte) bool {
	name := body
	if pipe := bytes.IndexByte(body, '|'); pipe >= 0 {
		name = body[:pipe]
	}
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return false
	}
	meaningful := false
	for _, b := range name {
		if b < 0x20 {
			return false
		}
		switch b {
		case '[', ']', '<', '>':
			return false
		case '_':
		default:
			if !isSpace(b) {
				meaningful = true
			}
		}
	}
	return meaningful
}
