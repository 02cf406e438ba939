package spans

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tagMatch is a recognised extension tag region.
type tagMatch struct {
	start, end               int
	contentStart, contentEnd int
	kind                     tagKind
	selfClosing              bool
}

// tags records and masks extension tag regions in buf[lo:hi]. The pass is
// repeated until it finds nothing, since a failed outer candidate can match
// once the same-named region inside it has been masked.
func (st *scan) tags(lo, hi int) {
	for {
		matched := false
		for i := lo; i < hi; {
			if st.buf[i] != '<' {
				i++
				continue
			}
			m, ok := st.matchTag(i, hi)
			if !ok {
				i++
				continue
			}
			matched = true
			if m.kind == tagParsable && !m.selfClosing {
				st.parse(m.contentStart, m.contentEnd)
			}
			st.record(ExtensionTag, m.start, m.end)
			st.fill(m.start, m.end, maskFill)
			i = m.end
		}
		if !matched {
			return
		}
	}
}

func (st *scan) matchTag(i, hi int) (tagMatch, bool) {
	name, j := readTagName(st.buf, i+1, hi)
	if name == "" {
		return tagMatch{}, false
	}
	kind := st.names.tag(name)
	if kind == tagNone {
		return tagMatch{}, false
	}
	gt := bytes.IndexByte(st.buf[j:hi], '>')
	if gt < 0 {
		return tagMatch{}, false
	}
	gt += j
	if st.buf[gt-1] == '/' {
		return tagMatch{start: i, end: gt + 1, contentStart: gt, contentEnd: gt, kind: kind, selfClosing: true}, true
	}

	contentStart := gt + 1
	for k := contentStart; k < hi; k++ {
		if st.buf[k] != '<' {
			continue
		}
		if end, ok := matchEndTag(st.buf, k, hi, name); ok {
			return tagMatch{start: i, end: end, contentStart: contentStart, contentEnd: k, kind: kind}, true
		}
		inner, n := readTagName(st.buf, k+1, hi)
		if inner == "" || !strings.EqualFold(inner, name) {
			continue
		}
		innerGT := bytes.IndexByte(st.buf[n:hi], '>')
		if innerGT < 0 {
			continue
		}
		innerGT += n
		if st.buf[innerGT-1] == '/' {
			k = innerGT
			continue
		}
		// A nested region of the same name is matched first.
		return tagMatch{}, false
	}
	return tagMatch{}, false
}

// matchEndTag matches "</name\s*>" at k and returns the offset after it.
func matchEndTag(buf []byte, k, hi int, name string) (int, bool) {
	if k+1 >= hi || buf[k+1] != '/' {
		return 0, false
	}
	got, j := readTagName(buf, k+2, hi)
	if got == "" || !strings.EqualFold(got, name) {
		return 0, false
	}
	for j < hi && isSpace(buf[j]) {
		j++
	}
	if j < hi && buf[j] == '>' {
		return j + 1, true
	}
	return 0, false
}

// readTagName reads a run of letters, digits and underscores starting at i.
func readTagName(buf []byte, i, hi int) (string, int) {
	j := i
	for j < hi {
		r, size := utf8.DecodeRune(buf[j:hi])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		j += size
	}
	return string(buf[i:j]), j
}

// isSpace matches the ASCII whitespace class.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
