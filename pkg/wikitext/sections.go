package wikitext

import (
	"bytes"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// maxHeadingLevel is the deepest heading MediaWiki renders.
const maxHeadingLevel = 6

// Section is the lead section or a heading line and the text under it.
type Section struct{ *Node }

type heading struct {
	start int
	level int
}

// Sections returns the lead section followed by one section per heading.
// A section runs to the next heading of the same or a higher level, so
// sections nest. Headings are found in the shadow, so markup inside a
// heading may span several lines.
func (n *Node) Sections() []*Section {
	start, end, ok := n.bounds()
	if !ok {
		return nil
	}
	sh := n.Shadow()

	var heads []heading
	for lineStart := 0; lineStart <= len(sh); {
		lineEnd := bytes.IndexByte(sh[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(sh)
		} else {
			lineEnd += lineStart
		}
		if level, _, _ := headingLine(sh[lineStart:lineEnd]); level > 0 {
			heads = append(heads, heading{start: lineStart, level: level})
		}
		lineStart = lineEnd + 1
	}

	l := n.doc.table.List(spans.Section)
	leadEnd := len(sh)
	if len(heads) > 0 {
		leadEnd = heads[0].start
	}
	slot, _ := l.Insert(start, start+leadEnd)
	out := []*Section{{n.doc.node(spans.Section, slot)}}

	for i, h := range heads {
		sectionEnd := end - start
		for _, next := range heads[i+1:] {
			if next.level <= h.level {
				sectionEnd = next.start
				break
			}
		}
		slot, _ := l.Insert(start+h.start, start+sectionEnd)
		out = append(out, &Section{n.doc.node(spans.Section, slot)})
	}
	return out
}

// headingLine matches "={1,6}title={1,6}" followed by optional blanks and
// returns the level and the bounds of the title.
func headingLine(line []byte) (level, titleStart, titleEnd int) {
	trimmed := bytes.TrimRight(line, " \t")
	lead := 0
	for lead < len(trimmed) && trimmed[lead] == '=' {
		lead++
	}
	if lead == 0 {
		return 0, 0, 0
	}
	trail := 0
	for trail < len(trimmed) && trimmed[len(trimmed)-1-trail] == '=' {
		trail++
	}
	level = min(lead, trail, maxHeadingLevel, (len(trimmed)-1)/2)
	if level <= 0 {
		return 0, 0, 0
	}
	return level, level, len(trimmed) - level
}

// firstLine returns the section's heading line in its shadow.
func (s *Section) firstLine() []byte {
	sh := s.Shadow()
	if nl := bytes.IndexByte(sh, '\n'); nl >= 0 {
		return sh[:nl]
	}
	return sh
}

// Level returns the heading level, or 0 for the lead section.
func (s *Section) Level() int {
	level, _, _ := headingLine(s.firstLine())
	return level
}

// Title returns the heading text between the '=' runs. The lead section has
// no title.
func (s *Section) Title() (string, bool) {
	level, from, to := headingLine(s.firstLine())
	if level == 0 {
		return "", false
	}
	return s.String()[from:to], true
}

// Contents returns the section's text after its heading line.
func (s *Section) Contents() string {
	text := s.String()
	if s.Level() == 0 {
		return text
	}
	nl := len(s.firstLine())
	if nl >= len(text) {
		return ""
	}
	return text[nl+1:]
}
