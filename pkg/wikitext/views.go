package wikitext

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yaklabco/wikispan/pkg/spans"
)

// Template is a "{{name|...}}" transclusion.
type Template struct{ *Node }

// ParserFunction is a "{{#name:...}}" or "{{NAME:...}}" call.
type ParserFunction struct{ *Node }

// Parameter is a "{{{name|default}}}" placeholder.
type Parameter struct{ *Node }

// WikiLink is a "[[target|text]]" internal link.
type WikiLink struct{ *Node }

// Comment is a "<!-- ... -->" comment.
type Comment struct{ *Node }

// ExtensionTag is a "<name ...>...</name>" extension region.
type ExtensionTag struct{ *Node }

// Templates returns the templates inside n.
func (n *Node) Templates() []*Template {
	return wrap(n.children(spans.Template), func(c *Node) *Template { return &Template{c} })
}

// ParserFunctions returns the parser functions inside n.
func (n *Node) ParserFunctions() []*ParserFunction {
	return wrap(n.children(spans.ParserFunction), func(c *Node) *ParserFunction { return &ParserFunction{c} })
}

// Parameters returns the parameters inside n.
func (n *Node) Parameters() []*Parameter {
	return wrap(n.children(spans.Parameter), func(c *Node) *Parameter { return &Parameter{c} })
}

// WikiLinks returns the internal links inside n.
func (n *Node) WikiLinks() []*WikiLink {
	return wrap(n.children(spans.WikiLink), func(c *Node) *WikiLink { return &WikiLink{c} })
}

// Comments returns the comments inside n.
func (n *Node) Comments() []*Comment {
	return wrap(n.children(spans.Comment), func(c *Node) *Comment { return &Comment{c} })
}

// ExtensionTags returns the extension tags inside n.
func (n *Node) ExtensionTags() []*ExtensionTag {
	return wrap(n.children(spans.ExtensionTag), func(c *Node) *ExtensionTag { return &ExtensionTag{c} })
}

func wrap[T any](nodes []*Node, fn func(*Node) T) []T {
	out := make([]T, len(nodes))
	for i, c := range nodes {
		out[i] = fn(c)
	}
	return out
}

// Name returns the template name with surrounding whitespace removed.
func (t *Template) Name() string {
	from, to, ok := t.nameBounds()
	if !ok {
		return ""
	}
	return t.String()[from:to]
}

// SetName replaces the name, keeping the whitespace around it.
func (t *Template) SetName(name string) error {
	from, to, ok := t.nameBounds()
	if !ok {
		return ErrDeadIndex
	}
	return t.SetSlice(from, to, name)
}

// nameBounds returns the trimmed name's offsets relative to the view.
func (t *Template) nameBounds() (from, to int, ok bool) {
	text := t.String()
	if len(text) < 4 {
		return 0, 0, false
	}
	sh := t.Shadow()
	end := len(text) - 2
	if pipe := bytes.IndexByte(sh[2:end], '|'); pipe >= 0 {
		end = 2 + pipe
	}
	raw := text[2:end]
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	trimmed := strings.TrimSpace(raw)
	return 2 + lead, 2 + lead + len(trimmed), true
}

// Arguments returns the template's arguments in order.
func (t *Template) Arguments() []*Argument {
	return t.arguments(false)
}

// Name returns the function name, including a leading '#'.
func (p *ParserFunction) Name() string {
	text := p.String()
	sh := p.Shadow()
	if len(text) < 4 {
		return ""
	}
	colon := bytes.IndexByte(sh[2:len(text)-2], ':')
	if colon < 0 {
		return strings.TrimSpace(text[2 : len(text)-2])
	}
	return strings.TrimSpace(text[2 : 2+colon])
}

// Arguments returns the function's arguments. The first one starts at the
// colon after the name.
func (p *ParserFunction) Arguments() []*Argument {
	return p.arguments(true)
}

// Name returns the parameter name with surrounding whitespace removed.
func (p *Parameter) Name() string {
	text := p.String()
	if len(text) < 6 {
		return ""
	}
	sh := p.Shadow()
	end := len(text) - 3
	if pipe := bytes.IndexByte(sh[3:end], '|'); pipe >= 0 {
		end = 3 + pipe
	}
	return strings.TrimSpace(text[3:end])
}

// Default returns the text after the first '|', if there is one.
func (p *Parameter) Default() (string, bool) {
	text := p.String()
	if len(text) < 6 {
		return "", false
	}
	sh := p.Shadow()
	pipe := bytes.IndexByte(sh[3:len(text)-3], '|')
	if pipe < 0 {
		return "", false
	}
	return text[3+pipe+1 : len(text)-3], true
}

// Target returns the link target.
func (w *WikiLink) Target() string {
	text := w.String()
	if len(text) < 4 {
		return ""
	}
	sh := w.Shadow()
	end := len(text) - 2
	if pipe := bytes.IndexByte(sh[2:end], '|'); pipe >= 0 {
		end = 2 + pipe
	}
	return text[2:end]
}

// Text returns the link text after the first '|', if there is one.
func (w *WikiLink) Text() (string, bool) {
	text := w.String()
	if len(text) < 4 {
		return "", false
	}
	sh := w.Shadow()
	pipe := bytes.IndexByte(sh[2:len(text)-2], '|')
	if pipe < 0 {
		return "", false
	}
	return text[2+pipe+1 : len(text)-2], true
}

// Contents returns the text between the comment delimiters. An unterminated
// comment runs to its end.
func (c *Comment) Contents() string {
	text := strings.TrimPrefix(c.String(), "<!--")
	return strings.TrimSuffix(text, "-->")
}

// Name returns the tag name as written.
func (e *ExtensionTag) Name() string {
	text := e.String()
	if !strings.HasPrefix(text, "<") {
		return ""
	}
	end := 1
	for end < len(text) && !isTagNameEnd(text[end]) {
		end++
	}
	return text[1:end]
}

// SelfClosing reports whether the tag is written as "<name .../>".
func (e *ExtensionTag) SelfClosing() bool {
	return strings.HasSuffix(e.String(), "/>") && !strings.Contains(e.String(), "</")
}

// Contents returns the text between the start and end tags.
func (e *ExtensionTag) Contents() string {
	text := e.String()
	if e.SelfClosing() {
		return ""
	}
	gt := strings.IndexByte(text, '>')
	closing := strings.LastIndex(text, "</")
	if gt < 0 || closing <= gt {
		return ""
	}
	return text[gt+1 : closing]
}

// Attribute returns the value of the start tag attribute called name.
// Attribute names match case-insensitively.
func (e *ExtensionTag) Attribute(name string) (string, bool) {
	text := e.String()
	gt := strings.IndexByte(text, '>')
	if gt < 0 {
		return "", false
	}
	attrs := strings.TrimSuffix(text[len(e.Name())+1:gt], "/")
	for _, a := range parseAttributes(attrs) {
		if strings.EqualFold(a.name, name) {
			return a.value, true
		}
	}
	return "", false
}

type attribute struct {
	name, value string
}

// parseAttributes splits `a="1" b='2' c=3 d` into name/value pairs.
func parseAttributes(s string) []attribute {
	var out []attribute
	i := 0
	for i < len(s) {
		for i < len(s) && isAttrSpace(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isAttrSpace(s[i]) && s[i] != '=' {
			i++
		}
		if start == i {
			i++
			continue
		}
		a := attribute{name: s[start:i]}
		j := i
		for j < len(s) && isAttrSpace(s[j]) {
			j++
		}
		if j < len(s) && s[j] == '=' {
			j++
			for j < len(s) && isAttrSpace(s[j]) {
				j++
			}
			a.value, i = attributeValue(s, j)
		}
		out = append(out, a)
	}
	return out
}

func attributeValue(s string, j int) (string, int) {
	if j >= len(s) {
		return "", j
	}
	if q := s[j]; q == '"' || q == '\'' {
		end := strings.IndexByte(s[j+1:], q)
		if end < 0 {
			return s[j+1:], len(s)
		}
		return s[j+1 : j+1+end], j + end + 2
	}
	k := j
	for k < len(s) && !isAttrSpace(s[k]) {
		k++
	}
	return s[j:k], k
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isTagNameEnd(b byte) bool {
	return isAttrSpace(b) || b == '>' || b == '/'
}
