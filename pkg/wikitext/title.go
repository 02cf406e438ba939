package wikitext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// templateNamespace is the optional prefix of a transcluded page name.
const templateNamespace = "template:"

// CanonicalTitle normalises a template name the way MediaWiki resolves
// page titles: underscores are spaces, runs of whitespace collapse, an
// explicit Template: prefix is dropped and the first letter is upper case.
func CanonicalTitle(name string) string {
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	if len(name) >= len(templateNamespace) && strings.EqualFold(name[:len(templateNamespace)], templateNamespace) {
		name = strings.TrimSpace(name[len(templateNamespace):])
	}
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// NameIs reports whether the template transcludes the page title.
func (t *Template) NameIs(title string) bool {
	return !t.Dead() && CanonicalTitle(t.Name()) == CanonicalTitle(title)
}
