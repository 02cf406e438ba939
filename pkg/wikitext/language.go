package wikitext

import (
	"github.com/yaklabco/wikispan/pkg/langdetect"
)

// Language names the language of the tag's body as a lexer identifier.
// An explicit lang attribute wins, then the tag's fixed language, then a
// guess from the contents.
func (e *ExtensionTag) Language() string {
	if lang, ok := e.Attribute("lang"); ok && lang != "" {
		return langdetect.Canonical(lang)
	}
	if lang, ok := langdetect.ForTag(e.Name()); ok {
		return lang
	}
	return langdetect.Detect([]byte(e.Contents()))
}
