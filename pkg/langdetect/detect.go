// Package langdetect names the language of code embedded in wikitext
// extension tags. Names are the lexer identifiers that <syntaxhighlight>
// accepts in its lang attribute.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// classifierCandidates limits the enry classifier to languages commonly
// highlighted on wikis.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "PHP", "Lua",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS",
}

// lexerNames maps enry language names to lexer identifiers where the
// lowercased enry name is not already one.
//
//nolint:gochecknoglobals // Read-only lookup table.
var lexerNames = map[string]string{
	"Shell":       "bash",
	"C++":         "cpp",
	"C#":          "csharp",
	"Emacs Lisp":  "emacs-lisp",
	"Objective-C": "objective-c",
	"Vim Script":  "vim",
	"Batchfile":   "batch",
	"Dockerfile":  "docker",
}

// tagLanguages holds extension tags whose body is always one language.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tagLanguages = map[string]string{
	"math":           "latex",
	"chem":           "latex",
	"ce":             "latex",
	"score":          "lilypond",
	"templatedata":   "json",
	"graph":          "json",
	"mapframe":       "json",
	"maplink":        "json",
	"templatestyles": "css",
}

// rule recognises a language from unmistakable surface patterns.
type rule struct {
	lang  string
	match func(content, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var rules = []rule{
	{"php", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("<?php"))
	}},
	{"lua", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("local function ")) ||
			(bytes.Contains(content, []byte("function p.")) && bytes.Contains(content, []byte("return p")))
	}},
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		s := string(content)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__")
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`":`))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := strings.ToUpper(string(trimmed))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("fn main()")) || bytes.Contains(content, []byte("println!"))
	}},
	{"javascript", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("console.log")) || bytes.Contains(content, []byte("=>"))
	}},
}

// Detect guesses the lexer name for code content. It returns Text when the
// content is empty or no guess is reliable.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return lexerName(lang)
	}

	for _, r := range rules {
		if r.match(content, trimmed) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return lexerName(lang)
	}

	return Text
}

// Canonical resolves a lang attribute value such as "js" or "Python3" to a
// lexer name. Unknown values are returned lowercased.
func Canonical(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return ""
	}
	if lang, ok := enry.GetLanguageByAlias(alias); ok {
		return lexerName(lang)
	}
	return strings.ToLower(alias)
}

// ForTag returns the fixed language of an extension tag's body, if the tag
// has one.
func ForTag(tag string) (string, bool) {
	lang, ok := tagLanguages[strings.ToLower(tag)]
	return lang, ok
}

func lexerName(lang string) string {
	if name, ok := lexerNames[lang]; ok {
		return name
	}
	return strings.ToLower(lang)
}
