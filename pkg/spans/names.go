package spans

import (
	"bytes"
	"slices"
	"strings"
)

// Names holds the name sets the scanner recognises.
//
// Tag names and link schemes match case-insensitively. Parser function names
// match exactly.
type Names struct {
	// ParsableTags are extension tags whose contents are scanned as wikitext.
	ParsableTags []string `yaml:"parsable_tags,omitempty"`

	// UnparsableTags are extension tags whose contents are opaque.
	UnparsableTags []string `yaml:"unparsable_tags,omitempty"`

	// ParserFunctions are the parser function names accepted without a '#'.
	ParserFunctions []string `yaml:"parser_functions,omitempty"`

	// ExternalLinkSchemes are URL prefixes that keep "[[" from opening a link.
	ExternalLinkSchemes []string `yaml:"external_link_schemes,omitempty"`
}

//nolint:gochecknoglobals // Read-only lookup table.
var defaultParsableTags = []string{
	"categorytree", "gallery", "imagemap", "includeonly", "indicator", "inputbox",
	"noinclude", "onlyinclude", "poem", "ref", "references", "section",
}

//nolint:gochecknoglobals // Read-only lookup table.
var defaultUnparsableTags = []string{
	"ce", "charinsert", "chem", "graph", "hiero", "languages", "mapframe", "maplink",
	"math", "nowiki", "pagelist", "pagequality", "pages", "pre", "score", "source",
	"syntaxhighlight", "templatedata", "templatestyles", "timeline",
}

//nolint:gochecknoglobals // Read-only lookup table.
var defaultExternalLinkSchemes = []string{
	"bitcoin:", "ftp://", "ftps://", "geo:", "git://", "gopher://", "http://",
	"https://", "irc://", "ircs://", "magnet:", "mailto:", "mms://", "news:",
	"nntp://", "redis://", "sftp://", "sip:", "sips:", "sms:", "ssh://",
	"svn://", "tel:", "telnet://", "urn:", "worldwind://", "xmpp:",
}

//nolint:gochecknoglobals // Read-only lookup table.
var defaultParserFunctions = []string{
	"ARTICLEPAGENAME", "ARTICLEPAGENAMEE", "ARTICLESPACE", "ARTICLESPACEE",
	"BASEPAGENAME", "BASEPAGENAMEE", "CASCADINGSOURCES", "CONTENTLANG",
	"CONTENTLANGUAGE", "CURRENTDAY", "CURRENTDAY2", "CURRENTDAYNAME", "CURRENTDOW",
	"CURRENTHOUR", "CURRENTMONTH", "CURRENTMONTH1", "CURRENTMONTHABBREV",
	"CURRENTMONTHNAME", "CURRENTMONTHNAMEGEN", "CURRENTTIME", "CURRENTTIMESTAMP",
	"CURRENTVERSION", "CURRENTWEEK", "CURRENTYEAR", "DEFAULTCATEGORYSORT",
	"DEFAULTSORT", "DEFAULTSORTKEY", "DIRECTIONMARK", "DIRMARK", "DISPLAYTITLE",
	"FULLPAGENAME", "FULLPAGENAMEE", "LOCALDAY", "LOCALDAY2", "LOCALDAYNAME",
	"LOCALDOW", "LOCALHOUR", "LOCALMONTH", "LOCALMONTH1", "LOCALMONTHABBREV",
	"LOCALMONTHNAME", "LOCALMONTHNAMEGEN", "LOCALTIME", "LOCALTIMESTAMP",
	"LOCALWEEK", "LOCALYEAR", "NAMESPACE", "NAMESPACEE", "NAMESPACENUMBER",
	"NUMBERINGROUP", "NUMBEROFACTIVEUSERS", "NUMBEROFADMINS", "NUMBEROFARTICLES",
	"NUMBEROFEDITS", "NUMBEROFFILES", "NUMBEROFPAGES", "NUMBEROFUSERS",
	"NUMBEROFVIEWS", "NUMINGROUP", "PAGEID", "PAGELANGUAGE", "PAGENAME",
	"PAGENAMEE", "PAGESINCAT", "PAGESINCATEGORY", "PAGESINNAMESPACE", "PAGESINNS",
	"PAGESIZE", "PROTECTIONEXPIRY", "PROTECTIONLEVEL", "REVISIONDAY",
	"REVISIONDAY2", "REVISIONID", "REVISIONMONTH", "REVISIONMONTH1",
	"REVISIONTIMESTAMP", "REVISIONUSER", "REVISIONYEAR", "ROOTPAGENAME",
	"ROOTPAGENAMEE", "SCRIPTPATH", "SERVER", "SERVERNAME", "SITENAME", "STYLEPATH",
	"SUBJECTPAGENAME", "SUBJECTPAGENAMEE", "SUBJECTSPACE", "SUBJECTSPACEE",
	"SUBPAGENAME", "SUBPAGENAMEE", "TALKPAGENAME", "TALKPAGENAMEE", "TALKSPACE",
	"TALKSPACEE", "anchorencode", "canonicalurl", "filepath", "formatnum",
	"fullurl", "gender", "grammar", "int", "lc", "lcfirst", "localurl", "msg",
	"msgnw", "ns", "nse", "padleft", "padright", "plural", "raw", "safesubst",
	"subst", "uc", "ucfirst", "urlencode",
}

// DefaultNames returns the built-in name sets.
func DefaultNames() Names {
	return Names{
		ParsableTags:        slices.Clone(defaultParsableTags),
		UnparsableTags:      slices.Clone(defaultUnparsableTags),
		ParserFunctions:     slices.Clone(defaultParserFunctions),
		ExternalLinkSchemes: slices.Clone(defaultExternalLinkSchemes),
	}
}

// Merge returns the union of n and other. Duplicates are dropped and the
// result is sorted.
func (n Names) Merge(other Names) Names {
	return Names{
		ParsableTags:        union(n.ParsableTags, other.ParsableTags),
		UnparsableTags:      union(n.UnparsableTags, other.UnparsableTags),
		ParserFunctions:     union(n.ParserFunctions, other.ParserFunctions),
		ExternalLinkSchemes: union(n.ExternalLinkSchemes, other.ExternalLinkSchemes),
	}
}

// IsZero reports whether every set is empty.
func (n Names) IsZero() bool {
	return len(n.ParsableTags) == 0 && len(n.UnparsableTags) == 0 &&
		len(n.ParserFunctions) == 0 && len(n.ExternalLinkSchemes) == 0
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

type tagKind uint8

const (
	tagNone tagKind = iota
	tagParsable
	tagUnparsable
)

// nameIndex is the compiled, lookup-ready form of Names.
type nameIndex struct {
	tags      map[string]tagKind
	functions map[string]struct{}
	schemes   [][]byte
}

func compileNames(n Names) *nameIndex {
	idx := &nameIndex{
		tags:      make(map[string]tagKind, len(n.ParsableTags)+len(n.UnparsableTags)),
		functions: make(map[string]struct{}, len(n.ParserFunctions)),
	}
	for _, name := range n.UnparsableTags {
		idx.tags[strings.ToLower(name)] = tagUnparsable
	}
	// A name in both sets is treated as parsable.
	for _, name := range n.ParsableTags {
		idx.tags[strings.ToLower(name)] = tagParsable
	}
	for _, name := range n.ParserFunctions {
		idx.functions[name] = struct{}{}
	}
	for _, scheme := range n.ExternalLinkSchemes {
		if scheme != "" {
			idx.schemes = append(idx.schemes, []byte(strings.ToLower(scheme)))
		}
	}
	return idx
}

func (idx *nameIndex) tag(name string) tagKind {
	return idx.tags[strings.ToLower(name)]
}

func (idx *nameIndex) isFunction(name []byte) bool {
	_, ok := idx.functions[string(name)]
	return ok
}

// hasScheme reports whether buf starts with a known scheme followed by at
// least one byte that may appear in a URL.
func (idx *nameIndex) hasScheme(buf []byte) bool {
	for _, scheme := range idx.schemes {
		if len(buf) <= len(scheme) {
			continue
		}
		if !bytes.EqualFold(buf[:len(scheme)], scheme) {
			continue
		}
		if isURLByte(buf[len(scheme)]) {
			return true
		}
	}
	return false
}

func isURLByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '<', '>', '[', ']', '"', '{', '}', '|':
		return false
	}
	return b >= 0x20 && b != 0x7f
}
