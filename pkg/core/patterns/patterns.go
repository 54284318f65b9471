// Package patterns holds every recognition pattern used by the cleaning and
// extraction pipeline: markup-unwrap rules, table heuristics, table-of-contents
// scrubbers, SEC header metadata, index-file form matching, and the section
// heading patterns for MD&A and Item 1.
//
// All patterns are compiled once at package init and are immutable, so they
// are safe to share across concurrent document workers.
package patterns

import "regexp"

// UnwrapRule replaces one category of markup construct with a newline.
// Rules are applied in the declared order; later rules assume earlier ones
// have already flattened their constructs.
type UnwrapRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// UnwrapRules is the ordered first-pass rule set. Order is a correctness
// requirement: binary attachment blocks and the SEC header are removed before
// the generic HTML tag rule runs over what remains.
var UnwrapRules = []UnwrapRule{
	{"ascii", regexp.MustCompile(`(?is)(?:<DOCUMENT>)?\n?<TYPE>(?:GRAPHIC|ZIP|EXCEL|JSON|PDF|XML|EX).*?</DOCUMENT>`)},
	{"ascii_alt", regexp.MustCompile(`(?is)\n(?:<GRAPHIC>.*?</GRAPHIC>|<ZIP>.*?</ZIP>|<EXCEL>.*?</EXCEL>|<JSON>.*?</JSON>|<PDF>.*?</PDF>|<XML>.*?</XML>|<EX[^>]*>.*?</EX[^>]*>)`)},
	{"header_footer", regexp.MustCompile(`(?is)\A.*?</(?:SEC|IMS)-HEADER>|-----END PRIVACY-ENHANCED MESSAGE-----`)},
	{"html_tags", regexp.MustCompile(`(?is)<(?:div|font|tr|td|p)\b.*?>|</(?:font|div|tr|td|p)>`)},
}

// MultiUnwrap flattens any remaining tag-like construct into a newline.
// It runs after entity unescaping so tags hidden behind encoded entities are
// exposed. A tag may span at most one line break; an unpaired '<' never
// swallows the rest of the document.
var MultiUnwrap = regexp.MustCompile(`<[^<>\n]*>|<[^<>\n]*\n[^<>\n]*>`)

// Table matches one table construct, start to end. Non-greedy so adjacent
// tables are not merged into one span.
var Table = regexp.MustCompile(`(?is)<TABLE.*?</TABLE>`)

// TableBreak flattens row/cell boundaries (and any residual tags) inside a
// table span. Used only for the digit-density computation, so that density
// reflects visible characters rather than markup noise.
var TableBreak = regexp.MustCompile(`(?i)</?(?:tr|td|th)[^>\n]*>|<[^<>\n]*>|<[^<>\n]*\n[^<>\n]*>`)

// TableMarker matches the explicit begin/end markers wrapped around retained
// tables by the normalizer.
var TableMarker = regexp.MustCompile(`(?i)\[TABLE\]|\[/TABLE\]`)

// TableStrip removes entire table spans, marker-wrapped or raw, from text
// before section search. A section heading sitting inside a summary table
// must not be mistaken for the real section start.
var TableStrip = regexp.MustCompile(`(?is)\[TABLE\].*?\[/TABLE\]|<TABLE.*?</TABLE>`)

// HardSpace matches non-breaking spaces and zero-width spaces, which hide
// heading boundaries from the line-anchored section patterns.
var HardSpace = regexp.MustCompile("[ ​]")

// BlankRun matches a run of three or more whitespace-dominated lines.
var BlankRun = regexp.MustCompile(`(\n\s*){3,}`)

// TOCLines match lines that mimic a table-of-contents entry so they can be
// scrubbed from extracted sections: the literal "Table of Contents" banner
// lines, an "Item N" label with a trailing page number, and a label followed
// by dot leaders and a page number.
var TOCLines = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\nTable\s*of\s*Contents\n`),
	regexp.MustCompile(`(?i)\nReturn\s*to\s*Table\s*of\s*Contents\n`),
	regexp.MustCompile(`(?i)\n[ \t]*(?:PART\s*[IVX0-9]+[ \t.:-]{0,3})?ITEM\s*\d{1,2}[A-C]?\.?[^\n]{0,80}?[ \t]{2,}\(?\d{1,4}\)?[ \t]*`),
	regexp.MustCompile(`(?i)\n[ \t]*[^\n]{0,100}?\.{2,}[ \t]*\(?\d{1,4}\)?[ \t]*`),
}

// SeparatorRun matches horizontal rules drawn with repeated underscores,
// hyphens, or equals signs.
var SeparatorRun = regexp.MustCompile(`_{2,}|-{2,}|={2,}`)

// WhitespaceRun matches any run of whitespace for collapsing to one space.
var WhitespaceRun = regexp.MustCompile(`\s+`)

// LoosePunct matches punctuation left floating between spaces by the tag
// unwrap step; the leading space is removed.
var LoosePunct = regexp.MustCompile(` ([,;.’®]) `)

// CommentTail matches a leading fragment ending in a stray HTML comment
// terminator, left behind when a comment boundary fell inside a matched span.
// It must be applied before the separator-rule scrub, which consumes the
// hyphens of the terminator.
var CommentTail = regexp.MustCompile(`(?s)\A.*?" -->`)
