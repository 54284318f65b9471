package patterns

import "regexp"

// SectionPattern is one start/end pattern pair for a target section. Span
// matches the whole heading-to-heading candidate; Start and End match the two
// headings on their own, for re-anchoring a candidate that begins at a
// table-of-contents entry and for trimming the terminating heading.
type SectionPattern struct {
	Name  string
	Span  *regexp.Regexp
	Start *regexp.Regexp
	End   *regexp.Regexp
}

// Heading fragments. Filed documents spell headings inconsistently: letters
// of ITEM and MANAGEMENT may be split by line breaks, the item number may be
// written "NO. 7" or "NUMBER 7", punctuation after the number varies, and an
// optional PART prefix may precede the item. \n* between letters mirrors what
// unwrapped markup leaves behind.
const (
	part1  = `(?:PART\s*(?:1|I)\s*[.,:–—|-]{0,2}\s*)?`
	part2  = `(?:PART\s*(?:2|II)\s*[.,:–—|-]{0,2}\s*)?`
	part12 = `(?:PART\s*(?:1|I|2|II)\s*[.,:–—|-]{0,2}\s*)?`

	item   = `I\n*T\n*E\n*M(?:\n*s)?\.?\s*(?:(?:NO\.|NUMBER)\s*)?`
	punct  = `\s*[.,:–—|-]{0,2}`
	bound  = `(?:[.,:–—|-]{1,2}|\s)`
	mgmt   = `M\n*A\n*N\n*A\n*G\n*E\n*M\n*E\n*N\n*T.?\n*S?.?\s*`
	disc   = `(?:D\n*I\n*S\n*C\n*U\n*S\n*S\n*I\n*O\n*N|N\n*A\n*R\n*R\n*A\n*T\n*I\n*V\n*E)`
	mgmtHd = mgmt + disc
	// Older filings title the section differently.
	legacyHd = `(?:` + mgmt + disc + `|` + mgmt + `P\n*L\n*A\n*N|PLAN\s*OF\s*OPERATION|SELECTED\s*FINANCIAL\s*DATA;)`
	bizHd    = `(?:(?:O\n*U\n*R\s*)?B\n*U\n*S\n*I\n*N\n*E\n*S\n*S|D\n*E\n*S\n*C\n*R\n*I\n*P\n*T\n*I\n*O\n*N)`
)

func sectionPattern(name, start, end string) SectionPattern {
	return SectionPattern{
		Name:  name,
		Span:  regexp.MustCompile(`(?is)` + start + `.*?` + end),
		Start: regexp.MustCompile(`(?is)` + start),
		End:   regexp.MustCompile(`(?is)` + end),
	}
}

// MDA10K holds the two alternative pattern pairs for the MD&A of annual
// filings: modern numbering (Item 7 through Item 7A/8) and the legacy
// numbering used by older filings (Item 6 through Item 7). Declaration order
// is the tie-break order during candidate selection.
var MDA10K = []SectionPattern{
	sectionPattern("10-k mda item7",
		`\n`+part2+item+`7`+punct+`\s*`+mgmtHd,
		`\n`+part2+item+`(?:7\s*\.?\s*A|8)`+punct),
	sectionPattern("10-k mda item6",
		`\n`+part2+item+`6`+punct+`\s*`+legacyHd,
		`\n`+part2+item+`7`+punct),
}

// MDA10Q holds the single pattern pair for the MD&A of quarterly filings
// (Part I Item 2, or Item 6 in older filings, through the next item). The
// trailing item number requires a punctuation or whitespace boundary so that
// "Item 1" never matches the "Item 1A" heading by prefix.
var MDA10Q = []SectionPattern{
	sectionPattern("10-q mda",
		`\n`+part1+item+`(?:2|II|6)`+punct+`\s*(?:`+mgmt+disc+`|`+mgmt+`P\n*L\n*A\n*N|PLAN\s*OF\s*OPERATION)`,
		`\n`+part12+item+`(?:1|I|3|4|5|6)`+bound),
}

// Item1 holds the pattern pair for the Item 1 business description of annual
// filings (Item 1, or "Item 1 and 2", through Item 1A/2/3).
var Item1 = []SectionPattern{
	sectionPattern("10-k item1",
		`\n`+part1+item+`(?:1|I|l)`+punct+`\s*(?:a\s*n\s*d\s*2\s*)?`+punct+`\s*`+bizHd,
		`\n`+part1+item+`(?:1\s*\.?\s*A|I\s*\.?\s*A|2|3)`+bound),
}

// Referral matches the few characters that precede a heading-shaped match
// when the text is merely referring to the section ("see Item 7 ...",
// a quoted or bracketed mention) rather than starting it. Used to reject
// false re-anchor points inside a selected candidate.
var Referral = regexp.MustCompile(`(?i)(?:\b(?:in|to|see|and|under|of)|["“>,])\s*$`)
