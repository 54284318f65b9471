// Package extract locates a target section (MD&A or the Item 1 business
// description) inside a filing and trims it to a clean excerpt.
//
// Filings carry no machine-readable section boundaries, so the extractor
// scans with several alternative heading-to-heading patterns and keeps the
// single longest candidate: heading mentions inside a table of contents
// produce short spurious matches, the real section produces the long one.
package extract

import (
	"strings"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
	"github.com/md-experiments/scraper-edgar/pkg/core/patterns"
)

// Extractor finds and cleans filing sections. It holds only compiled,
// immutable patterns and is safe for concurrent use.
type Extractor struct{}

// New returns a section extractor.
func New() *Extractor {
	return &Extractor{}
}

// patternSet returns the applicable pattern pairs for a (section, form)
// combination, in tie-break order. Combinations with no defined section,
// such as Item 1 for a quarterly form, return nil.
func patternSet(section filings.Section, form filings.FormType) []patterns.SectionPattern {
	switch section {
	case filings.SectionMDA:
		if form.Annual() {
			return patterns.MDA10K
		}
		if form.Quarterly() {
			return patterns.MDA10Q
		}
	case filings.SectionItem1:
		if form.Annual() {
			return patterns.Item1
		}
	}
	return nil
}

// Extract returns the cleaned excerpt of the given section, or the empty
// string when the section cannot be located. An empty result is a valid
// outcome, not an error: some filings simply lack the section, and some
// (section, form) combinations are undefined.
func (e *Extractor) Extract(txt string, section filings.Section, form filings.FormType) string {
	// Tables are never useful as section boundaries or content here; remove
	// whole spans (and stray markers) so a heading inside a summary table
	// cannot anchor a match.
	txt = patterns.TableStrip.ReplaceAllString(txt, "")
	txt = patterns.TableMarker.ReplaceAllString(txt, "")

	set := patternSet(section, form)
	if set == nil {
		return ""
	}

	// Keep the longest candidate across all patterns and all matches.
	// Strict ties resolve to the earliest candidate: first by pattern order,
	// then by position in the text.
	var best string
	bestPat := -1
	for i, pat := range set {
		for _, m := range pat.Span.FindAllString(txt, -1) {
			if len(m) > len(best) {
				best = m
				bestPat = i
			}
		}
	}
	if bestPat < 0 {
		return ""
	}
	return clean(trim(best, set[bestPat]))
}

// trim re-anchors a candidate at its last non-referral start heading and
// drops the terminating heading. A candidate that begins at a TOC entry
// spans the entry, the real heading and the narrative; cutting at the last
// start heading leaves just the narrative.
func trim(span string, pat patterns.SectionPattern) string {
	starts := pat.Start.FindAllStringIndex(span, -1)
	for i := len(starts) - 1; i >= 0; i-- {
		loc := starts[i]
		if referred(span, loc[0]) {
			continue
		}
		span = span[loc[1]:]
		// The heading line often continues past the matched words
		// ("... and Analysis of Financial Condition"); the narrative
		// starts on the next line.
		if nl := strings.Index(span, "\n"); nl >= 0 {
			span = span[nl:]
		}
		break
	}
	if ends := pat.End.FindAllStringIndex(span, -1); len(ends) > 0 {
		if last := ends[len(ends)-1]; last[1] == len(span) {
			span = span[:last[0]]
		}
	}
	return span
}

// referred reports whether the heading match at off is preceded by referral
// text ("see Item 7", a quoted mention) rather than standing on its own.
func referred(span string, off int) bool {
	lead := span[:off]
	if len(lead) > 16 {
		lead = lead[len(lead)-16:]
	}
	return patterns.Referral.MatchString(lead)
}

// clean derives the final excerpt: comment-tail cut, TOC-line scrub,
// separator-rule removal, whitespace collapse and loose-punctuation repair.
// The comment tail goes first; the separator scrub would otherwise consume
// the hyphens of the terminator token.
func clean(s string) string {
	s = patterns.CommentTail.ReplaceAllString(s, "")
	for _, toc := range patterns.TOCLines {
		s = toc.ReplaceAllString(s, " ")
	}
	s = patterns.SeparatorRun.ReplaceAllString(s, " ")
	s = patterns.WhitespaceRun.ReplaceAllString(s, " ")
	s = patterns.LoosePunct.ReplaceAllString(s, "$1 ")
	return strings.TrimSpace(s)
}
