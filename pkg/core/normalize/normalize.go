// Package normalize turns raw markup-laden filing text into clean plain text.
//
// Tables are handled by a density heuristic: a table whose visible characters
// are mostly digits is a data table and is dropped outright, while a
// prose-like table is retained, wrapped in explicit [TABLE] markers so
// downstream consumers can tell it apart from running text.
package normalize

import (
	"html"
	"strings"

	"github.com/md-experiments/scraper-edgar/pkg/core/patterns"
)

// DefaultTableRatio is the digit-density threshold at and above which a
// table is treated as numeric data and dropped.
const DefaultTableRatio = 0.1

// Normalizer converts raw filing text to clean plain text. The zero value is
// not usable; construct with New. A Normalizer is immutable after
// construction and safe for concurrent use.
type Normalizer struct {
	tableRatio float64
}

// New returns a Normalizer with the default table-density threshold.
func New() *Normalizer {
	return NewWithRatio(DefaultTableRatio)
}

// NewWithRatio returns a Normalizer that drops tables whose digit density is
// at or above ratio.
func NewWithRatio(ratio float64) *Normalizer {
	if ratio <= 0 {
		ratio = DefaultTableRatio
	}
	return &Normalizer{tableRatio: ratio}
}

// Clean converts raw markup text into clean, whitespace-deduplicated plain
// text. The transformation is pure; it cannot fail on well-formed input.
func (n *Normalizer) Clean(txt string) string {
	for _, rule := range patterns.UnwrapRules {
		txt = rule.Pattern.ReplaceAllString(txt, "\n")
	}
	txt = html.UnescapeString(txt)
	txt = patterns.Table.ReplaceAllStringFunc(txt, n.replaceTable)
	txt = patterns.MultiUnwrap.ReplaceAllString(txt, "\n")
	txt = patterns.HardSpace.ReplaceAllString(txt, "\n")
	txt = patterns.BlankRun.ReplaceAllString(txt, "\n\n")
	return strings.TrimSpace(txt)
}

// replaceTable classifies one table span: retained tables come back wrapped
// in [TABLE] markers, data tables come back empty. Classification of a span
// is independent of surrounding spans.
func (n *Normalizer) replaceTable(span string) string {
	letters, digits := countVisible(span)
	// A span with no letters and no digits has no computable density and is
	// treated as non-text-bearing.
	if letters+digits == 0 {
		return ""
	}
	if float64(digits)/float64(letters+digits) >= n.tableRatio {
		return ""
	}
	return "[TABLE]" + span + "[/TABLE]"
}

// countVisible counts alphabetic and numeric characters in a table span
// after flattening its row/cell markup, so density reflects what a reader
// would see. Residual "nbsp" entity fragments are not counted as letters.
func countVisible(span string) (letters, digits int) {
	flat := patterns.TableBreak.ReplaceAllString(span, "\n")
	flat = strings.ReplaceAll(flat, "nbsp", "")
	for _, r := range flat {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	return letters, digits
}
