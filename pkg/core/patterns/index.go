package patterns

import (
	"regexp"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
)

// Form-type patterns for the form column of an EDGAR master index file.
// The column is matched in isolation, so amended forms are distinguished by
// the presence of the "/A" suffix rather than by lookaround.
var formPatterns = map[filings.FormType]*regexp.Regexp{
	filings.Form10K:  regexp.MustCompile(`(?i)^10-?K(?:SB|SB40|405)?$`),
	filings.Form10KA: regexp.MustCompile(`(?i)^10-?K(?:SB|SB40|405)?/A$`),
	filings.Form10Q:  regexp.MustCompile(`(?i)^10-?Q(?:SB|SB40|405)?$`),
	filings.Form10QA: regexp.MustCompile(`(?i)^10-?Q(?:SB|SB40|405)?/A$`),
	filings.Form8K:   regexp.MustCompile(`(?i)^8-?K$`),
}

// FormPattern returns the index-column pattern for a form type, or nil when
// the form has no pattern defined.
func FormPattern(f filings.FormType) *regexp.Regexp {
	return formPatterns[f]
}

// IndexFileName extracts the EDGAR archive path and bare file name from the
// file-name column of a master index line.
var IndexFileName = regexp.MustCompile(`(?i)(edgar/data\S*?/([\d-]+\.txt))`)

// HeaderEnd marks the end of the SEC header block of a raw filing.
var HeaderEnd = regexp.MustCompile(`(?i)</(?:SEC|IMS)-HEADER>`)

// Header metadata patterns, applied line-anchored over the SEC header block.
var (
	MetaCIK        = regexp.MustCompile(`(?im)^\s*CENTRAL\s*INDEX\s*KEY:\s*(\d{10})`)
	MetaCompany    = regexp.MustCompile(`(?im)^\s*COMPANY\s*CONFORMED\s*NAME:\s*(.+)`)
	MetaSIC        = regexp.MustCompile(`(?im)^\s*STANDARD\s*INDUSTRIAL\s*CLASSIFICATION:.*?(\d{4})`)
	MetaFormType   = regexp.MustCompile(`(?im)^\s*CONFORMED\s*SUBMISSION\s*TYPE:\s*(.+)`)
	MetaStreet     = regexp.MustCompile(`(?im)^\s*STREET\s*1?:\s*(.+)`)
	MetaCity       = regexp.MustCompile(`(?im)^\s*CITY:\s*(.+)`)
	MetaState      = regexp.MustCompile(`(?im)^\s*STATE:\s*(.+)`)
	MetaZip        = regexp.MustCompile(`(?im)^\s*ZIP:\s*(.+)`)
	MetaPhone      = regexp.MustCompile(`(?im)^\s*(?:BUSINESS)?\s*PHONE(?:\s*NUMBER)?:\s*(.+)`)
	MetaReportDate = regexp.MustCompile(`(?im)^\s*CONFORMED\s*PERIOD\s*OF\s*REPORT:\s*(\d{8})`)
	MetaFilingDate = regexp.MustCompile(`(?im)^\s*FILED\s*AS\s*OF\s*DATE:\s*(\d{8})`)
)
