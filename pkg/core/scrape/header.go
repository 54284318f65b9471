package scrape

import (
	"regexp"
	"strings"
	"time"

	"github.com/md-experiments/scraper-edgar/pkg/core/patterns"
)

// Header holds the metadata of a raw filing's SEC header block.
type Header struct {
	CIK        string
	Company    string
	SIC        string
	FormType   string
	Street     string
	City       string
	State      string
	Zip        string
	Phone      string
	ReportDate time.Time
	FilingDate time.Time
}

// ParseHeader extracts SEC header metadata from raw filing text. Fields the
// header does not carry stay zero; a filing with no header block at all
// yields a zero Header, which is data, not an error.
func ParseHeader(txt string) Header {
	if loc := patterns.HeaderEnd.FindStringIndex(txt); loc != nil {
		txt = txt[:loc[0]]
	}
	h := Header{
		CIK:      firstGroup(patterns.MetaCIK, txt),
		Company:  firstGroup(patterns.MetaCompany, txt),
		SIC:      firstGroup(patterns.MetaSIC, txt),
		FormType: firstGroup(patterns.MetaFormType, txt),
		Street:   firstGroup(patterns.MetaStreet, txt),
		City:     firstGroup(patterns.MetaCity, txt),
		State:    firstGroup(patterns.MetaState, txt),
		Zip:      firstGroup(patterns.MetaZip, txt),
		Phone:    firstGroup(patterns.MetaPhone, txt),
	}
	h.ReportDate = parseHeaderDate(firstGroup(patterns.MetaReportDate, txt))
	h.FilingDate = parseHeaderDate(firstGroup(patterns.MetaFilingDate, txt))
	return h
}

func firstGroup(re *regexp.Regexp, txt string) string {
	m := re.FindStringSubmatch(txt)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[len(m)-1])
}

func parseHeaderDate(s string) time.Time {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
