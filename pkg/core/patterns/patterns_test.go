package patterns

import (
	"testing"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
)

func TestFormPattern_IndexColumn(t *testing.T) {
	cases := []struct {
		form   filings.FormType
		column string
		want   bool
	}{
		{filings.Form10K, "10-K", true},
		{filings.Form10K, "10K", true},
		{filings.Form10K, "10-KSB", true},
		{filings.Form10K, "10-K405", true},
		{filings.Form10K, "10-K/A", false},
		{filings.Form10K, "10-Q", false},
		{filings.Form10KA, "10-K/A", true},
		{filings.Form10KA, "10-KSB/A", true},
		{filings.Form10KA, "10-K", false},
		{filings.Form10Q, "10-Q", true},
		{filings.Form10Q, "10-QSB", true},
		{filings.Form8K, "8-K", true},
		{filings.Form8K, "8K", true},
		{filings.Form8K, "8-K/A", false},
	}
	for _, c := range cases {
		pat := FormPattern(c.form)
		if pat == nil {
			t.Fatalf("no pattern for form %q", c.form)
		}
		if got := pat.MatchString(c.column); got != c.want {
			t.Errorf("form %q column %q: match = %v, want %v", c.form, c.column, got, c.want)
		}
	}
}

func TestFormPattern_UnknownForm(t *testing.T) {
	if pat := FormPattern(filings.FormType("s-1")); pat != nil {
		t.Errorf("expected nil pattern for unknown form, got %v", pat)
	}
}

func TestIndexFileName(t *testing.T) {
	line := "320193|APPLE INC|10-K|2020-10-30|edgar/data/320193/0000320193-20-000096.txt"
	m := IndexFileName.FindStringSubmatch(line)
	if m == nil {
		t.Fatal("index line did not match")
	}
	if m[1] != "edgar/data/320193/0000320193-20-000096.txt" {
		t.Errorf("archive path = %q", m[1])
	}
	if m[2] != "0000320193-20-000096.txt" {
		t.Errorf("file name = %q", m[2])
	}
}

func TestTOCLines_DotLeader(t *testing.T) {
	in := "\nManagement's Discussion and Analysis ..... 24\nnarrative continues"
	got := TOCLines[3].ReplaceAllString(in, " ")
	if got != " \nnarrative continues" {
		t.Errorf("dot-leader scrub = %q", got)
	}
}

func TestTOCLines_ItemWithPageNumber(t *testing.T) {
	in := "\nITEM 1. Business  3\n"
	if !TOCLines[2].MatchString(in) {
		t.Error("item entry with trailing page number should match")
	}
	// A narrative sentence mentioning an item is not a contents entry.
	if TOCLines[2].MatchString("\nItem 7 discusses results in detail.\n") {
		t.Error("narrative item mention should not match")
	}
}

func TestSectionSpan_AnnualMDA(t *testing.T) {
	doc := "\nITEM 7. MANAGEMENT'S DISCUSSION AND ANALYSIS\nbody text\nITEM 7A. QUANTITATIVE"
	if !MDA10K[0].Span.MatchString(doc) {
		t.Error("modern annual MD&A heading pair should match")
	}
}

func TestSectionSpan_LetterBrokenHeading(t *testing.T) {
	doc := "\nI\nT\nE\nM 7. M\nA\nN\nA\nG\nE\nM\nE\nN\nT'S DISCUSSION\nbody text\nITEM 8."
	if !MDA10K[0].Span.MatchString(doc) {
		t.Error("heading with letters split across lines should match")
	}
}

func TestSectionEnd_ItemNumberBoundary(t *testing.T) {
	end := MDA10Q[0].End
	if end.MatchString("\nITEM 1A. RISK FACTORS") {
		t.Error("Item 1A must not terminate a quarterly MD&A span")
	}
	if !end.MatchString("\nITEM 1. LEGAL PROCEEDINGS") {
		t.Error("Item 1 should terminate a quarterly MD&A span")
	}
}

func TestReferral(t *testing.T) {
	refs := []string{"as described in ", "see ", "and ", `"`, "under\n"}
	for _, s := range refs {
		if !Referral.MatchString(s) {
			t.Errorf("%q should read as a referral", s)
		}
	}
	plain := []string{"", "operations ", "the gross margin "}
	for _, s := range plain {
		if Referral.MatchString(s) {
			t.Errorf("%q should not read as a referral", s)
		}
	}
}
