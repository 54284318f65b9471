package normalize

import (
	"strings"
	"testing"
)

func TestClean_StripsHeaderAndTags(t *testing.T) {
	raw := "<SEC-HEADER>\nACCESSION NUMBER: 0000320193-20-000096\n</SEC-HEADER>\n" +
		"<p>The company reported strong results.</p>\n" +
		"<div align=\"center\">Overview</div>\n"

	got := New().Clean(raw)

	if strings.Contains(got, "ACCESSION") {
		t.Errorf("SEC header should be stripped, got %q", got)
	}
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("tags should be unwrapped, got %q", got)
	}
	if !strings.Contains(got, "The company reported strong results.") {
		t.Errorf("body text lost, got %q", got)
	}
}

func TestClean_UnescapesEntities(t *testing.T) {
	got := New().Clean("Research &amp; Development")
	if got != "Research & Development" {
		t.Errorf("expected entity unescape, got %q", got)
	}
}

func TestClean_HardSpacesBecomeBreaks(t *testing.T) {
	got := New().Clean("before\u00a0after\u200bend")
	if strings.ContainsRune(got, '\u00a0') || strings.ContainsRune(got, '\u200b') {
		t.Errorf("hard spaces should be gone, got %q", got)
	}
	if got != "before\nafter\nend" {
		t.Errorf("expected newline replacement, got %q", got)
	}
}

func TestClean_CollapsesBlankRuns(t *testing.T) {
	got := New().Clean("alpha\n \n\t\n\n\nbravo")
	if got != "alpha\n\nbravo" {
		t.Errorf("expected one blank line, got %q", got)
	}
}

func TestClean_DropsNumericTable(t *testing.T) {
	raw := "intro\n<TABLE><tr><td>2019</td><td>1000</td><td>2000</td></tr></TABLE>\noutro"
	got := New().Clean(raw)
	if strings.Contains(got, "1000") || strings.Contains(got, "[TABLE]") {
		t.Errorf("numeric table should be dropped entirely, got %q", got)
	}
	if !strings.Contains(got, "intro") || !strings.Contains(got, "outro") {
		t.Errorf("surrounding text lost, got %q", got)
	}
}

func TestClean_RetainsProseTable(t *testing.T) {
	raw := "intro\n<TABLE><tr><td>the registrant operates retail stores in many countries worldwide</td></tr></TABLE>\noutro"
	got := New().Clean(raw)
	if !strings.Contains(got, "[TABLE]") || !strings.Contains(got, "[/TABLE]") {
		t.Errorf("prose table should be retained with markers, got %q", got)
	}
	if !strings.Contains(got, "retail stores") {
		t.Errorf("table text lost, got %q", got)
	}
}

func TestClean_TableDensityBoundary(t *testing.T) {
	// 9 letters, 1 digit: density exactly 0.1, dropped under strict-< retention.
	boundary := "x\n<TABLE>abcdefghi 1</TABLE>\ny"
	got := New().Clean(boundary)
	if strings.Contains(got, "abcdefghi") {
		t.Errorf("table at the density boundary should be dropped, got %q", got)
	}

	// 10 letters, 1 digit: density below 0.1, retained.
	below := "x\n<TABLE>abcdefghij 1</TABLE>\ny"
	got = New().Clean(below)
	if !strings.Contains(got, "abcdefghij") {
		t.Errorf("table below the density boundary should be retained, got %q", got)
	}
}

func TestClean_TableWithoutVisibleCharactersIsDropped(t *testing.T) {
	got := New().Clean("x\n<TABLE> ,.--- </TABLE>\ny")
	if strings.Contains(got, "[TABLE]") {
		t.Errorf("table with zero letters and digits should be dropped, got %q", got)
	}
}

func TestClean_ConfigurableRatio(t *testing.T) {
	// 50% digits: dropped at the default threshold, retained at 0.6.
	raw := "x\n<TABLE>abcde 12345</TABLE>\ny"
	if got := New().Clean(raw); strings.Contains(got, "abcde") {
		t.Errorf("expected drop at default ratio, got %q", got)
	}
	if got := NewWithRatio(0.6).Clean(raw); !strings.Contains(got, "abcde") {
		t.Errorf("expected retention at ratio 0.6, got %q", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<SEC-HEADER>meta</SEC-HEADER>\n<p>Some&nbsp;narrative text.</p>\n\n\n\nmore",
		"intro\n<TABLE><tr><td>the registrant operates many retail stores worldwide</td></tr></TABLE>\noutro",
		"plain text with no markup at all",
		"",
	}
	n := New()
	for _, in := range inputs {
		once := n.Clean(in)
		twice := n.Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestClean_AttachmentBlocksRemoved(t *testing.T) {
	raw := "keep\n<DOCUMENT>\n<TYPE>GRAPHIC\nbinarybinarybinary\n</DOCUMENT>\nalso keep"
	got := New().Clean(raw)
	if strings.Contains(got, "binary") {
		t.Errorf("graphic attachment should be removed, got %q", got)
	}
	if !strings.Contains(got, "keep") || !strings.Contains(got, "also keep") {
		t.Errorf("surrounding text lost, got %q", got)
	}
}
