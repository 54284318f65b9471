package pipeline

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/md-experiments/scraper-edgar/pkg/core/config"
	"github.com/md-experiments/scraper-edgar/pkg/core/corpus"
	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
)

func testPipeline(t *testing.T) (*Pipeline, *corpus.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputRoot = t.TempDir()
	cfg.Workers = 2
	p := New(cfg, zerolog.Nop())
	return p, p.Store()
}

const rawFiling = `<SEC-HEADER>
CONFORMED SUBMISSION TYPE:	10-K
</SEC-HEADER>
<p>Net sales grew in every segment.</p>
`

func TestRun_CleanTransformsInPlace(t *testing.T) {
	p, st := testPipeline(t)
	id := filings.ID{Form: filings.Form10K, Year: 2018, Quarter: 1, Name: "f.txt"}
	if err := st.Write(id, filings.ArtifactClean, rawFiling); err != nil {
		t.Fatal(err)
	}

	stats, err := p.Run(context.Background(), KindClean, 2018, 2018, filings.Form10K)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 || stats.Failed != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	got, err := st.Read(id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Net sales grew in every segment.") {
		t.Errorf("narrative lost: %q", got)
	}
	if strings.Contains(got, "<") || strings.Contains(got, "SEC-HEADER") {
		t.Errorf("markup survived cleaning: %q", got)
	}

	logData, err := os.ReadFile(st.LogPath(filings.Form10K, "log_parse.txt"))
	if err != nil {
		t.Fatalf("run log not written: %v", err)
	}
	if !strings.Contains(string(logData), "run_id") || !strings.Contains(string(logData), "clean-filings successful") {
		t.Errorf("run log missing completion record: %s", logData)
	}
}

const cleanFiling = "introduction text\n" +
	"ITEM 7. MANAGEMENT'S DISCUSSION AND ANALYSIS OF FINANCIAL CONDITION AND RESULTS OF OPERATIONS\n" +
	"net sales increased due to higher unit volumes across all segments and regions during the year\n" +
	"ITEM 7A. QUANTITATIVE AND QUALITATIVE DISCLOSURES ABOUT MARKET RISK\n"

func TestRun_ExtractWritesArtifactAndSkipsRerun(t *testing.T) {
	p, st := testPipeline(t)
	id := filings.ID{Form: filings.Form10K, Year: 2018, Quarter: 3, Name: "f.txt"}
	if err := st.Write(id, filings.ArtifactClean, cleanFiling); err != nil {
		t.Fatal(err)
	}

	stats, err := p.Run(context.Background(), KindMDA, 2018, 2018, filings.Form10K)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 || stats.Empty != 0 {
		t.Fatalf("first run stats = %+v", stats)
	}
	if !st.Has(id, filings.ArtifactMDA) {
		t.Fatal("section artifact not written")
	}

	stats, err = p.Run(context.Background(), KindMDA, 2018, 2018, filings.Form10K)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 || stats.Processed != 0 {
		t.Errorf("rerun stats = %+v, want the document skipped", stats)
	}
}

func TestRun_SectionAbsentCountsEmpty(t *testing.T) {
	p, st := testPipeline(t)
	id := filings.ID{Form: filings.Form10K, Year: 2019, Quarter: 2, Name: "f.txt"}
	if err := st.Write(id, filings.ArtifactClean, "a filing with no discussion section at all\n"); err != nil {
		t.Fatal(err)
	}

	stats, err := p.Run(context.Background(), KindItem1, 2019, 2019, filings.Form10K)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Processed != 1 || stats.Empty != 1 {
		t.Errorf("stats = %+v, want one processed and one empty", stats)
	}
	// The empty artifact still marks the document as handled.
	if !st.Has(id, filings.ArtifactItem1) {
		t.Error("empty excerpt artifact not written")
	}
}

func TestRun_EmptyRangeIsANoOp(t *testing.T) {
	p, _ := testPipeline(t)
	stats, err := p.Run(context.Background(), KindClean, 1996, 1997, filings.Form10Q)
	if err != nil {
		t.Fatal(err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want all zero", stats)
	}
}
