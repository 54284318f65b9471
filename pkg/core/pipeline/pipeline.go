// Package pipeline drives batch runs over the local filing corpus: cleaning
// raw filings and extracting MD&A or Item 1 sections, quarter by quarter.
//
// Documents are independent and the core transforms are pure, so work is
// fanned out to a bounded worker pool with no shared mutable state beyond
// the run counters.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/md-experiments/scraper-edgar/pkg/core/config"
	"github.com/md-experiments/scraper-edgar/pkg/core/corpus"
	"github.com/md-experiments/scraper-edgar/pkg/core/extract"
	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
	"github.com/md-experiments/scraper-edgar/pkg/core/normalize"
	"github.com/md-experiments/scraper-edgar/pkg/core/scrape"
	"github.com/md-experiments/scraper-edgar/pkg/core/store"
)

// Kind selects what a batch run does to each document.
type Kind int

const (
	// KindClean normalizes raw filings in place.
	KindClean Kind = iota
	// KindMDA extracts the MD&A section into a derived artifact.
	KindMDA
	// KindItem1 extracts the Item 1 section into a derived artifact.
	KindItem1
)

func (k Kind) String() string {
	switch k {
	case KindClean:
		return "clean-filings"
	case KindMDA:
		return "extract-mda"
	case KindItem1:
		return "extract-item1"
	}
	return "unknown"
}

// logName returns the per-form append-only log file for the run kind.
func (k Kind) logName() string {
	switch k {
	case KindMDA:
		return "log_extract_mda.txt"
	case KindItem1:
		return "log_extract_item1.txt"
	}
	return "log_parse.txt"
}

// artifact returns the artifact the run kind produces.
func (k Kind) artifact() filings.Artifact {
	switch k {
	case KindMDA:
		return filings.ArtifactMDA
	case KindItem1:
		return filings.ArtifactItem1
	}
	return filings.ArtifactClean
}

// Stats summarizes one batch run.
type Stats struct {
	Processed int64 // documents transformed and written
	Skipped   int64 // documents whose artifact already existed
	Empty     int64 // documents where the section was not found
	Failed    int64 // documents that could not be read or written
}

// Pipeline runs batch document processing over a corpus.
type Pipeline struct {
	store   *corpus.Store
	norm    *normalize.Normalizer
	ext     *extract.Extractor
	catalog *store.FilingRepo
	workers int
	log     zerolog.Logger
}

// New builds a pipeline from configuration. log is the progress logger
// (typically the console); each run additionally appends completion records
// to the per-form log file.
func New(cfg config.Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:   corpus.NewStore(cfg.OutputRoot),
		norm:    normalize.NewWithRatio(cfg.TableRatio),
		ext:     extract.New(),
		workers: cfg.Workers,
		log:     log,
	}
}

// WithCatalog enables catalog recording through the given repository.
func (p *Pipeline) WithCatalog(repo *store.FilingRepo) *Pipeline {
	p.catalog = repo
	return p
}

// Store exposes the underlying corpus store.
func (p *Pipeline) Store() *corpus.Store { return p.store }

// Run executes one batch over every quarter in [start, end] for the form
// type. Per-document failures are counted and logged, not fatal; Run only
// returns an error for setup problems or context cancellation.
func (p *Pipeline) Run(ctx context.Context, kind Kind, start, end int, form filings.FormType) (Stats, error) {
	runID := uuid.New().String()

	if err := os.MkdirAll(p.store.FormDir(form), 0o755); err != nil {
		return Stats{}, fmt.Errorf("create form dir: %w", err)
	}
	logFile, err := os.OpenFile(p.store.LogPath(form, kind.logName()), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Stats{}, fmt.Errorf("open run log: %w", err)
	}
	defer logFile.Close()
	runLog := zerolog.New(logFile).With().Timestamp().Str("run_id", runID).Logger()

	p.log.Info().Str("run_id", runID).Str("kind", kind.String()).
		Str("form", string(form)).Int("start", start).Int("end", end).Msg("run starting")

	jobs := make(chan filings.ID)
	var stats Stats
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				p.process(ctx, kind, id, runID, &stats, runLog)
			}
		}()
	}

	var feedErr error
feed:
	for year := start; year <= end; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			ids, err := p.store.Filings(form, year, quarter)
			if err != nil {
				feedErr = err
				break feed
			}
			for _, id := range ids {
				select {
				case jobs <- id:
				case <-ctx.Done():
					feedErr = ctx.Err()
					break feed
				}
			}
		}
	}
	close(jobs)
	wg.Wait()

	p.log.Info().Str("run_id", runID).
		Int64("processed", stats.Processed).Int64("skipped", stats.Skipped).
		Int64("empty", stats.Empty).Int64("failed", stats.Failed).Msg("run completed")
	return stats, feedErr
}

// process handles a single document. All anomalies degrade to counters and
// log records; nothing here aborts the run.
func (p *Pipeline) process(ctx context.Context, kind Kind, id filings.ID, runID string, stats *Stats, runLog zerolog.Logger) {
	if p.store.Has(id, kind.artifact()) {
		atomic.AddInt64(&stats.Skipped, 1)
		return
	}
	txt, err := p.store.Read(id)
	if err != nil {
		atomic.AddInt64(&stats.Failed, 1)
		runLog.Error().Err(err).Str("filing", id.String()).Msg("read failed")
		return
	}

	var out string
	var header scrape.Header
	switch kind {
	case KindClean:
		header = scrape.ParseHeader(txt)
		out = p.norm.Clean(txt)
	case KindMDA:
		out = p.ext.Extract(txt, filings.SectionMDA, id.Form)
	case KindItem1:
		out = p.ext.Extract(txt, filings.SectionItem1, id.Form)
	}

	if err := p.store.Write(id, kind.artifact(), out); err != nil {
		atomic.AddInt64(&stats.Failed, 1)
		runLog.Error().Err(err).Str("filing", id.String()).Msg("write failed")
		return
	}
	atomic.AddInt64(&stats.Processed, 1)
	if kind != KindClean && out == "" {
		atomic.AddInt64(&stats.Empty, 1)
	}
	runLog.Info().Str("filing", id.String()).Int("length", len(out)).Msgf("%s successful", kind)

	if p.catalog != nil {
		p.record(ctx, kind, id, header, runID, len(out), runLog)
	}
}

// record writes the catalog entry for one processed document.
func (p *Pipeline) record(ctx context.Context, kind Kind, id filings.ID, header scrape.Header, runID string, outLen int, runLog zerolog.Logger) {
	rec := store.CatalogRecord{ID: id, Header: header, RunID: runID}
	switch kind {
	case KindClean:
		rec.CleanLen = &outLen
	case KindMDA:
		rec.MDALen = &outLen
	case KindItem1:
		rec.Item1Len = &outLen
	}
	if err := p.catalog.Save(ctx, rec); err != nil {
		runLog.Warn().Err(err).Str("filing", id.String()).Msg("catalog update failed")
	}
}
