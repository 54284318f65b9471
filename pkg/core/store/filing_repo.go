package store

import (
	"context"
	"fmt"
	"time"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
	"github.com/md-experiments/scraper-edgar/pkg/core/scrape"
)

// CatalogRecord is one processed filing with its header metadata and the
// lengths of its derived artifacts.
type CatalogRecord struct {
	ID       filings.ID
	Header   scrape.Header
	RunID    string
	CleanLen *int
	MDALen   *int
	Item1Len *int
}

// FilingRepo stores catalog records.
type FilingRepo struct{}

// NewFilingRepo creates a new repository instance.
func NewFilingRepo() *FilingRepo {
	return &FilingRepo{}
}

// Save upserts one catalog record, keyed on (form, file name).
//
// Schema assumption (managed outside this package, e.g. migrations):
//
//	CREATE TABLE IF NOT EXISTS filing_catalog (
//	  form_type   TEXT NOT NULL,
//	  file_name   TEXT NOT NULL,
//	  year        INT,
//	  quarter     INT,
//	  cik         TEXT,
//	  company     TEXT,
//	  sic         TEXT,
//	  report_date DATE,
//	  filing_date DATE,
//	  clean_len   INT,
//	  mda_len     INT,
//	  item1_len   INT,
//	  run_id      TEXT,
//	  updated_at  TIMESTAMPTZ,
//	  PRIMARY KEY (form_type, file_name)
//	);
func (r *FilingRepo) Save(ctx context.Context, rec CatalogRecord) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO filing_catalog
			(form_type, file_name, year, quarter, cik, company, sic,
			 report_date, filing_date, clean_len, mda_len, item1_len, run_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (form_type, file_name) DO UPDATE SET
			clean_len  = COALESCE(EXCLUDED.clean_len, filing_catalog.clean_len),
			mda_len    = COALESCE(EXCLUDED.mda_len, filing_catalog.mda_len),
			item1_len  = COALESCE(EXCLUDED.item1_len, filing_catalog.item1_len),
			run_id     = EXCLUDED.run_id,
			updated_at = EXCLUDED.updated_at`

	_, err := pool.Exec(ctx, query,
		string(rec.ID.Form), rec.ID.Name, rec.ID.Year, rec.ID.Quarter,
		rec.Header.CIK, rec.Header.Company, rec.Header.SIC,
		nullableDate(rec.Header.ReportDate), nullableDate(rec.Header.FilingDate),
		rec.CleanLen, rec.MDALen, rec.Item1Len, rec.RunID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert catalog record for %s: %w", rec.ID, err)
	}
	return nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
