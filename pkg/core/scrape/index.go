package scrape

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/md-experiments/scraper-edgar/pkg/core/corpus"
	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
	"github.com/md-experiments/scraper-edgar/pkg/core/patterns"
)

// IndexEntry is one line of an EDGAR master index file.
type IndexEntry struct {
	CIK      string
	Company  string
	FormType string
	Filed    string
	Path     string // archive path, e.g. "edgar/data/320193/0000320193-20-000096.txt"
	Name     string // bare file name
}

// ParseIndexLine splits one pipe-delimited master index line. Header and
// separator lines return ok=false.
func ParseIndexLine(line string) (IndexEntry, bool) {
	fields := strings.Split(line, "|")
	if len(fields) != 5 {
		return IndexEntry{}, false
	}
	m := patterns.IndexFileName.FindStringSubmatch(fields[4])
	if m == nil {
		return IndexEntry{}, false
	}
	return IndexEntry{
		CIK:      strings.TrimSpace(fields[0]),
		Company:  strings.TrimSpace(fields[1]),
		FormType: strings.TrimSpace(fields[2]),
		Filed:    strings.TrimSpace(fields[3]),
		Path:     m[1],
		Name:     m[2],
	}, true
}

// MatchesForm reports whether the entry's form column matches the given
// form type. Amended forms only match their "/A" variants.
func (e IndexEntry) MatchesForm(form filings.FormType) bool {
	pat := patterns.FormPattern(form)
	return pat != nil && pat.MatchString(e.FormType)
}

// DownloadIndex fetches the quarterly master index files for the year range
// into the corpus index directory, skipping files already present.
func (c *Client) DownloadIndex(ctx context.Context, store *corpus.Store, start, end int, log zerolog.Logger) error {
	if err := os.MkdirAll(store.IndexDir(), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	quarters, err := c.AvailableQuarters(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not list available quarters, trying all")
		quarters = nil
	}
	for year := start; year <= end; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			if quarters != nil && !quarters[quarterKey(year, quarter)] {
				continue
			}
			path := store.IndexPath(year, quarter)
			if _, err := os.Stat(path); err == nil {
				log.Info().Int("year", year).Int("quarter", quarter).Msg("index file exists already")
				continue
			}
			url := fmt.Sprintf("%s/%d/QTR%d/master.idx", IndexURL, year, quarter)
			body, err := c.fetch(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Err(err).Int("year", year).Int("quarter", quarter).Msg("index file not available via EDGAR")
				continue
			}
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				return fmt.Errorf("write index file: %w", err)
			}
			log.Info().Int("year", year).Int("quarter", quarter).Str("path", path).Msg("index file written")
		}
	}
	return nil
}

// CountFilings counts index entries per quarter for a form type and writes
// the counts to <root>/counts_<form>.csv. Quarters with no local index file
// are skipped.
func (c *Client) CountFilings(store *corpus.Store, start, end int, form filings.FormType, log zerolog.Logger) error {
	if patterns.FormPattern(form) == nil {
		return fmt.Errorf("form not implemented: %s (one of: 8-k, 10-k, 10-k/a, 10-q, 10-q/a)", form)
	}
	out, err := os.Create(filepath.Join(store.Root(), "counts_"+form.Dir()+".csv"))
	if err != nil {
		return fmt.Errorf("create counts file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"year", "quarter", "count"}); err != nil {
		return err
	}

	for year := start; year <= end; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			data, err := os.ReadFile(store.IndexPath(year, quarter))
			if err != nil {
				continue
			}
			count := 0
			for _, line := range strings.Split(corpus.DecodeBestEffort(data), "\n") {
				if entry, ok := ParseIndexLine(line); ok && entry.MatchesForm(form) {
					count++
				}
			}
			if err := w.Write([]string{strconv.Itoa(year), strconv.Itoa(quarter), strconv.Itoa(count)}); err != nil {
				return err
			}
			log.Info().Int("year", year).Int("quarter", quarter).Int("count", count).Msg("filings counted")
		}
	}
	return nil
}

// DownloadFilings downloads up to n filings per quarter of the given form
// type, selected in index order, into the corpus year/quarter layout.
// Filings already on disk are not fetched again.
func (c *Client) DownloadFilings(ctx context.Context, store *corpus.Store, start, end int, form filings.FormType, n int, log zerolog.Logger) error {
	if patterns.FormPattern(form) == nil {
		return fmt.Errorf("form not implemented: %s (one of: 8-k, 10-k, 10-k/a, 10-q, 10-q/a)", form)
	}
	for year := start; year <= end; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			data, err := os.ReadFile(store.IndexPath(year, quarter))
			if err != nil {
				continue
			}
			dir := store.QuarterDir(form, year, quarter)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create quarter dir: %w", err)
			}
			got := 0
			for _, line := range strings.Split(corpus.DecodeBestEffort(data), "\n") {
				if got >= n {
					break
				}
				entry, ok := ParseIndexLine(line)
				if !ok || !entry.MatchesForm(form) {
					continue
				}
				id := filings.ID{Form: form, Year: year, Quarter: quarter, Name: entry.Name}
				if _, err := store.Read(id); err == nil {
					got++
					continue
				}
				body, err := c.fetch(ctx, BaseURL+"/"+entry.Path)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					log.Warn().Err(err).Str("filing", entry.Name).Msg("download failed")
					continue
				}
				if err := store.Write(id, filings.ArtifactClean, body); err != nil {
					return err
				}
				got++
				log.Info().Str("filing", id.String()).Int("bytes", len(body)).Msg("filing downloaded")
			}
		}
	}
	return nil
}

func quarterKey(year, quarter int) string {
	return fmt.Sprintf("%d/QTR%d", year, quarter)
}
