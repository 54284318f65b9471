package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
)

// Sample copies a random per-quarter sample of filings and their section
// artifacts into <root>/sample for manual validation, recording the sample
// in a semicolon-delimited CSV manifest. Quarters with fewer than n filings
// are skipped.
func (s *Store) Sample(form filings.FormType, section filings.Section, startYear, endYear, n int, seed int64) error {
	sampleDir := filepath.Join(s.root, "sample")
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("create sample dir: %w", err)
	}

	manifest := filepath.Join(sampleDir, form.Dir()+"_sample.csv")
	fresh := false
	if _, err := os.Stat(manifest); os.IsNotExist(err) {
		fresh = true
	}
	f, err := os.OpenFile(manifest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open sample manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if fresh {
		if err := w.Write([]string{"year", "quarter", "file_name"}); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(seed))
	kind := filings.ArtifactMDA
	if section == filings.SectionItem1 {
		kind = filings.ArtifactItem1
	}

	for year := startYear; year <= endYear; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			ids, err := s.Filings(form, year, quarter)
			if err != nil {
				return err
			}
			if len(ids) < n {
				continue
			}
			rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
			for _, id := range ids[:n] {
				if err := w.Write([]string{strconv.Itoa(year), "q" + strconv.Itoa(quarter), id.Name}); err != nil {
					return err
				}
				if err := copyFile(s.artifactPath(id, filings.ArtifactClean), filepath.Join(sampleDir, id.Name)); err != nil {
					return err
				}
				artifact := id.Stem() + kind.Suffix() + ".txt"
				if err := copyFile(s.artifactPath(id, kind), filepath.Join(sampleDir, artifact)); err != nil {
					return err
				}
			}
		}
	}
	w.Flush()
	return w.Error()
}

// Gather pools every section artifact of a form that exceeds minLen
// characters into one newline-delimited corpus file, and returns the number
// of sections pooled.
func (s *Store) Gather(form filings.FormType, section filings.Section, minLen int) (int, error) {
	kind := filings.ArtifactMDA
	if section == filings.SectionItem1 {
		kind = filings.ArtifactItem1
	}
	pooled := filepath.Join(s.FormDir(form), "all_"+section.String()+".txt")

	out, err := os.OpenFile(pooled, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open pooled corpus: %w", err)
	}
	defer out.Close()

	count := 0
	suffix := kind.Suffix() + ".txt"
	err = filepath.WalkDir(s.FormDir(form), func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return err
		}
		if path == pooled {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if len(data) <= minLen {
			return nil
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("gather %s sections: %w", section, err)
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
