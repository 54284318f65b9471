// Package corpus is the filesystem collaborator of the pipeline: it lays out
// the local filing corpus by form/year/quarter, enumerates primary documents,
// reads raw text with best-effort decoding, and persists derived artifacts.
//
// Derived artifacts carry an underscore suffix in their stem (x_mda.txt,
// x_item1.txt); primary documents never do, so enumeration can always tell
// them apart and a run never re-processes its own output.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/md-experiments/scraper-edgar/pkg/core/filings"
)

// Store is a corpus rooted at a single directory.
type Store struct {
	root string
}

// NewStore opens a corpus at root, defaulting to "output".
func NewStore(root string) *Store {
	if root == "" {
		root = "output"
	}
	return &Store{root: root}
}

// Root returns the corpus root directory.
func (s *Store) Root() string { return s.root }

// IndexDir returns the directory holding downloaded index files.
func (s *Store) IndexDir() string {
	return filepath.Join(s.root, "index")
}

// IndexPath returns the local path of one quarterly index file.
func (s *Store) IndexPath(year, quarter int) string {
	return filepath.Join(s.IndexDir(), fmt.Sprintf("%d_q%d.idx", year, quarter))
}

// FormDir returns the directory for all filings of a form type.
func (s *Store) FormDir(form filings.FormType) string {
	return filepath.Join(s.root, "filings", form.Dir())
}

// QuarterDir returns the directory for one form/year/quarter cell.
func (s *Store) QuarterDir(form filings.FormType, year, quarter int) string {
	return filepath.Join(s.FormDir(form), strconv.Itoa(year), "q"+strconv.Itoa(quarter))
}

// LogPath returns the append-only log file for one run kind of a form.
func (s *Store) LogPath(form filings.FormType, name string) string {
	return filepath.Join(s.FormDir(form), name)
}

// Filings enumerates the primary documents of one form/year/quarter cell.
// Derived artifacts (any underscore in the stem) are excluded. A missing
// directory yields an empty slice: quarters with no downloads are normal.
func (s *Store) Filings(form filings.FormType, year, quarter int) ([]filings.ID, error) {
	dir := s.QuarterDir(form, year, quarter)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list filings in %s: %w", dir, err)
	}
	var ids []filings.ID
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.Contains(strings.TrimSuffix(name, ".txt"), "_") {
			continue
		}
		ids = append(ids, filings.ID{Form: form, Year: year, Quarter: quarter, Name: name})
	}
	return ids, nil
}

// artifactPath maps an (identity, artifact kind) pair to its file.
func (s *Store) artifactPath(id filings.ID, kind filings.Artifact) string {
	name := id.Stem() + kind.Suffix() + ".txt"
	return filepath.Join(s.QuarterDir(id.Form, id.Year, id.Quarter), name)
}

// Read returns the text of a filing with best-effort decoding: invalid
// UTF-8 is re-decoded as Windows-1252, the usual encoding of older filings.
// The core transformations always receive a valid character sequence.
func (s *Store) Read(id filings.ID) (string, error) {
	data, err := os.ReadFile(s.artifactPath(id, filings.ArtifactClean))
	if err != nil {
		return "", fmt.Errorf("read filing %s: %w", id, err)
	}
	return DecodeBestEffort(data), nil
}

// Write persists one artifact for a filing. The clean artifact overwrites
// the primary document in place; section excerpts get suffixed files.
// An empty excerpt is a valid, meaningful artifact (section absent).
func (s *Store) Write(id filings.ID, kind filings.Artifact, text string) error {
	path := s.artifactPath(id, kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s artifact for %s: %w", kind.Suffix(), id, err)
	}
	return nil
}

// Has reports whether an artifact has already been produced, so re-runs can
// skip documents idempotently. The clean artifact overwrites in place and is
// always considered absent.
func (s *Store) Has(id filings.ID, kind filings.Artifact) bool {
	if kind == filings.ArtifactClean {
		return false
	}
	_, err := os.Stat(s.artifactPath(id, kind))
	return err == nil
}

// DecodeBestEffort converts raw bytes to a string, falling back to
// Windows-1252 when the bytes are not valid UTF-8. Windows-1252 decoding
// cannot fail: every byte maps to some rune.
func DecodeBestEffort(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
