// Package filings defines the shared identity types for SEC EDGAR documents:
// form types, target sections, and the (form, year, quarter, file) key that
// addresses a single filing in the local corpus.
package filings

import (
	"fmt"
	"strings"
)

// FormType is the regulatory filing category.
type FormType string

const (
	Form8K   FormType = "8-k"
	Form10K  FormType = "10-k"
	Form10KA FormType = "10-k/a"
	Form10Q  FormType = "10-q"
	Form10QA FormType = "10-q/a"
)

// ParseFormType normalizes user input ("10-K", "10k", "10-k/a") into a FormType.
func ParseFormType(s string) (FormType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "10k", "10-k")
	norm = strings.ReplaceAll(norm, "10q", "10-q")
	norm = strings.ReplaceAll(norm, "8k", "8-k")
	switch FormType(norm) {
	case Form8K, Form10K, Form10KA, Form10Q, Form10QA:
		return FormType(norm), nil
	}
	return "", fmt.Errorf("unknown form type %q (one of: 8-k, 10-k, 10-k/a, 10-q, 10-q/a)", s)
}

// Annual reports true for annual report forms (10-K and amendments).
func (f FormType) Annual() bool {
	return f == Form10K || f == Form10KA
}

// Quarterly reports true for quarterly report forms (10-Q and amendments).
func (f FormType) Quarterly() bool {
	return f == Form10Q || f == Form10QA
}

// Dir returns the corpus directory component for the form type.
// The slash in amended forms is flattened so it cannot split a path.
func (f FormType) Dir() string {
	return strings.ReplaceAll(string(f), "/", "_")
}

// Section identifies a target sub-section of a filing.
type Section int

const (
	// SectionMDA is Management's Discussion and Analysis.
	SectionMDA Section = iota
	// SectionItem1 is the Item 1 business description of an annual filing.
	SectionItem1
)

func (s Section) String() string {
	switch s {
	case SectionMDA:
		return "mda"
	case SectionItem1:
		return "item1"
	}
	return "unknown"
}

// Artifact is the kind of text artifact derived from a filing.
type Artifact int

const (
	// ArtifactClean is the normalized full text; it overwrites the raw filing in place.
	ArtifactClean Artifact = iota
	// ArtifactMDA is the extracted MD&A excerpt.
	ArtifactMDA
	// ArtifactItem1 is the extracted Item 1 excerpt.
	ArtifactItem1
)

// Suffix returns the filename suffix that marks a derived artifact.
// Primary documents never contain an underscore in their stem, so the
// corpus enumerator can exclude derived files by this convention.
func (a Artifact) Suffix() string {
	switch a {
	case ArtifactMDA:
		return "_mda"
	case ArtifactItem1:
		return "_item1"
	}
	return ""
}

// Section returns the section a derived artifact corresponds to, if any.
func (a Artifact) Section() (Section, bool) {
	switch a {
	case ArtifactMDA:
		return SectionMDA, true
	case ArtifactItem1:
		return SectionItem1, true
	}
	return 0, false
}

// ID addresses one filing within the corpus.
type ID struct {
	Form    FormType
	Year    int
	Quarter int
	Name    string // base file name, e.g. "0000320193-20-000096.txt"
}

func (id ID) String() string {
	return fmt.Sprintf("%s/%d/q%d/%s", id.Form, id.Year, id.Quarter, id.Name)
}

// Stem returns the file name without its .txt extension.
func (id ID) Stem() string {
	return strings.TrimSuffix(id.Name, ".txt")
}
