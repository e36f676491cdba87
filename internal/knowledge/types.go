// ABOUTME: Value types for canned answers and their document-system citations
// ABOUTME: Response and SourceRef are immutable once produced by the matcher

package knowledge

import "time"

// SourceKind tags the document system a citation points into.
// The set is open: new kinds can appear in table files without code changes.
type SourceKind string

const (
	SourceNotion     SourceKind = "notion"
	SourceGoogleDocs SourceKind = "gdocs"
	SourceConfluence SourceKind = "confluence"
)

// SourceRef is a citation pointing to an external document system.
type SourceRef struct {
	Kind  SourceKind `yaml:"kind" json:"kind"`
	Title string     `yaml:"title" json:"title"`
	URL   string     `yaml:"url" json:"url"`
}

// Response is a canned answer. Answer is never empty and may contain
// line breaks and markdown. Reference and Notes are optional labels;
// Sources may be empty (the fallback response carries none).
type Response struct {
	Answer     string      `yaml:"answer" json:"answer"`
	Reference  string      `yaml:"reference,omitempty" json:"reference,omitempty"`
	Notes      string      `yaml:"notes,omitempty" json:"notes,omitempty"`
	Sources    []SourceRef `yaml:"sources,omitempty" json:"sources,omitempty"`
	ProducedAt time.Time   `yaml:"-" json:"produced_at"`
}

// Entry is one knowledge-table row. Keyword is lowercase and unique
// within its table; Examples are optional questions surfaced to the UI
// for pre-filling the input box.
type Entry struct {
	Keyword  string   `yaml:"keyword"`
	Examples []string `yaml:"examples,omitempty"`
	Response Response `yaml:"response"`
}
