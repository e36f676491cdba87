// ABOUTME: Ordered immutable knowledge table with YAML loading and validation
// ABOUTME: Keywords are normalized to lowercase and must be unique per table

package knowledge

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is an ordered collection of entries. Order is significant: the
// matcher returns the first entry whose keyword matches, so earlier
// entries shadow later ones. A Table is immutable after construction.
type Table struct {
	entries []Entry
}

// tableFile is the YAML shape of a knowledge table on disk.
type tableFile struct {
	Entries []Entry `yaml:"entries"`
}

// NewTable builds a table from entries, normalizing keywords to lowercase.
// Returns an error on empty keywords, duplicate keywords, or empty answers.
func NewTable(entries []Entry) (*Table, error) {
	seen := make(map[string]bool, len(entries))
	normalized := make([]Entry, 0, len(entries))
	for i, e := range entries {
		kw := strings.ToLower(strings.TrimSpace(e.Keyword))
		if kw == "" {
			return nil, fmt.Errorf("entry %d: keyword is required", i)
		}
		if seen[kw] {
			return nil, fmt.Errorf("entry %d: duplicate keyword %q", i, kw)
		}
		if strings.TrimSpace(e.Response.Answer) == "" {
			return nil, fmt.Errorf("entry %d (%q): answer is required", i, kw)
		}
		seen[kw] = true
		e.Keyword = kw
		normalized = append(normalized, e)
	}
	return &Table{entries: normalized}, nil
}

// Load reads a knowledge table from a YAML file at the given path.
// Environment variables in the format ${VAR_NAME} are expanded before
// parsing, matching the service config loader.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var tf tableFile
	if err := yaml.Unmarshal([]byte(expanded), &tf); err != nil {
		return nil, fmt.Errorf("parsing knowledge file: %w", err)
	}
	if len(tf.Entries) == 0 {
		return nil, fmt.Errorf("knowledge file %s contains no entries", path)
	}

	table, err := NewTable(tf.Entries)
	if err != nil {
		return nil, fmt.Errorf("validating knowledge file: %w", err)
	}
	return table, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Examples returns all example questions in table order.
func (t *Table) Examples() []string {
	var out []string
	for _, e := range t.entries {
		out = append(out, e.Examples...)
	}
	return out
}

// envVarPattern matches ${VAR_NAME} references in raw file content.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to empty strings.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
