// ABOUTME: Tests for knowledge table construction and YAML loading
// ABOUTME: Covers validation, env expansion, and the builtin table

package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name: "valid",
			entries: []Entry{
				{Keyword: "pto", Response: Response{Answer: "ask workday"}},
			},
		},
		{
			name: "keyword normalized to lowercase",
			entries: []Entry{
				{Keyword: "  PTO Policy ", Response: Response{Answer: "ask workday"}},
			},
		},
		{
			name:    "missing keyword",
			entries: []Entry{{Response: Response{Answer: "x"}}},
			wantErr: "keyword is required",
		},
		{
			name: "duplicate keyword after normalization",
			entries: []Entry{
				{Keyword: "pto", Response: Response{Answer: "a"}},
				{Keyword: "PTO", Response: Response{Answer: "b"}},
			},
			wantErr: "duplicate keyword",
		},
		{
			name:    "missing answer",
			entries: []Entry{{Keyword: "pto", Response: Response{}}},
			wantErr: "answer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.entries)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.entries), table.Len())
		})
	}
}

func TestLoad(t *testing.T) {
	content := `entries:
  - keyword: Expense Report
    examples:
      - How do I file an expense report?
    response:
      answer: |
        File it in Expensify before the 25th.
      reference: Finance Handbook
      sources:
        - kind: notion
          title: Expense Reports
          url: https://notion.so/${DOCDESK_TEST_WORKSPACE}/expenses
`
	t.Setenv("DOCDESK_TEST_WORKSPACE", "acme")

	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	resp, ok := NewMatcher(table).Match("how do I submit an expense report?")
	require.True(t, ok)
	assert.Equal(t, "Finance Handbook", resp.Reference)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "https://notion.so/acme/expenses", resp.Sources[0].URL)

	assert.Equal(t, []string{"How do I file an expense report?"}, table.Examples())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entries")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("entries: {nope"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestBuiltin(t *testing.T) {
	table := Builtin()
	assert.Equal(t, 5, table.Len())
	assert.NotEmpty(t, table.Examples())
}
