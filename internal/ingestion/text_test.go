package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", " \n\t \n", ""},
		{"collapses spaces", "Jane   Doe \t Engineer", "Jane Doe Engineer"},
		{"line endings", "a\r\nb\rc", "a\nb\nc"},
		{"blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"bullet glyphs", "• Led team\n· Shipped", "- Led team\n- Shipped"},
		{"indented bullet kept", "Work\n  - nested item", "Work\n  - nested item"},
		{"indented prose flattened", "   Summary line", "Summary line"},
		{"zero width", "Py\u200bthon", "Python"},
		{"non-breaking space", "SQL\u00a0\u00a0Server", "SQL Server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Deterministic(t *testing.T) {
	in := "EXPERIENCE\n\n\n•  Built   dashboards\r\n"
	assert.Equal(t, CleanText(in), CleanText(CleanText(in)))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("Data  Analyst\r\n\r\n\r\n• SQL"), 0o600))

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst\n\n- SQL", text)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
