package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearCache drops parsed files so a test starts cold.
func clearCache(t *testing.T) {
	t.Helper()
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func TestGet_AdvisorPrompts(t *testing.T) {
	clearCache(t)

	improve, err := Get("advisor.json", "improve-resume")
	require.NoError(t, err)
	assert.Contains(t, improve, "{{.Resume}}")
	assert.Contains(t, improve, "{{.JobKeywords}}")
	assert.Contains(t, improve, `"improvedBullets"`)

	keywords, err := Get("advisor.json", "extract-job-keywords")
	require.NoError(t, err)
	assert.Contains(t, keywords, "{{.JobDescription}}")
}

func TestGet_Errors(t *testing.T) {
	clearCache(t)

	_, err := Get("nonexistent.json", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get("advisor.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent.json", "x") })
	assert.NotPanics(t, func() { MustGet("advisor.json", "system-improve") })
}

func TestFormat(t *testing.T) {
	out := Format("Role: {{.JobRole}} at {{.Company}}; again {{.JobRole}}", map[string]string{
		"JobRole": "Data Analyst",
		"Company": "{{.JobRole}}",
	})
	assert.Equal(t, "Role: Data Analyst at {{.JobRole}}; again Data Analyst", out)
}

