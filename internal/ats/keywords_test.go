package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_Order(t *testing.T) {
	kws := Keywords("Data Analyst", "Tesla")
	assert.Equal(t, "SQL", kws[0])
	assert.Equal(t, "SQL query", kws[13])
	assert.Equal(t, "impact", kws[len(kws)-1])
}

func TestMatchKeywords_CaseInsensitiveAndDeduplicated(t *testing.T) {
	got := MatchKeywords("Built a DASHBOARD in sql", []string{"Dashboard", "SQL", "dashboard", "Tableau", "tableau"})
	assert.Equal(t, []string{"Dashboard", "SQL"}, got.Matched)
	assert.Equal(t, []string{"Tableau"}, got.Missing)
}

func TestMatchKeywords_EmptyInputs(t *testing.T) {
	got := MatchKeywords("", nil)
	assert.NotNil(t, got.Matched)
	assert.NotNil(t, got.Missing)
	assert.Empty(t, got.Matched)
}

func TestMatchKeywords_RoleTablesCountCaseVariantsOnce(t *testing.T) {
	kws := Keywords("Data Analyst", "")
	assert.Contains(t, kws, "Data Analysis")
	assert.Contains(t, kws, "data analysis")

	got := MatchKeywords("Data analysis, dashboard design and metrics reviews", kws)
	assert.Contains(t, got.Matched, "Data Analysis")
	assert.Contains(t, got.Matched, "Dashboard")
	assert.Contains(t, got.Matched, "Metrics")
	assert.NotContains(t, got.Matched, "data analysis")
	assert.NotContains(t, got.Matched, "dashboard")
	assert.NotContains(t, got.Matched, "metrics")

	seen := map[string]bool{}
	for _, kw := range append(append([]string{}, got.Matched...), got.Missing...) {
		key := strings.ToLower(kw)
		assert.False(t, seen[key], "duplicate keyword %q", kw)
		seen[key] = true
	}
}
