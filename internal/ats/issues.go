package ats

import (
	"sort"

	"github.com/jonathan/resume-ats/internal/atsrules"
	"github.com/jonathan/resume-ats/internal/types"
)

// TopIssues returns up to n issues ordered by descending severity. Issues of
// equal severity keep their detection order. The input slice is not modified.
func TopIssues(issues []types.ATSIssue, n int) []types.ATSIssue {
	sorted := make([]types.ATSIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity > sorted[j].Severity
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopIssueMessages is TopIssues reduced to the issue messages.
func TopIssueMessages(issues []types.ATSIssue, n int) []string {
	top := TopIssues(issues, n)
	out := make([]string, len(top))
	for i, issue := range top {
		out[i] = issue.Message
	}
	return out
}

// QuickWins returns up to n fixes from the quick-fix catalogue whose issue
// text appears in one of the detected issue messages.
func QuickWins(issues []types.ATSIssue, n int) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = issue.Message
	}
	out := []string{}
	for _, qf := range atsrules.MatchQuickFixes(messages) {
		if len(out) == n {
			break
		}
		out = append(out, qf.Fix)
	}
	return out
}
