// Package observability renders analysis results as boxed text reports for
// the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the outer width of a report box.
	boxWidth = 64
	// maxItemsToShow caps list sections.
	maxItemsToShow = 5
	quickWinCount  = 3
)

// Printer writes analysis reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints title and content inside a box, truncating long lines.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore prints the score, confidence and recommendation.
func (p *Printer) PrintScore(result types.AnalysisResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:       %d/100  %s\n", result.ATSScore, meter(result.ATSScore))
	fmt.Fprintf(&sb, "Confidence:  %s\n", result.ConfidentLevel)
	fmt.Fprintf(&sb, "Words:       %d (~%d page(s))\n", result.Formatting.Length.Words, result.Formatting.Length.Pages)
	fmt.Fprintf(&sb, "Bullets:     %d\n", result.Formatting.Structure.BulletPoints)
	sb.WriteString("\n")
	sb.WriteString(result.Recommendation)
	p.printBox("ATS SCORE", sb.String())
}

// PrintIssues prints the most severe issues with their fixes.
func (p *Printer) PrintIssues(issues []types.ATSIssue) {
	if len(issues) == 0 {
		p.printBox("ISSUES", "No issues detected")
		return
	}

	var sb strings.Builder
	top := ats.TopIssues(issues, maxItemsToShow)
	for i, issue := range top {
		fmt.Fprintf(&sb, "[%s] %s (severity %d)\n", strings.ToUpper(string(issue.Type)), issue.Message, issue.Severity)
		if issue.FixSuggestion != "" {
			fmt.Fprintf(&sb, "  fix: %s\n", issue.FixSuggestion)
		}
		if i < len(top)-1 {
			sb.WriteString("\n")
		}
	}
	if len(issues) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more", len(issues)-maxItemsToShow)
	}
	p.printBox(fmt.Sprintf("ISSUES (%d)", len(issues)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords prints matched and missing keywords.
func (p *Printer) PrintKeywords(result types.AnalysisResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matched (%d): %s\n", len(result.MatchedKeywords), listOrNone(result.MatchedKeywords))
	fmt.Fprintf(&sb, "Missing (%d): %s", len(result.MissingKeywords), listOrNone(head(result.MissingKeywords, maxItemsToShow*2)))
	p.printBox("KEYWORDS", sb.String())
}

// PrintImprovements prints the advisor's rewritten bullets and tips.
func (p *Printer) PrintImprovements(advice types.AIImprovementResult, fallback bool) {
	var sb strings.Builder
	if fallback {
		sb.WriteString("(model unavailable, showing default suggestions)\n\n")
	}
	for _, b := range head(advice.ImprovedBullets, maxItemsToShow) {
		fmt.Fprintf(&sb, "• %s\n", b.Improved)
		fmt.Fprintf(&sb, "  impact %d: %s\n", b.ImpactScore, b.Reasoning)
	}
	if len(advice.KeywordSuggestions) > 0 {
		fmt.Fprintf(&sb, "\nAdd keywords: %s\n", strings.Join(advice.KeywordSuggestions, ", "))
	}
	if advice.ToneAnalysis.Suggestion != "" {
		fmt.Fprintf(&sb, "Tone (%s): %s\n", advice.ToneAnalysis.Current, advice.ToneAnalysis.Suggestion)
	}
	p.printBox("SUGGESTED IMPROVEMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary prints the current and potential score and the quick wins.
// Catalogue fixes that match detected issues are listed after the
// advisor's tips.
func (p *Printer) PrintSummary(data types.AnalysisData) {
	var sb strings.Builder
	s := data.Summary
	fmt.Fprintf(&sb, "Current score:   %d\n", s.CurrentScore)
	fmt.Fprintf(&sb, "Potential score: %d\n", s.PotentialScore)

	wins := append([]string{}, s.QuickWins...)
	wins = append(wins, ats.QuickWins(data.ATSAnalysis.Issues, quickWinCount)...)
	if len(wins) > 0 {
		sb.WriteString("\nQuick wins:\n")
		for i, w := range wins {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, w)
		}
	}
	p.printBox("SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport prints every section of an analysis.
func (p *Printer) PrintReport(data types.AnalysisData, fallback bool) {
	p.PrintScore(data.ATSAnalysis)
	p.PrintIssues(data.ATSAnalysis.Issues)
	p.PrintKeywords(data.ATSAnalysis)
	p.PrintImprovements(data.AIImprovements, fallback)
	p.PrintSummary(data)
}

// meter draws a 20-cell bar for a 0-100 score.
func meter(score int) string {
	filled := max(0, min(20, score/5))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 20-filled) + "]"
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}
