// Package ats implements the rule-based ATS scoring engine. Analyze is a pure
// function of its input: it never fails, and it shares only the read-only
// rule and skill tables between calls.
package ats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-ats/internal/atsrules"
	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

// Point adjustments applied by the live scoring path. These differ from the
// published rule table in a few places (the table also feeds the aggregate
// weights), so they are kept here.
const (
	penaltyTooShort        = 10
	penaltyTooLong         = 15
	penaltyMissingSections = 20
	penaltyNoEmail         = 20
	penaltyNoPhone         = 15
	penaltyFewKeywords     = 25
	penaltyNoActionVerbs   = 10
	penaltyNoMetrics       = 15
	penaltyBrackets        = 5
	penaltyIrrelevantExp   = 5

	bonusPerKeyword  = 2
	bonusActionVerbs = 10
	bonusMetrics     = 15
	bonusRelevantExp = 10

	// minKeywordMatches is the match count below which keywords are penalized.
	minKeywordMatches = 5
)

var (
	emailPattern   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern   = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	metricsPattern = regexp.MustCompile(`(?i)\d+%|\$\d+|increased by \d+|reduced by \d+|\d+ (users|customers|team|projects)`)
)

var requiredSections = []string{"experience", "education", "skills"}

var actionVerbs = []string{
	"led", "developed", "implemented", "designed", "built", "optimized",
	"improved", "increased", "achieved", "delivered", "managed", "created",
}

// Input is what the engine scores.
type Input struct {
	Text    string
	JobRole string
	Company string
	// JobDescription is accepted alongside the other inputs but does not
	// influence the deterministic score; the advisor consumes it.
	JobDescription string
}

// analysis accumulates score and issues while the checks run.
type analysis struct {
	lower  string
	score  int
	issues []types.ATSIssue
}

func (a *analysis) add(issue types.ATSIssue, delta int) {
	a.issues = append(a.issues, issue)
	a.score += delta
}

// Analyze scores a résumé against a job role and company.
func Analyze(in Input) types.AnalysisResult {
	a := &analysis{
		lower:  strings.ToLower(in.Text),
		score:  atsrules.BaseScore,
		issues: []types.ATSIssue{},
	}
	limits := atsrules.Current().Length

	words := strings.Fields(in.Text)
	wordCount := len(words)

	// Length
	if wordCount < limits.MinWords {
		a.add(types.ATSIssue{
			Type:          types.IssueError,
			Message:       "Resume too short - may lack detail needed by ATS",
			Severity:      atsrules.IssueSeverity(atsrules.FlagTooShort),
			Flag:          atsrules.FlagTooShort,
			FixSuggestion: "Add more descriptions and achievements",
		}, -penaltyTooShort)
	}
	if wordCount > limits.MaxWords {
		a.add(types.ATSIssue{
			Type:          types.IssueWarning,
			Message:       fmt.Sprintf("Resume is %d words - exceeds optimal 1-2 page length", wordCount),
			Severity:      atsrules.IssueSeverity(atsrules.FlagTooLong),
			Flag:          atsrules.FlagTooLong,
			FixSuggestion: "Reduce content to 1-1.5 pages",
		}, -penaltyTooLong)
	}

	// Structure
	found, missing := a.sections()
	if len(missing) > 0 {
		a.add(types.ATSIssue{
			Type:            types.IssueError,
			Message:         "Missing key sections: " + strings.Join(missing, ", "),
			Severity:        4,
			SectionAffected: strings.Join(missing, ", "),
			FixSuggestion:   "Add missing sections: Experience, Education, Skills",
		}, -penaltyMissingSections)
	}

	// Contact
	if !emailPattern.MatchString(in.Text) {
		a.add(types.ATSIssue{
			Type:            types.IssueError,
			Message:         "No email address found in resume",
			Severity:        atsrules.IssueSeverity(atsrules.FlagNoEmail),
			Flag:            atsrules.FlagNoEmail,
			SectionAffected: "Contact Information",
			FixSuggestion:   "Add your email address at the top of the resume",
		}, -penaltyNoEmail)
	}
	if !phonePattern.MatchString(in.Text) {
		a.add(types.ATSIssue{
			Type:            types.IssueError,
			Message:         "No phone number found in resume",
			Severity:        atsrules.IssueSeverity(atsrules.FlagNoPhone),
			Flag:            atsrules.FlagNoPhone,
			SectionAffected: "Contact Information",
			FixSuggestion:   "Add your phone number in contact information",
		}, -penaltyNoPhone)
	}

	// Keywords
	kw := MatchKeywords(in.Text, Keywords(in.JobRole, in.Company))
	if len(kw.Matched) < minKeywordMatches {
		a.add(types.ATSIssue{
			Type:            types.IssueWarning,
			Message:         fmt.Sprintf("Only %d key job-related keywords found", len(kw.Matched)),
			Severity:        atsrules.IssueSeverity(atsrules.FlagWeakKeywords),
			Flag:            atsrules.FlagWeakKeywords,
			SectionAffected: "Skills",
			FixSuggestion:   "Add more keywords: " + strings.Join(head(kw.Missing, 5), ", "),
		}, -penaltyFewKeywords)
	} else {
		a.score += bonusPerKeyword * len(kw.Matched)
	}

	// Action verbs
	if a.containsAny(actionVerbs) {
		a.score += bonusActionVerbs
	} else {
		a.add(types.ATSIssue{
			Type:          types.IssueWarning,
			Message:       "No strong action verbs detected in resume",
			Severity:      3,
			FixSuggestion: "Start bullet points with action verbs: Led, Developed, Implemented, etc.",
		}, -penaltyNoActionVerbs)
	}

	// Quantification
	if metricsPattern.MatchString(in.Text) {
		a.score += bonusMetrics
	} else {
		a.add(types.ATSIssue{
			Type:          types.IssueWarning,
			Message:       "No quantified achievements found (metrics, percentages, numbers)",
			Severity:      atsrules.IssueSeverity(atsrules.FlagNoMetrics),
			Flag:          atsrules.FlagNoMetrics,
			FixSuggestion: "Add specific metrics: '30% improvement', '$100K saved', etc.",
		}, -penaltyNoMetrics)
	}

	// Formatting artifacts
	if strings.ContainsAny(in.Text, "[]") {
		a.add(types.ATSIssue{
			Type:          types.IssueWarning,
			Message:       "Possible special characters or formatting that ATS may struggle with",
			Severity:      atsrules.IssueSeverity(atsrules.FlagSpecialChars),
			Flag:          atsrules.FlagSpecialChars,
			FixSuggestion: "Use simple formatting: bullet points only, no brackets",
		}, -penaltyBrackets)
	}

	// Role relevance
	if relevantExperience(ExperienceSection(in.Text), in.JobRole) {
		a.score += bonusRelevantExp
	} else if in.JobRole != skillmaps.AnyRole {
		a.add(types.ATSIssue{
			Type:            types.IssueSuggestion,
			Message:         fmt.Sprintf("Experience may not clearly show %s expertise", in.JobRole),
			Severity:        2,
			SectionAffected: "Experience",
			FixSuggestion:   "Highlight specific projects and achievements related to the role",
		}, -penaltyIrrelevantExp)
	}

	score := clamp(a.score, 0, 100)

	return types.AnalysisResult{
		ATSScore:        score,
		Issues:          a.issues,
		MissingKeywords: kw.Missing,
		MatchedKeywords: kw.Matched,
		Formatting:      formattingReport(in.Text, words, len(found)),
		Recommendation:  recommendation(score, kw.Missing, a.issues),
		ConfidentLevel:  Confidence(score),
	}
}

// sections reports which required sections are present, in declaration order.
func (a *analysis) sections() (found, missing []string) {
	for _, s := range requiredSections {
		if strings.Contains(a.lower, s) {
			found = append(found, s)
		} else {
			missing = append(missing, s)
		}
	}
	return found, missing
}

func (a *analysis) containsAny(needles []string) bool {
	for _, n := range needles {
		if strings.Contains(a.lower, n) {
			return true
		}
	}
	return false
}

// ExperienceSection returns the lower-cased text from the first "experience"
// up to the first "education" that follows it, or to the end of the text.
// Without an "experience" heading the section is empty.
func ExperienceSection(text string) string {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "experience")
	if start < 0 {
		return ""
	}
	section := lower[start:]
	if end := strings.Index(section, "education"); end >= 0 {
		section = section[:end]
	}
	return section
}

// relevantExperience reports whether any word of the role title appears in
// the experience section.
func relevantExperience(section, role string) bool {
	if section == "" {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(role)) {
		if strings.Contains(section, word) {
			return true
		}
	}
	return false
}

// recommendation builds the one-line verdict for a score.
func recommendation(score int, missing []string, issues []types.ATSIssue) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Great! Your resume scores %d/100. Focus on adding more keywords: %s",
			score, strings.Join(head(missing, 3), ", "))
	case score >= 60:
		return fmt.Sprintf("Good foundation! Your resume scores %d/100. Address issues above and add: %s",
			score, strings.Join(head(missing, 3), ", "))
	default:
		fix := "Follow recommendations above"
		for _, issue := range issues {
			if issue.Severity >= 4 && issue.FixSuggestion != "" {
				fix = issue.FixSuggestion
				break
			}
		}
		return fmt.Sprintf("Your resume needs attention (%d/100). %s", score, fix)
	}
}

// Confidence buckets a score: above 80 is high, above 60 medium.
func Confidence(score int) types.ConfidenceLevel {
	switch {
	case score > 80:
		return types.ConfidenceHigh
	case score > 60:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
