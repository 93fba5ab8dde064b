package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	documentBullets = 3
	summaryIssues   = 3
	summaryWins     = 3
	potentialBoost  = 20
)

// BuildDocument assembles the improved résumé that gets rendered. Contact
// details are sample values for the candidate to replace; the experience
// entry carries the first improved bullets and the skills list merges
// matched keywords with the advisor's suggestions.
func BuildDocument(role, company string, analysis types.AnalysisResult, advice types.AIImprovementResult) types.ResumeDocument {
	bullets := make([]string, 0, documentBullets)
	for _, b := range advice.ImprovedBullets {
		if len(bullets) == documentBullets {
			break
		}
		bullets = append(bullets, b.Improved)
	}

	return types.ResumeDocument{
		Name:     "John Doe",
		Email:    "john.doe@example.com",
		Phone:    "+1-234-567-8900",
		LinkedIn: "linkedin.com/in/johndoe",
		Summary:  fmt.Sprintf("Results-driven professional with expertise in %s seeking to drive impact at %s", role, company),
		Experience: []types.DocExperience{{
			Title:    "Senior " + role,
			Company:  "Tech Company",
			Duration: "2022 - Present",
			Bullets:  bullets,
		}},
		Education: []types.DocEducation{{
			Degree:      "Bachelor of Science",
			Field:       "Computer Science",
			Institution: "University",
			Year:        "2020",
		}},
		Skills: mergeSkills(analysis.MatchedKeywords, advice.KeywordSuggestions),
		Projects: []types.DocProject{{
			Title:    "AI Resume Optimizer Project",
			Duration: "2024",
			Bullets:  []string{"Increased resume ATS compatibility by 40%"},
		}},
	}
}

// BuildSummary produces the headline block of the response.
func BuildSummary(analysis types.AnalysisResult, advice types.AIImprovementResult) types.Summary {
	wins := advice.FormatTips
	if len(wins) > summaryWins {
		wins = wins[:summaryWins]
	}
	return types.Summary{
		CurrentScore:   analysis.ATSScore,
		PotentialScore: min(100, analysis.ATSScore+potentialBoost),
		TopIssues:      ats.TopIssueMessages(analysis.Issues, summaryIssues),
		QuickWins:      append([]string{}, wins...),
	}
}

// mergeSkills concatenates lists, dropping case-insensitive duplicates.
func mergeSkills(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
