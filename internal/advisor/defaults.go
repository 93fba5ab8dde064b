package advisor

import (
	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

const (
	defaultReasoning   = "Improved for ATS compatibility"
	defaultImpactScore = 75
	defaultImprovement = 15
	suggestedKeywords  = 5
	fallbackKeywords   = 8
)

var defaultFormatTips = []string{
	"Use action verbs at the start of each bullet point",
	"Add numbers to show quantifiable impact",
	"Avoid tables, images, and special characters",
	"Keep consistent formatting throughout",
}

// normalize fills fields the model left out.
func normalize(m *modelImprovement, keywords []string) types.AIImprovementResult {
	out := types.AIImprovementResult{
		ImprovedBullets:    make([]types.ImprovedBullet, 0, len(m.ImprovedBullets)),
		FormatTips:         m.FormatTips,
		KeywordSuggestions: m.MissingKeywords,
		ToneAnalysis: types.ToneAnalysis{
			Current:    types.ToneMixed,
			Suggestion: "Use more active voice and specific metrics",
		},
		EstimatedImprovementScore: int(m.EstimatedImprovement),
	}
	for _, b := range m.ImprovedBullets {
		bullet := types.ImprovedBullet{
			Original:    b.Original,
			Improved:    b.Improved,
			Reasoning:   b.Reasoning,
			ImpactScore: int(b.ImpactScore),
		}
		if bullet.Reasoning == "" {
			bullet.Reasoning = defaultReasoning
		}
		if bullet.ImpactScore == 0 {
			bullet.ImpactScore = defaultImpactScore
		}
		out.ImprovedBullets = append(out.ImprovedBullets, bullet)
	}
	if out.FormatTips == nil {
		out.FormatTips = append([]string(nil), defaultFormatTips...)
	}
	if out.KeywordSuggestions == nil {
		out.KeywordSuggestions = head(keywords, suggestedKeywords)
	}
	if out.EstimatedImprovementScore == 0 {
		out.EstimatedImprovementScore = defaultImprovement
	}
	return out
}

// unparsedDefault stands in for a response that could not be decoded.
func unparsedDefault(keywords []string) *modelImprovement {
	m := &modelImprovement{
		MissingKeywords: head(keywords, suggestedKeywords),
		FormatTips: []string{
			"Start each bullet with a strong action verb",
			"Include specific metrics and percentages",
			"Keep bullet points to 1-2 lines",
		},
		EstimatedImprovement: defaultImprovement,
	}
	m.ImprovedBullets = append(m.ImprovedBullets, modelBullet{
		Improved:    "Increased system efficiency by 25% through optimization",
		Reasoning:   "Added metrics and quantification",
		ImpactScore: 85,
	})
	return m
}

// fallback is the fixed result used when the model could not be reached.
func fallback(role, reason string) Result {
	return Result{
		Kind:   KindFallback,
		Reason: reason,
		Data: types.AIImprovementResult{
			ImprovedBullets: []types.ImprovedBullet{{
				Improved:    "Increased efficiency and delivered results on time",
				Reasoning:   "Added specificity and action-oriented language",
				ImpactScore: 70,
			}},
			FormatTips: []string{
				"Start bullet points with strong action verbs",
				"Add quantifiable metrics (%, $, numbers)",
				"Avoid tables, icons, and special characters",
				"Keep one idea per bullet point",
			},
			KeywordSuggestions: head(skillmaps.RoleATSKeywords(role), fallbackKeywords),
			ToneAnalysis: types.ToneAnalysis{
				Current:    types.ToneMixed,
				Suggestion: "Use active voice and specific achievements",
			},
			EstimatedImprovementScore: 10,
		},
	}
}

func head(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string{}, s...)
}
