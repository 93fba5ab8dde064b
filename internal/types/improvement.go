//nolint:revive // types is a standard Go package name pattern
package types

// ImprovedBullet is a rewritten résumé bullet.
type ImprovedBullet struct {
	Original    string `json:"original,omitempty"`
	Improved    string `json:"improved"`
	Reasoning   string `json:"reasoning"`
	ImpactScore int    `json:"impactScore"`
}

// Tone values for ToneAnalysis.Current.
const (
	TonePassive = "passive"
	ToneActive  = "active"
	ToneMixed   = "mixed"
)

// ToneAnalysis describes the voice of the résumé: passive, active or mixed.
type ToneAnalysis struct {
	Current    string `json:"current"`
	Suggestion string `json:"suggestion"`
}

// AIImprovementResult is what the improvement advisor returns.
type AIImprovementResult struct {
	ImprovedBullets           []ImprovedBullet `json:"improvedBullets"`
	FormatTips                []string         `json:"formatTips"`
	KeywordSuggestions        []string         `json:"keywordSuggestions"`
	ToneAnalysis              ToneAnalysis     `json:"toneAnalysis"`
	EstimatedImprovementScore int              `json:"estimatedImprovementScore"`
}
