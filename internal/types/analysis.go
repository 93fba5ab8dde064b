//nolint:revive // types is a standard Go package name pattern
package types

// IssueType classifies an ATS issue.
type IssueType string

const (
	IssueError      IssueType = "error"
	IssueWarning    IssueType = "warning"
	IssueSuggestion IssueType = "suggestion"
)

// ATSIssue is a problem detected by the scoring engine. Severity runs from 1
// (minor) to 5 (critical).
type ATSIssue struct {
	Type            IssueType `json:"type"`
	Message         string    `json:"message"`
	Severity        int       `json:"severity"`
	Flag            string    `json:"flag,omitempty"`
	SectionAffected string    `json:"sectionAffected,omitempty"`
	FixSuggestion   string    `json:"fixSuggestion,omitempty"`
}

// ConfidenceLevel buckets a score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// LengthReport describes résumé length.
type LengthReport struct {
	Pages    int    `json:"pages"`
	Words    int    `json:"words"`
	Optimal  bool   `json:"optimal"`
	Feedback string `json:"feedback"`
}

// StructureReport describes section layout.
type StructureReport struct {
	HasHeader    bool   `json:"hasHeader"`
	HasSections  bool   `json:"hasSections"`
	BulletPoints int    `json:"bulletPoints"`
	Feedback     string `json:"feedback"`
}

// ReadabilityReport describes word complexity.
type ReadabilityReport struct {
	ComplexWords  int     `json:"complexWords"`
	AvgWordLength float64 `json:"avgWordLength"`
	Optimal       bool    `json:"optimal"`
	Feedback      string  `json:"feedback"`
}

// FormattingReport groups the formatting measurements of an analysis.
type FormattingReport struct {
	Length      LengthReport      `json:"length"`
	Structure   StructureReport   `json:"structure"`
	Readability ReadabilityReport `json:"readability"`
}

// AnalysisResult is the output of the ATS scoring engine.
type AnalysisResult struct {
	ATSScore        int              `json:"atsScore"`
	Issues          []ATSIssue       `json:"issues"`
	MissingKeywords []string         `json:"missingKeywords"`
	MatchedKeywords []string         `json:"matchedKeywords"`
	Formatting      FormattingReport `json:"formatting"`
	Recommendation  string           `json:"recommendation"`
	ConfidentLevel  ConfidenceLevel  `json:"confidentLevel"`
}
