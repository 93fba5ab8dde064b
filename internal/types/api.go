//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeFile is an uploaded résumé. Content is either a base64 string or a
// JSON array of byte values.
type ResumeFile struct {
	Content  json.RawMessage `json:"content"`
	FileName string          `json:"fileName"`
	FileType string          `json:"fileType,omitempty"`
}

// AnalyzeRequest is the body of an analysis request.
type AnalyzeRequest struct {
	ResumeFile        *ResumeFile `json:"resumeFile,omitempty"`
	ResumeText        string      `json:"resumeText,omitempty"`
	JobDescription    string      `json:"jobDescription,omitempty"`
	JobDescriptionURL string      `json:"jobDescriptionUrl,omitempty" validate:"omitempty,url"`
	JobRole           string      `json:"jobRole" validate:"required"`
	Company           string      `json:"company" validate:"required"`
	TargetFormat      string      `json:"targetFormat,omitempty" validate:"omitempty,oneof=PLAIN LATEX IIT OVERLEAF"`
}

// Normalize trims the role and company and upper-cases the target format so
// "latex" and "LATEX" validate alike.
func (r *AnalyzeRequest) Normalize() {
	r.JobRole = strings.TrimSpace(r.JobRole)
	r.Company = strings.TrimSpace(r.Company)
	r.TargetFormat = strings.ToUpper(strings.TrimSpace(r.TargetFormat))
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Summary is the headline block of an analysis response.
type Summary struct {
	CurrentScore   int      `json:"currentScore"`
	PotentialScore int      `json:"potentialScore"`
	TopIssues      []string `json:"topIssues"`
	QuickWins      []string `json:"quickWins"`
}

// AnalysisData is the payload of a successful analysis.
type AnalysisData struct {
	ParsedResume    ParsedResume        `json:"parsedResume"`
	ATSAnalysis     AnalysisResult      `json:"atsAnalysis"`
	AIImprovements  AIImprovementResult `json:"aiImprovements"`
	GeneratedResume GeneratedResume     `json:"generatedResume"`
	Summary         Summary             `json:"summary"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ResponseMetadata is attached to every analysis response.
type ResponseMetadata struct {
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	Timestamp        string `json:"timestamp"`
	RequestID        string `json:"requestId,omitempty"`
	AnalysisID       string `json:"analysisId,omitempty"`
	AdvisorFallback  bool   `json:"advisorFallback,omitempty"`
}

// AnalyzeResponse is the envelope of every analysis response. Exactly one of
// Data and Error is set.
type AnalyzeResponse struct {
	Success  bool             `json:"success"`
	Data     *AnalysisData    `json:"data,omitempty"`
	Error    *ErrorBody       `json:"error,omitempty"`
	Metadata ResponseMetadata `json:"metadata"`
}
