//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		request   AnalyzeRequest
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid text request",
			request: AnalyzeRequest{ResumeText: "text", JobRole: "Data Analyst", Company: "Google"},
		},
		{
			name:      "missing role",
			request:   AnalyzeRequest{Company: "Google"},
			wantErr:   true,
			wantField: "JobRole",
		},
		{
			name:      "missing company",
			request:   AnalyzeRequest{JobRole: "Data Analyst"},
			wantErr:   true,
			wantField: "Company",
		},
		{
			name:      "unknown format",
			request:   AnalyzeRequest{JobRole: "Data Analyst", Company: "Google", TargetFormat: "DOCX"},
			wantErr:   true,
			wantField: "TargetFormat",
		},
		{
			name:    "legacy format name",
			request: AnalyzeRequest{JobRole: "Data Analyst", Company: "Google", TargetFormat: "OVERLEAF"},
		},
		{
			name:      "bad job description url",
			request:   AnalyzeRequest{JobRole: "Data Analyst", Company: "Google", JobDescriptionURL: "not a url"},
			wantErr:   true,
			wantField: "JobDescriptionURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestAnalyzeRequest_NormalizeIgnoresFormatCase(t *testing.T) {
	req := AnalyzeRequest{JobRole: "  Data Analyst ", Company: " Google", TargetFormat: " latex "}
	req.Normalize()

	assert.Equal(t, "Data Analyst", req.JobRole)
	assert.Equal(t, "Google", req.Company)
	assert.Equal(t, "LATEX", req.TargetFormat)
	assert.NoError(t, req.Validate())
}

func TestAnalyzeRequest_EmptyFileNameLeftToUploadCheck(t *testing.T) {
	req := AnalyzeRequest{
		JobRole:    "Data Analyst",
		Company:    "Google",
		ResumeFile: &ResumeFile{Content: json.RawMessage(`"JVBERg=="`)},
	}
	assert.NoError(t, req.Validate())
}

func TestAnalyzeRequest_DecodesFileContent(t *testing.T) {
	body := `{"resumeFile":{"content":[37,80,68,70],"fileName":"cv.pdf","fileType":"pdf"},"jobRole":"x","company":"y"}`

	var req AnalyzeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.ResumeFile)
	assert.Equal(t, "cv.pdf", req.ResumeFile.FileName)
	assert.JSONEq(t, `[37,80,68,70]`, string(req.ResumeFile.Content))
}

func TestAnalyzeResponse_OmitsEmptyPayloads(t *testing.T) {
	resp := AnalyzeResponse{
		Success:  false,
		Error:    &ErrorBody{Code: "NO_RESUME", Message: "Either resumeFile or resumeText is required"},
		Metadata: ResponseMetadata{ProcessingTimeMs: 3, Timestamp: "2025-01-01T00:00:00Z"},
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.NotContains(t, m, "data")
	assert.Contains(t, m, "error")
	assert.NotContains(t, m["error"], "details")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatPlain, ParseFormat(""))
	assert.Equal(t, FormatPlain, ParseFormat("IIT"))
	assert.Equal(t, FormatPlain, ParseFormat("plain"))
	assert.Equal(t, FormatLaTeX, ParseFormat("latex"))
	assert.Equal(t, FormatLaTeX, ParseFormat(" OVERLEAF "))
	assert.Equal(t, FormatPlain, ParseFormat("rtf"))
}
