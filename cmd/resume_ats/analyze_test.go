package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetAnalyzeFlags(t *testing.T) {
	t.Cleanup(func() {
		analyzeRole, analyzeCompany, analyzeJDFile, analyzeJDURL = "", "", "", ""
		analyzeFormat, analyzeOut, analyzeJSON = string(types.FormatPlain), "", false
	})
}

func TestBuildAnalyzeRequest_Text(t *testing.T) {
	resetAnalyzeFlags(t)
	analyzeRole, analyzeCompany, analyzeFormat = " Data Analyst ", "Google", "latex"
	analyzeJDFile = writeFile(t, "jd.txt", "We need   SQL\r\n\r\n\r\nand Python")

	req, err := buildAnalyzeRequest(writeFile(t, "resume.txt", sampleResume))
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst", req.JobRole)
	assert.Equal(t, "Google", req.Company)
	assert.Equal(t, "LATEX", req.TargetFormat)
	assert.Equal(t, sampleResume, req.ResumeText)
	assert.Nil(t, req.ResumeFile)
	assert.Equal(t, "We need SQL\n\nand Python", req.JobDescription)
	assert.NoError(t, req.Validate())
}

func TestBuildAnalyzeRequest_BinaryUpload(t *testing.T) {
	resetAnalyzeFlags(t)
	analyzeRole, analyzeCompany = "Engineer", "Acme"
	path := writeFile(t, "cv.PDF", "%PDF-1.4 fake")

	req, err := buildAnalyzeRequest(path)
	require.NoError(t, err)
	require.NotNil(t, req.ResumeFile)
	assert.Equal(t, "cv.PDF", req.ResumeFile.FileName)
	assert.Empty(t, req.ResumeText)

	var encoded string
	require.NoError(t, json.Unmarshal(req.ResumeFile.Content, &encoded))
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(decoded))
}

func TestBuildAnalyzeRequest_MissingFiles(t *testing.T) {
	resetAnalyzeFlags(t)
	_, err := buildAnalyzeRequest(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to read résumé")

	analyzeJDFile = filepath.Join(t.TempDir(), "missing-jd.txt")
	_, err = buildAnalyzeRequest(writeFile(t, "resume.txt", sampleResume))
	assert.ErrorContains(t, err, "failed to read job description")
}

func TestAnalyzeCommand_MissingRoleFlag(t *testing.T) {
	cmd := command(t, "analyze", "--company", "Google", "resume.txt")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"role\" not set")
}

func TestAnalyzeCommand_JSONReport(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)
	outFile := filepath.Join(t.TempDir(), "resume.tex")

	cmd := command(t, "analyze", resume,
		"--role", "Data Analyst",
		"--company", "Google",
		"--format", "LATEX",
		"--out", outFile,
		"--json")
	output, err := cmd.Output()
	require.NoError(t, err)

	var data types.AnalysisData
	require.NoError(t, json.Unmarshal(output, &data))
	assert.Equal(t, types.FormatLaTeX, data.GeneratedResume.Format)
	assert.GreaterOrEqual(t, data.Summary.PotentialScore, data.Summary.CurrentScore)
	assert.NotEmpty(t, data.AIImprovements.FormatTips)

	written, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), `\begin{document}`)
}

func TestAnalyzeCommand_HumanReport(t *testing.T) {
	resume := writeFile(t, "resume.txt", sampleResume)

	cmd := command(t, "analyze", resume, "--role", "Data Analyst", "--company", "Google")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), "ATS SCORE")
	assert.Contains(t, string(output), "Advisor fallback")
}

func TestAnalyzeCommand_RejectsUnsupportedUpload(t *testing.T) {
	resume := writeFile(t, "resume.pdf", "not really a pdf")

	cmd := command(t, "analyze", resume, "--role", "Data Analyst", "--company", "Google")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "analysis failed")
}
