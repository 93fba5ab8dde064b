package parsing

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Text(t *testing.T) {
	r := NewResolver(0)
	got, upload, err := r.Resolve(&types.AnalyzeRequest{ResumeText: "Skills: SQL"})
	require.NoError(t, err)
	assert.Nil(t, upload)
	assert.Equal(t, "resume", got.FileName)
	assert.Equal(t, FileTypeText, got.FileType)
	assert.Equal(t, "Skills: SQL", got.Text)
	assert.Contains(t, got.Skills, "SQL")
}

func TestResolve_NoResume(t *testing.T) {
	_, _, err := NewResolver(0).Resolve(&types.AnalyzeRequest{JobRole: "x", Company: "y"})
	assert.ErrorIs(t, err, ErrNoResume)
}

func TestResolve_RejectsExtensionBeforeDecoding(t *testing.T) {
	req := &types.AnalyzeRequest{
		ResumeFile: &types.ResumeFile{FileName: "resume.txt", Content: json.RawMessage(`"garbage"`)},
		ResumeText: "ignored",
	}
	_, _, err := NewResolver(0).Resolve(req)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "resume.txt", ue.FileName)
}

func TestResolve_FileTakesPrecedenceOverText(t *testing.T) {
	req := &types.AnalyzeRequest{
		ResumeFile: &types.ResumeFile{FileName: "resume.pdf", Content: json.RawMessage(`[1,2,3]`)},
		ResumeText: "valid text that is not used",
	}
	_, _, err := NewResolver(0).Resolve(req)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, FileTypePDF, ee.FileType)
}

func TestResolve_SizeLimit(t *testing.T) {
	req := &types.AnalyzeRequest{
		ResumeFile: &types.ResumeFile{FileName: "resume.docx", Content: json.RawMessage(`[1,2,3,4,5]`)},
	}
	_, _, err := NewResolver(4).Resolve(req)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "resume.docx", ue.FileName)
	assert.Contains(t, ue.Message, "exceeds 4 bytes")
}

func TestResolve_BadContentCarriesFileName(t *testing.T) {
	req := &types.AnalyzeRequest{
		ResumeFile: &types.ResumeFile{FileName: "resume.pdf", Content: json.RawMessage(`"%%%"`)},
	}
	_, _, err := NewResolver(0).Resolve(req)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "resume.pdf", ue.FileName)
}
