package parsing

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/types"
)

// DefaultMaxFileBytes caps decoded uploads.
const DefaultMaxFileBytes = 10 << 20

// Resolver turns an analysis request into a ParsedResume.
type Resolver struct {
	MaxFileBytes int
}

// NewResolver creates a Resolver. A non-positive limit selects DefaultMaxFileBytes.
func NewResolver(maxFileBytes int) *Resolver {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	return &Resolver{MaxFileBytes: maxFileBytes}
}

// Upload is a decoded résumé file.
type Upload struct {
	FileName string
	FileType string
	Data     []byte
}

// Resolve returns the résumé of req. An uploaded file takes precedence over
// résumé text. Errors are *UploadError for rejected uploads, *ExtractError
// for unreadable files, and ErrNoResume when nothing was supplied. The
// decoded upload is returned so callers can archive it; it is nil for text.
func (r *Resolver) Resolve(req *types.AnalyzeRequest) (types.ParsedResume, *Upload, error) {
	if req.ResumeFile != nil {
		upload, err := r.decode(req.ResumeFile)
		if err != nil {
			return types.ParsedResume{}, nil, err
		}
		text, err := ExtractText(upload.FileType, upload.Data)
		if err != nil {
			return types.ParsedResume{}, nil, err
		}
		return ParseResume(ingestion.CleanText(text), upload.FileName, upload.FileType), upload, nil
	}

	if req.ResumeText != "" {
		return ParseResume(req.ResumeText, "resume", FileTypeText), nil, nil
	}

	return types.ParsedResume{}, nil, ErrNoResume
}

func (r *Resolver) decode(f *types.ResumeFile) (*Upload, error) {
	fileType, err := ValidateFileName(f.FileName)
	if err != nil {
		return nil, err
	}

	data, err := DecodeContent(f.Content)
	if err != nil {
		var ue *UploadError
		if errors.As(err, &ue) {
			ue.FileName = f.FileName
		}
		return nil, err
	}
	if r.MaxFileBytes > 0 && len(data) > r.MaxFileBytes {
		return nil, &UploadError{
			FileName: f.FileName,
			Message:  fmt.Sprintf("file exceeds %d bytes", r.MaxFileBytes),
		}
	}

	return &Upload{FileName: f.FileName, FileType: fileType, Data: data}, nil
}
