package parsing

import (
	"errors"
	"fmt"
)

// ErrNoResume is returned when a request carries neither a file nor text.
var ErrNoResume = errors.New("either resumeFile or resumeText is required")

// UploadError represents a rejected upload (bad extension, bad encoding, too large)
type UploadError struct {
	FileName string
	Message  string
	Cause    error
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upload %q rejected: %s: %v", e.FileName, e.Message, e.Cause)
	}
	return fmt.Sprintf("upload %q rejected: %s", e.FileName, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// ExtractError represents a failure to pull text out of a PDF or DOCX file
type ExtractError struct {
	FileType string
	Message  string
	Cause    error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s file: %s: %v", e.FileType, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s file: %s", e.FileType, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
