// Package parsing resolves résumé input into plain text: it validates
// uploads, decodes their content, extracts text from PDF and DOCX files and
// recovers the section structure of the result.
package parsing

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"strings"
)

// Supported upload types.
const (
	FileTypePDF  = "pdf"
	FileTypeDOCX = "docx"
	// FileTypeText marks résumés submitted as plain text.
	FileTypeText = "text"
)

// ValidateFileName checks that an upload is a PDF or DOCX file and returns
// its type.
func ValidateFileName(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FileTypePDF, nil
	case ".docx":
		return FileTypeDOCX, nil
	default:
		return "", &UploadError{FileName: name, Message: "Only PDF or DOCX files are allowed"}
	}
}

// nodeBuffer is how a Node.js Buffer serializes to JSON.
type nodeBuffer struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeContent decodes upload content sent as a base64 string (optionally a
// data URL), a JSON array of byte values, or a serialized Node.js Buffer.
func DecodeContent(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &UploadError{Message: "file content is empty"}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, &UploadError{Message: "invalid file content", Cause: err}
		}
		return decodeBase64(s)
	case '[':
		return decodeByteArray(trimmed)
	case '{':
		var buf nodeBuffer
		if err := json.Unmarshal(trimmed, &buf); err != nil {
			return nil, &UploadError{Message: "invalid file content", Cause: err}
		}
		if buf.Type != "Buffer" || len(buf.Data) == 0 {
			return nil, &UploadError{Message: "unsupported file content object"}
		}
		return decodeByteArray(buf.Data)
	default:
		return nil, &UploadError{Message: "file content must be base64 or a byte array"}
	}
}

func decodeBase64(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &UploadError{Message: "file content is empty"}
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// some clients strip padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, &UploadError{Message: "file content is not valid base64", Cause: err}
	}
	return data, nil
}

// decodeByteArray decodes [37, 80, ...]. encoding/json would treat a []byte
// target as base64, so the values are read as ints and range-checked.
func decodeByteArray(raw []byte) ([]byte, error) {
	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, &UploadError{Message: "invalid byte array", Cause: err}
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, &UploadError{Message: "byte array value out of range"}
		}
		out[i] = byte(v)
	}
	return out, nil
}
