//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Format selects a résumé rendering.
type Format string

const (
	FormatPlain Format = "PLAIN"
	FormatLaTeX Format = "LATEX"
)

// ParseFormat maps a requested format name to a Format. IIT and OVERLEAF are
// accepted as older names of PLAIN and LATEX. Anything else is PLAIN.
func ParseFormat(s string) Format {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LATEX", "OVERLEAF":
		return FormatLaTeX
	default:
		return FormatPlain
	}
}

// GeneratedMetadata describes a rendered résumé.
type GeneratedMetadata struct {
	GeneratedAt    string `json:"generatedAt"`
	Version        string `json:"version"`
	ATSCompatible  bool   `json:"atsCompatible"`
	EstimatedScore int    `json:"estimatedScore"`
}

// GeneratedResume is a rendered résumé.
type GeneratedResume struct {
	Format   Format            `json:"format"`
	Content  string            `json:"content"`
	Metadata GeneratedMetadata `json:"metadata"`
}
