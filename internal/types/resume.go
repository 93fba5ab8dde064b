// Package types provides type definitions for structured data used throughout the resume-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ParsedResume is the résumé text plus whatever structure could be recovered from it.
type ParsedResume struct {
	Text       string          `json:"text"`
	Sections   []ResumeSection `json:"sections"`
	Skills     []string        `json:"skills"`
	Experience []Experience    `json:"experience"`
	Education  []Education     `json:"education"`
	FileName   string          `json:"fileName"`
	FileType   string          `json:"fileType"`
}

// ResumeSection is a titled block of résumé text.
type ResumeSection struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Bullets []string `json:"bullets,omitempty"`
}

// Experience is one position recovered from an experience section.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Description  []string `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree recovered from an education section.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
	GPA         string `json:"gpa,omitempty"`
}

// ResumeDocument is the structured input of the résumé renderer.
type ResumeDocument struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	LinkedIn       string           `json:"linkedin"`
	Summary        string           `json:"summary,omitempty"`
	Experience     []DocExperience  `json:"experience,omitempty"`
	Education      []DocEducation   `json:"education,omitempty"`
	Skills         []string         `json:"skills,omitempty"`
	Projects       []DocProject     `json:"projects,omitempty"`
	Certifications []DocCertificate `json:"certifications,omitempty"`
}

// DocExperience is a position as rendered.
type DocExperience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets,omitempty"`
}

// DocEducation is a degree as rendered.
type DocEducation struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	GPA         string `json:"gpa,omitempty"`
}

// DocProject is a project entry as rendered.
type DocProject struct {
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets,omitempty"`
}

// DocCertificate is a certification entry as rendered.
type DocCertificate struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
}
