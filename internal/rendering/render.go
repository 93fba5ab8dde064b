package rendering

import (
	"embed"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/jonathan/resume-ats/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Version is stamped into the metadata of every rendered résumé.
const Version = "1.0"

// plainRule frames the plain-text header.
const plainRule = "═══════════════════════════════════════════════════════════════"

// estimatedScores is the ATS score a freshly rendered résumé is expected to reach.
var estimatedScores = map[types.Format]int{
	types.FormatPlain: 85,
	types.FormatLaTeX: 80,
}

var (
	parseOnce sync.Once
	plainTmpl *template.Template
	latexTmpl *template.Template
	parseErr  error
)

// parseTemplates parses the embedded templates once. The LaTeX template uses
// << >> delimiters so that LaTeX braces stay literal.
func parseTemplates() error {
	parseOnce.Do(func() {
		plainTmpl, parseErr = parse("plain.tmpl", "{{", "}}", template.FuncMap{
			"rule": func() string { return plainRule },
			"join": strings.Join,
		})
		if parseErr != nil {
			return
		}
		latexTmpl, parseErr = parse("latex.tmpl", "<<", ">>", template.FuncMap{
			"escape": EscapeLaTeX,
		})
	})
	return parseErr
}

func parse(name, left, right string, funcs template.FuncMap) (*template.Template, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, &TemplateError{Template: name, Message: "failed to read template", Cause: err}
	}
	tmpl, err := template.New(name).Delims(left, right).Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Template: name, Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}

// Render renders doc in the requested format, stamped with the current time.
func Render(format types.Format, doc types.ResumeDocument) (types.GeneratedResume, error) {
	return RenderAt(format, doc, time.Now())
}

// RenderAt renders doc in the requested format. Any format other than LATEX
// renders as plain text. Missing fields are filled with placeholders.
func RenderAt(format types.Format, doc types.ResumeDocument, now time.Time) (types.GeneratedResume, error) {
	if err := parseTemplates(); err != nil {
		return types.GeneratedResume{}, err
	}

	tmpl := plainTmpl
	if format == types.FormatLaTeX {
		tmpl = latexTmpl
	} else {
		format = types.FormatPlain
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, withPlaceholders(format, doc)); err != nil {
		return types.GeneratedResume{}, &TemplateError{
			Template: tmpl.Name(),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}

	return types.GeneratedResume{
		Format:  format,
		Content: strings.TrimRight(out.String(), "\n") + "\n",
		Metadata: types.GeneratedMetadata{
			GeneratedAt:    now.UTC().Format(time.RFC3339),
			Version:        Version,
			ATSCompatible:  true,
			EstimatedScore: estimatedScores[format],
		},
	}, nil
}

// withPlaceholders returns a copy of doc where empty fields carry the
// placeholder text shown to the user.
func withPlaceholders(format types.Format, doc types.ResumeDocument) types.ResumeDocument {
	linkedIn := "linkedin.com/in/profile"
	if format == types.FormatLaTeX {
		linkedIn = "LinkedIn"
	}

	doc.Name = orDefault(doc.Name, "YOUR NAME")
	doc.Email = orDefault(doc.Email, "email@example.com")
	doc.Phone = orDefault(doc.Phone, "+1-XXX-XXX-XXXX")
	doc.LinkedIn = orDefault(doc.LinkedIn, linkedIn)

	experience := make([]types.DocExperience, len(doc.Experience))
	for i, e := range doc.Experience {
		e.Title = orDefault(e.Title, "Position")
		e.Company = orDefault(e.Company, "Company")
		e.Duration = orDefault(e.Duration, "XX/XXXX - XX/XXXX")
		experience[i] = e
	}
	doc.Experience = experience

	education := make([]types.DocEducation, len(doc.Education))
	for i, e := range doc.Education {
		e.Degree = orDefault(e.Degree, "Degree")
		e.Field = orDefault(e.Field, "Field")
		e.Institution = orDefault(e.Institution, "University")
		e.Year = orDefault(e.Year, "XXXX")
		education[i] = e
	}
	doc.Education = education

	projects := make([]types.DocProject, len(doc.Projects))
	for i, p := range doc.Projects {
		p.Title = orDefault(p.Title, "Project Name")
		p.Duration = orDefault(p.Duration, "XXXX")
		projects[i] = p
	}
	doc.Projects = projects

	certs := make([]types.DocCertificate, len(doc.Certifications))
	for i, c := range doc.Certifications {
		c.Title = orDefault(c.Title, "Certification")
		c.Issuer = orDefault(c.Issuer, "Issuer")
		certs[i] = c
	}
	doc.Certifications = certs

	return doc
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
