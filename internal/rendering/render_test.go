package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func docWith(s string) types.ResumeDocument {
	return types.ResumeDocument{
		Name:     s,
		Email:    s,
		Phone:    s,
		LinkedIn: s,
		Summary:  s,
		Experience: []types.DocExperience{
			{Title: s, Company: s, Duration: s, Bullets: []string{s, s}},
		},
		Education: []types.DocEducation{
			{Degree: s, Field: s, Institution: s, Year: s, GPA: s},
		},
		Skills:         []string{s, s, s},
		Projects:       []types.DocProject{{Title: s, Duration: s, Bullets: []string{s}}},
		Certifications: []types.DocCertificate{{Title: s, Issuer: s}},
	}
}

func TestRenderAt_PlainLayout(t *testing.T) {
	doc := types.ResumeDocument{
		Name:     "Jane",
		Email:    "j@x.io",
		Phone:    "555",
		LinkedIn: "in/jane",
		Summary:  "Sum",
		Experience: []types.DocExperience{
			{Title: "T", Company: "C", Duration: "D", Bullets: []string{"b1"}},
		},
		Skills: []string{"Go", "SQL"},
	}

	got, err := RenderAt(types.FormatPlain, doc, fixedNow)
	require.NoError(t, err)

	want := plainRule + "\n" +
		"Jane\n" +
		"j@x.io | 555 | in/jane\n" +
		plainRule + "\n" +
		"\n" +
		"PROFESSIONAL SUMMARY\n" +
		"Sum\n" +
		"\n" +
		"PROFESSIONAL EXPERIENCE\n" +
		"T | C | D\n" +
		"  • b1\n" +
		"\n" +
		"TECHNICAL SKILLS\n" +
		"Go • SQL\n"
	assert.Equal(t, want, got.Content)
	assert.Equal(t, types.FormatPlain, got.Format)
	assert.Equal(t, "2025-03-14T09:26:53Z", got.Metadata.GeneratedAt)
	assert.Equal(t, "1.0", got.Metadata.Version)
	assert.True(t, got.Metadata.ATSCompatible)
	assert.Equal(t, 85, got.Metadata.EstimatedScore)
}

func TestRenderAt_PlainPlaceholders(t *testing.T) {
	doc := types.ResumeDocument{
		Education:      []types.DocEducation{{GPA: "3.9"}},
		Projects:       []types.DocProject{{}},
		Certifications: []types.DocCertificate{{}},
	}

	got, err := RenderAt(types.FormatPlain, doc, fixedNow)
	require.NoError(t, err)

	for _, line := range []string{
		"YOUR NAME",
		"email@example.com | +1-XXX-XXX-XXXX | linkedin.com/in/profile",
		"EDUCATION",
		"Degree in Field | University | XXXX",
		"  GPA: 3.9",
		"PROJECTS",
		"Project Name | XXXX",
		"CERTIFICATIONS",
		"  • Certification - Issuer",
	} {
		assert.Contains(t, got.Content, line+"\n")
	}
	assert.NotContains(t, got.Content, "PROFESSIONAL SUMMARY")
	assert.NotContains(t, got.Content, "TECHNICAL SKILLS")
}

func TestRenderAt_UnknownFormatIsPlain(t *testing.T) {
	got, err := RenderAt(types.Format("RTF"), types.ResumeDocument{Name: "Jane"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, types.FormatPlain, got.Format)
	assert.True(t, strings.HasPrefix(got.Content, plainRule))
}

func TestRenderAt_LaTeXDocument(t *testing.T) {
	doc := types.ResumeDocument{
		Name:   "Jane Doe",
		Skills: []string{"Go", "C#"},
		Experience: []types.DocExperience{
			{Title: "Engineer", Company: "Acme", Duration: "2020 - 2024", Bullets: []string{"Cut costs by 30%"}},
		},
	}

	got, err := RenderAt(types.FormatLaTeX, doc, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, types.FormatLaTeX, got.Format)
	assert.Equal(t, 80, got.Metadata.EstimatedScore)
	assert.True(t, strings.HasPrefix(got.Content, `\documentclass[11pt]{article}`))
	assert.True(t, strings.HasSuffix(got.Content, "\\end{document}\n"))
	assert.Contains(t, got.Content, `\centerline{\Large\textbf{Jane Doe}}`)
	assert.Contains(t, got.Content, `\href{https://linkedin.com}{LinkedIn}`)
	assert.Contains(t, got.Content, `\textbf{Engineer} $\mid$ \textit{Acme} \hfill 2020 - 2024 \\`)
	assert.Contains(t, got.Content, `  \item Cut costs by 30\%`)
	assert.Contains(t, got.Content, `Go $\cdot$ C\#`)
	assert.NotContains(t, got.Content, "PROFESSIONAL SUMMARY")
}

// Every user string must reach the LaTeX output escaped: replacing the
// escaped value with a neutral token must give the same document as rendering
// the neutral token directly.
func TestRenderAt_LaTeXEscapesAllUserText(t *testing.T) {
	special := `R&D 100% $5 #1 a_b {x} ~y^ C:\path`
	escaped := EscapeLaTeX(special)

	withSpecial, err := RenderAt(types.FormatLaTeX, docWith(special), fixedNow)
	require.NoError(t, err)
	neutral, err := RenderAt(types.FormatLaTeX, docWith("X"), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, neutral.Content, strings.ReplaceAll(withSpecial.Content, escaped, "X"))
	assert.NotContains(t, withSpecial.Content, special)
	assert.Empty(t, unescapedSpecials(escaped))
}

func TestRender_UsesCurrentTime(t *testing.T) {
	got, err := Render(types.FormatPlain, types.ResumeDocument{})
	require.NoError(t, err)

	ts, err := time.Parse(time.RFC3339, got.Metadata.GeneratedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}
