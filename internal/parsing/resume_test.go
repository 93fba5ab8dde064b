package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredResume = `Jane Doe
jane@example.com | 555-123-4567

Professional Summary
Analyst who ships dashboards.

EXPERIENCE
Data Analyst | Acme Corp | 2021 - Present
- Built Tableau dashboards for 200 users
- Cut query time by 40%
Junior Analyst at Initech, 2019 - 2021
- Wrote SQL reports

Education:
Bachelor of Science in Statistics, State University, 2019
GPA: 3.8/4.0

Skills: SQL, Python; Excel | Power BI
`

func TestSplitSections(t *testing.T) {
	sections := SplitSections(structuredResume)

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Header", "Summary", "Experience", "Education", "Skills"}, titles)
	assert.Equal(t, "Analyst who ships dashboards.", sections[1].Content)
	assert.Len(t, sections[2].Bullets, 3)
	assert.Equal(t, "SQL, Python; Excel | Power BI", sections[4].Content)
}

func TestSplitSections_NoHeadings(t *testing.T) {
	sections := SplitSections("just one line")
	require.Len(t, sections, 1)
	assert.Equal(t, "Header", sections[0].Title)

	assert.Empty(t, SplitSections(""))
}

func TestParseResume(t *testing.T) {
	got := ParseResume(structuredResume, "cv.pdf", FileTypePDF)

	assert.Equal(t, "cv.pdf", got.FileName)
	assert.Equal(t, FileTypePDF, got.FileType)
	assert.Equal(t, structuredResume, got.Text)

	require.Len(t, got.Experience, 2)
	assert.Equal(t, "Data Analyst", got.Experience[0].Position)
	assert.Equal(t, "Acme Corp", got.Experience[0].Company)
	assert.Equal(t, "2021 - Present", got.Experience[0].Duration)
	assert.Equal(t, []string{"Built Tableau dashboards for 200 users", "Cut query time by 40%"}, got.Experience[0].Description)
	assert.Equal(t, "Junior Analyst", got.Experience[1].Position)
	assert.Equal(t, "Initech", got.Experience[1].Company)

	require.Len(t, got.Education, 1)
	assert.Equal(t, "Bachelor of Science", got.Education[0].Degree)
	assert.Equal(t, "Statistics", got.Education[0].Field)
	assert.Equal(t, "State University", got.Education[0].Institution)
	assert.Equal(t, "2019", got.Education[0].Year)
	assert.Equal(t, "3.8/4.0", got.Education[0].GPA)

	assert.Equal(t, []string{"SQL", "Python", "Excel", "Power BI"}, got.Skills[:4])
	assert.Contains(t, got.Skills, "Tableau")
}

func TestParseResume_PlainTextHasEmptyCollections(t *testing.T) {
	got := ParseResume("John Doe john@x.com", "resume", FileTypeText)
	assert.NotNil(t, got.Skills)
	assert.NotNil(t, got.Experience)
	assert.NotNil(t, got.Education)
	assert.Empty(t, got.Experience)
}

func TestKnownSkills(t *testing.T) {
	got := KnownSkills("Go, node.js and React; some R&D. JavaScripting is not a skill")
	assert.Contains(t, got, "Node.js")
	assert.Contains(t, got, "React")
	assert.NotContains(t, got, "JavaScript")
}
