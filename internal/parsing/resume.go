package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

// sectionAliases maps heading text to a canonical section title.
var sectionAliases = map[string]string{
	"summary":                   "Summary",
	"professional summary":      "Summary",
	"profile":                   "Summary",
	"objective":                 "Summary",
	"experience":                "Experience",
	"work experience":           "Experience",
	"professional experience":   "Experience",
	"employment history":        "Experience",
	"education":                 "Education",
	"skills":                    "Skills",
	"technical skills":          "Skills",
	"core competencies":         "Skills",
	"projects":                  "Projects",
	"certifications":            "Certifications",
	"licenses & certifications": "Certifications",
	"publications":              "Publications",
	"volunteering":              "Volunteering",
	"awards":                    "Awards",
	"contact":                   "Contact Information",
	"contact information":       "Contact Information",
}

var (
	bulletPrefix  = regexp.MustCompile(`^\s*[-•*·]\s+`)
	dateRange     = regexp.MustCompile(`(?i)\b((?:19|20)\d{2}|\d{1,2}/(?:19|20)\d{2})\s*(?:-|–|—|to)\s*(present|current|(?:19|20)\d{2}|\d{1,2}/(?:19|20)\d{2})\b`)
	yearPattern   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	gpaPattern    = regexp.MustCompile(`(?i)\bGPA[:\s]+([0-9]+(?:\.[0-9]+)?(?:\s*/\s*[0-9]+(?:\.[0-9]+)?)?)`)
	degreePattern = regexp.MustCompile(`(?i)\b(Bachelor(?:'s)? of [A-Za-z]+|Master(?:'s)? of [A-Za-z]+|Ph\.?D\.?|MBA|B\.?Tech|M\.?Tech|B\.?S\.?c?|M\.?S\.?c?|B\.?A\.?|M\.?A\.?|Associate(?:'s)?)\b`)
	schoolPattern = regexp.MustCompile(`(?i)(University|College|Institute|School|Academy)`)
	listSeparator = regexp.MustCompile(`\s*[,;|•·]\s*`)
)

// ParseResume recovers sections, skills, experience and education entries
// from résumé text. Recovery is best effort; unrecognized text is ignored.
func ParseResume(text, fileName, fileType string) types.ParsedResume {
	sections := SplitSections(text)

	parsed := types.ParsedResume{
		Text:       text,
		Sections:   sections,
		Skills:     []string{},
		Experience: []types.Experience{},
		Education:  []types.Education{},
		FileName:   fileName,
		FileType:   fileType,
	}

	for _, s := range sections {
		switch s.Title {
		case "Skills":
			parsed.Skills = appendUnique(parsed.Skills, splitList(s.Content)...)
		case "Experience":
			parsed.Experience = append(parsed.Experience, parseExperience(s)...)
		case "Education":
			parsed.Education = append(parsed.Education, parseEducation(s)...)
		}
	}
	parsed.Skills = appendUnique(parsed.Skills, KnownSkills(text)...)
	return parsed
}

// SplitSections splits text at recognized headings. A heading is a line
// holding only a section name, optionally followed by a colon; "Skills: Go,
// SQL" opens the Skills section with "Go, SQL" as its first line. Text before
// the first heading becomes a Header section.
func SplitSections(text string) []types.ResumeSection {
	var (
		sections []types.ResumeSection
		current  = types.ResumeSection{Title: "Header"}
		lines    []string
	)
	flush := func() {
		current.Content = strings.TrimSpace(strings.Join(lines, "\n"))
		if current.Content != "" || current.Title != "Header" {
			for _, l := range lines {
				if bulletPrefix.MatchString(l) {
					current.Bullets = append(current.Bullets, bulletPrefix.ReplaceAllString(l, ""))
				}
			}
			sections = append(sections, current)
		}
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		title, rest, ok := headingOf(line)
		if !ok {
			lines = append(lines, line)
			continue
		}
		flush()
		current = types.ResumeSection{Title: title}
		if rest != "" {
			lines = append(lines, rest)
		}
	}
	flush()

	if sections == nil {
		return []types.ResumeSection{}
	}
	return sections
}

// headingOf reports whether line starts a section.
func headingOf(line string) (title, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	head, tail, hasColon := strings.Cut(trimmed, ":")
	if !hasColon {
		head = trimmed
	}
	key := strings.ToLower(strings.Trim(strings.TrimSpace(head), "#*_ "))
	title, ok = sectionAliases[key]
	if !ok {
		return "", "", false
	}
	return title, strings.TrimSpace(tail), true
}

func parseExperience(s types.ResumeSection) []types.Experience {
	var (
		out     []types.Experience
		current *types.Experience
	)
	for _, line := range strings.Split(s.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletPrefix.MatchString(line) || current != nil && !dateRange.MatchString(line) {
			if current == nil {
				out = append(out, types.Experience{})
				current = &out[len(out)-1]
			}
			current.Description = append(current.Description, bulletPrefix.ReplaceAllString(line, ""))
			continue
		}
		out = append(out, headerToExperience(line))
		current = &out[len(out)-1]
	}
	for i := range out {
		if out[i].Description == nil {
			out[i].Description = []string{}
		}
	}
	return out
}

// headerToExperience reads "Title | Company | 2020 - Present" or
// "Title at Company, 2020 - 2022".
func headerToExperience(line string) types.Experience {
	var e types.Experience
	if loc := dateRange.FindStringIndex(line); loc != nil {
		e.Duration = line[loc[0]:loc[1]]
		line = strings.TrimSpace(line[:loc[0]] + line[loc[1]:])
	}
	line = strings.Trim(line, " ,|-–")

	var parts []string
	switch {
	case strings.Contains(line, "|"):
		parts = strings.Split(line, "|")
	case strings.Contains(line, " at "):
		parts = strings.SplitN(line, " at ", 2)
	default:
		parts = strings.Split(line, ",")
	}
	e.Position = strings.Trim(strings.TrimSpace(parts[0]), ",")
	if len(parts) > 1 {
		e.Company = strings.Trim(strings.TrimSpace(parts[1]), ",")
	}
	return e
}

func parseEducation(s types.ResumeSection) []types.Education {
	var out []types.Education
	for _, line := range strings.Split(s.Content, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if m := gpaPattern.FindStringSubmatch(line); m != nil && len(out) > 0 && !degreePattern.MatchString(line) {
			out[len(out)-1].GPA = m[1]
			continue
		}

		var e types.Education
		if m := degreePattern.FindString(line); m != "" {
			e.Degree = m
			if rest := strings.TrimSpace(line[strings.Index(line, m)+len(m):]); strings.HasPrefix(strings.ToLower(rest), "in ") {
				field, _, _ := strings.Cut(rest[3:], "|")
				field, _, _ = strings.Cut(field, ",")
				e.Field = strings.TrimSpace(field)
			}
		}
		for _, part := range listSeparator.Split(line, -1) {
			if schoolPattern.MatchString(part) {
				e.Institution = strings.TrimSpace(part)
				break
			}
		}
		if years := yearPattern.FindAllString(line, -1); len(years) > 0 {
			e.Year = years[len(years)-1]
		}
		if m := gpaPattern.FindStringSubmatch(line); m != nil {
			e.GPA = m[1]
		}
		if e.Degree == "" && e.Institution == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

type skillMatcher struct {
	skill   string
	pattern *regexp.Regexp
}

// knownSkills holds a matcher for every skill in the role tables, in table
// order, each skill once.
var knownSkills = func() []skillMatcher {
	var out []skillMatcher
	seen := map[string]bool{}
	for _, role := range skillmaps.RoleNames() {
		p, _ := skillmaps.Role(role)
		for _, skill := range p.AllSkills() {
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, skillMatcher{
				skill:   skill,
				pattern: regexp.MustCompile(`(?i)(^|[^A-Za-z0-9])` + regexp.QuoteMeta(skill) + `($|[^A-Za-z0-9+#])`),
			})
		}
	}
	return out
}()

// KnownSkills returns the skills from the role tables that appear in text as
// whole words.
func KnownSkills(text string) []string {
	var out []string
	for _, m := range knownSkills {
		if m.pattern.MatchString(text) {
			out = append(out, m.skill)
		}
	}
	return out
}

func splitList(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = bulletPrefix.ReplaceAllString(line, "")
		if _, after, ok := strings.Cut(line, ":"); ok {
			line = after
		}
		for _, item := range listSeparator.Split(line, -1) {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func appendUnique(dst []string, items ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, d := range dst {
		seen[strings.ToLower(d)] = true
	}
	for _, item := range items {
		key := strings.ToLower(item)
		if !seen[key] {
			seen[key] = true
			dst = append(dst, item)
		}
	}
	return dst
}
