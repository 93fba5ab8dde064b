package atsrules

import "strings"

var weights = Weights{
	Structure:   0.15,
	Keywords:    0.25,
	Formatting:  0.15,
	Content:     0.20,
	Readability: 0.10,
	Experience:  0.15,
}

// Red flag identifiers.
const (
	FlagNoEmail         = "no-email"
	FlagNoPhone         = "no-phone"
	FlagNoExperience    = "no-experience"
	FlagNoEducation     = "no-education"
	FlagImagesDetected  = "images-detected"
	FlagTablesDetected  = "tables-detected"
	FlagSpecialChars    = "special-chars"
	FlagTooLong         = "too-long"
	FlagTooShort        = "too-short"
	FlagNoMetrics       = "no-metrics"
	FlagWeakKeywords    = "weak-keywords"
	FlagNoSkills        = "no-skills"
	FlagMultipleColumns = "multiple-columns"
	FlagPDFScan         = "pdf-scan"
)

var redFlags = map[string]string{
	FlagNoEmail:         "Resume missing email address",
	FlagNoPhone:         "Resume missing phone number",
	FlagNoExperience:    "No work experience section found",
	FlagNoEducation:     "No education section found",
	FlagImagesDetected:  "Images detected - may cause ATS parsing issues",
	FlagTablesDetected:  "Tables detected - may cause ATS parsing issues",
	FlagSpecialChars:    "Special characters or symbols detected",
	FlagTooLong:         "Resume exceeds 2 pages",
	FlagTooShort:        "Resume content very short",
	FlagNoMetrics:       "No quantified achievements found",
	FlagWeakKeywords:    "Few job-relevant keywords",
	FlagNoSkills:        "Skills section missing or very short",
	FlagMultipleColumns: "Multi-column layout detected",
	FlagPDFScan:         "Resume appears to be a scanned PDF image",
}

var greenFlags = map[string]string{
	"strong-keywords":     "Good keyword alignment with job",
	"quantified-bullets":  "Bullets include metrics and percentages",
	"action-verbs":        "Strong action verbs used throughout",
	"clear-structure":     "Clear section organization",
	"relevant-experience": "Experience highly relevant to role",
	"recent-date":         "Recent employment dates",
	"consistent-format":   "Consistent formatting throughout",
	"ats-safe":            "ATS-safe formatting detected",
}

var severities = map[string]int{
	FlagNoEmail:         5,
	FlagNoPhone:         5,
	FlagNoExperience:    4,
	FlagNoEducation:     3,
	FlagImagesDetected:  5,
	FlagTablesDetected:  4,
	FlagSpecialChars:    2,
	FlagTooLong:         2,
	FlagTooShort:        3,
	FlagNoMetrics:       4,
	FlagWeakKeywords:    4,
	FlagNoSkills:        3,
	FlagMultipleColumns: 4,
	FlagPDFScan:         5,
}

var quickFixes = []QuickFix{
	{Issue: "No metrics found", Fix: "Add quantified achievements like '% improvement' or '$ saved'", Impact: "high"},
	{Issue: "Generic bullet points", Fix: "Use strong action verbs and specific details", Impact: "high"},
	{Issue: "Missing job keywords", Fix: "Review job description and add relevant terms naturally", Impact: "high"},
	{Issue: "Resume too long", Fix: "Remove older positions or combine similar items", Impact: "medium"},
	{Issue: "Weak skills section", Fix: "Add 10-15 relevant technical and soft skills", Impact: "medium"},
	{Issue: "Passive language", Fix: "Replace with active voice and strong verbs", Impact: "medium"},
	{Issue: "No summary", Fix: "Add 2-3 line professional summary at top", Impact: "low"},
}

var keywordCategories = map[string]KeywordCategory{
	"technical":      {Label: "Technical Skills", Examples: []string{"Python", "SQL", "React", "AWS", "Machine Learning"}},
	"soft":           {Label: "Soft Skills", Examples: []string{"Leadership", "Communication", "Problem Solving", "Teamwork"}},
	"industry":       {Label: "Industry Terms", Examples: []string{"Data Analysis", "Full Stack", "Agile", "DevOps"}},
	"metrics":        {Label: "Metrics & Achievements", Examples: []string{"increased", "improved", "reduced", "delivered", "achieved"}},
	"responsibility": {Label: "Responsibility Words", Examples: []string{"Led", "Managed", "Implemented", "Designed", "Developed"}},
}

func newRules() Rules {
	var r Rules

	r.Length.MinWords = 200
	r.Length.MaxWords = 1500
	r.Length.OptimalPages = 1
	r.Length.MaxPages = 2
	r.Length.Scoring.TooShort = -15
	r.Length.Scoring.TooLong = -10
	r.Length.Scoring.Optimal = 10

	r.Structure.RequiredSections = []string{"Contact Information", "Experience", "Education", "Skills"}
	r.Structure.OptionalSections = []string{"Certifications", "Projects", "Summary", "Publications", "Volunteering"}
	r.Structure.Scoring.MissingRequired = -20
	r.Structure.Scoring.GoodStructure = 15
	r.Structure.Scoring.ExcellentStructure = 25

	r.Formatting.ForbiddenElements = []string{
		"images", "tables", "text boxes", "multiple columns", "headers/footers with info",
		"page breaks in middle", "unusual fonts", "colors (except black/dark gray)",
	}
	r.Formatting.AllowedSymbols = []string{"-", "•", "*", "|", "/"}
	r.Formatting.RecommendedFont = []string{"Arial", "Calibri", "Times New Roman", "Helvetica"}
	r.Formatting.FontSizeRange = [2]int{10, 12}
	r.Formatting.Scoring.ForbiddenElement = -10
	r.Formatting.Scoring.AllowedElement = 2
	r.Formatting.Scoring.ProperFormatting = 5

	r.Keywords.MinKeywordMatches = 3
	r.Keywords.Scoring.PerKeywordMatch = 2
	r.Keywords.Scoring.BonusFor5Plus = 5
	r.Keywords.Scoring.BonusFor10Plus = 10
	r.Keywords.Scoring.NoMatches = -30

	r.BulletPoints.MinBulletsPerRole = 5
	r.BulletPoints.Scoring.StrongActionVerb = 3
	r.BulletPoints.Scoring.QuantifiedAchievement = 5
	r.BulletPoints.Scoring.Specificity = 2
	r.BulletPoints.Scoring.PassiveVoice = -2
	r.BulletPoints.Scoring.Generic = -1
	r.BulletPoints.ActionVerbExamples = []string{
		"Led", "Developed", "Implemented", "Designed", "Built",
		"Optimized", "Improved", "Increased", "Achieved", "Delivered",
	}
	r.BulletPoints.WeakWords = []string{"Responsible for", "Involved in", "Worked on", "Helped with"}

	r.Experience.Scoring.RelevantRole = 10
	r.Experience.Scoring.RelevantCompany = 5
	r.Experience.Scoring.YearsMismatched = -5
	r.Experience.Scoring.NoExperienceSection = -25

	r.Skills.MinSkills = 5
	r.Skills.Scoring.RelevantSkill = 3
	r.Skills.Scoring.Certifications = 5
	r.Skills.Scoring.Technology = 2
	r.Skills.Scoring.SoftSkill = 1
	r.Skills.Scoring.OverflowingSkills = -5

	r.Education.Scoring.RelatedDegree = 10
	r.Education.Scoring.PrestigiousInstitution = 5
	r.Education.Scoring.GPA = 2
	r.Education.Scoring.Honors = 3
	r.Education.Scoring.NoEducation = -10

	r.Readability.MaxWordsPerBullet = 20
	r.Readability.MaxWordsPerSentence = 25
	r.Readability.Scoring.ExcellentReadability = 10
	r.Readability.Scoring.GoodReadability = 5
	r.Readability.Scoring.PoorReadability = -10

	r.ContactInfo.Required = []string{"name", "phone", "email"}
	r.ContactInfo.Optional = []string{"linkedin", "portfolio", "github"}
	r.ContactInfo.Scoring.CompleteInfo = 5
	r.ContactInfo.Scoring.IncompleteInfo = -5
	r.ContactInfo.Scoring.NoContactInfo = -20

	return r
}

// Current returns a copy of the rule table.
func Current() Rules {
	return newRules()
}

// IssueSeverity returns the severity (1-5) the analyzer reports for a red
// flag id. Unknown flags are minor.
func IssueSeverity(flag string) int {
	if s, ok := severities[flag]; ok {
		return s
	}
	return 2
}

// QuickFixes returns the quick-fix catalogue.
func QuickFixes() []QuickFix {
	return append([]QuickFix(nil), quickFixes...)
}

// MatchQuickFixes returns the quick fixes whose issue text appears in any of
// the given messages, compared case-insensitively, in catalogue order.
func MatchQuickFixes(messages []string) []QuickFix {
	var out []QuickFix
	for _, qf := range quickFixes {
		needle := strings.ToLower(qf.Issue)
		for _, m := range messages {
			if strings.Contains(strings.ToLower(m), needle) {
				out = append(out, qf)
				break
			}
		}
	}
	return out
}

// Snapshot returns every table in one serializable value.
func Snapshot() Table {
	t := Table{
		BaseScore:         BaseScore,
		Rules:             Current(),
		Weights:           weights,
		RedFlags:          make(map[string]string, len(redFlags)),
		GreenFlags:        make(map[string]string, len(greenFlags)),
		QuickFixes:        QuickFixes(),
		KeywordCategories: make(map[string]KeywordCategory, len(keywordCategories)),
	}
	for k, v := range redFlags {
		t.RedFlags[k] = v
	}
	for k, v := range greenFlags {
		t.GreenFlags[k] = v
	}
	for k, v := range keywordCategories {
		v.Examples = append([]string(nil), v.Examples...)
		t.KeywordCategories[k] = v
	}
	return t
}
