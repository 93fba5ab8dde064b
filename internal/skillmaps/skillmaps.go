// Package skillmaps holds the static role and company profiles used to score
// résumés. The tables are read-only after package initialization and safe to
// share across goroutines; accessors hand out copies.
package skillmaps

import (
	"sort"
	"strings"
)

// Default profile names used when a lookup misses.
const (
	DefaultRole    = "Software Engineer"
	DefaultCompany = "Google"
	// AnyRole disables the role-relevance check in the scoring engine.
	AnyRole = "Any"
)

// RoleProfile describes what a hiring pipeline expects for a job role.
type RoleProfile struct {
	Title            string   `json:"title"`
	Level            string   `json:"level"`
	RequiredSkills   []string `json:"requiredSkills"`
	PreferredSkills  []string `json:"preferredSkills"`
	NiceToHaveSkills []string `json:"niceToHaveSkills"`
	ExperienceYears  int      `json:"experienceYears"`
	Keywords         []string `json:"keywords"`
	ATSKeywords      []string `json:"atsKeywords"`
}

// ATSPreferences is what a company's screening tends to favour.
type ATSPreferences struct {
	PreferredFormat  string   `json:"preferredFormat"`
	FavoredKeywords  []string `json:"favoredKeywords"`
	ValuesEmphasized []string `json:"valuesEmphasized"`
}

// CompanyProfile describes a target employer.
type CompanyProfile struct {
	Name           string         `json:"name"`
	Industry       string         `json:"industry"`
	Culture        []string       `json:"culture"`
	Keywords       []string       `json:"keywords"`
	ATSPreferences ATSPreferences `json:"atsPreferences"`
}

var roles = map[string]RoleProfile{
	"Data Analyst": {
		Title:            "Data Analyst",
		Level:            "mid",
		RequiredSkills:   []string{"SQL", "Python", "Excel", "Data Analysis", "Statistics"},
		PreferredSkills:  []string{"Tableau", "Power BI", "R", "Pandas", "Business Intelligence", "Database Design"},
		NiceToHaveSkills: []string{"Machine Learning", "Advanced Excel", "Hadoop", "Spark", "Cloud Platforms"},
		ExperienceYears:  2,
		Keywords: []string{
			"SQL", "Python", "Excel", "Analytics", "Dashboard", "Report", "Data Analysis",
			"Tableau", "Power BI", "Metrics", "KPI", "Query", "Database",
		},
		ATSKeywords: []string{
			"SQL query", "Python script", "Excel pivot", "data analysis", "statistical",
			"dashboard", "reporting tool", "data visualization", "metrics", "insights",
		},
	},
	"Software Engineer": {
		Title:            "Software Engineer",
		Level:            "mid",
		RequiredSkills:   []string{"JavaScript", "React", "Node.js", "Problem Solving", "Git"},
		PreferredSkills:  []string{"TypeScript", "REST APIs", "SQL", "Docker", "Cloud Platforms", "Testing"},
		NiceToHaveSkills: []string{"AWS", "Kubernetes", "GraphQL", "CI/CD", "Microservices", "System Design"},
		ExperienceYears:  2,
		Keywords: []string{
			"JavaScript", "React", "Node.js", "API", "REST", "Database", "Git", "Testing",
			"Frontend", "Backend", "Full Stack", "Problem Solving",
		},
		ATSKeywords: []string{
			"javascript development", "react component", "node.js", "rest api",
			"git version control", "unit test", "code review", "agile development",
			"debugging", "full-stack",
		},
	},
	"Product Manager": {
		Title:            "Product Manager",
		Level:            "senior",
		RequiredSkills:   []string{"Product Strategy", "Leadership", "Analytics", "Communication", "Stakeholder Management"},
		PreferredSkills:  []string{"A/B Testing", "User Research", "Data Analysis", "Agile", "Product Roadmap", "Market Analysis"},
		NiceToHaveSkills: []string{"Technical Knowledge", "Design Thinking", "Business Acumen", "Executive Presence", "Negotiation"},
		ExperienceYears:  3,
		Keywords: []string{
			"Product Strategy", "Roadmap", "Leadership", "Analytics", "User", "Market",
			"Growth", "Innovation", "Stakeholder", "Vision",
		},
		ATSKeywords: []string{
			"product strategy", "roadmap development", "stakeholder engagement",
			"data-driven decision", "user research", "a/b testing", "market analysis",
			"product launch", "cross-functional leadership", "metrics-driven",
		},
	},
	"Project Manager": {
		Title:            "Project Manager",
		Level:            "mid",
		RequiredSkills:   []string{"Project Management", "Leadership", "Communication", "Risk Management", "Planning"},
		PreferredSkills:  []string{"Agile", "Scrum", "Budgeting", "Scheduling", "Documentation", "Conflict Resolution"},
		NiceToHaveSkills: []string{"PMP Certification", "Waterfall", "Six Sigma", "JIRA", "Microsoft Project", "Executive Presence"},
		ExperienceYears:  2,
		Keywords: []string{
			"Project Management", "Leadership", "Planning", "Team", "Schedule", "Budget",
			"Quality", "Risk", "Communication", "Coordination",
		},
		ATSKeywords: []string{
			"project management", "team leadership", "risk management", "project schedule",
			"stakeholder communication", "resource allocation", "scope management",
			"quality assurance", "budget management", "agile methodology",
		},
	},
}

var companies = map[string]CompanyProfile{
	"Google": {
		Name:     "Google",
		Industry: "Technology",
		Culture:  []string{"Innovation", "Data-Driven", "User Focus", "Collaboration"},
		Keywords: []string{"impact", "scale", "innovation", "user-centric", "data", "technology"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "ats-optimized",
			FavoredKeywords:  []string{"impact at scale", "user experience", "data-driven", "innovation", "collaboration"},
			ValuesEmphasized: []string{"impact", "ownership", "innovation", "quality"},
		},
	},
	"Amazon": {
		Name:     "Amazon",
		Industry: "Technology",
		Culture:  []string{"Customer Obsession", "Ownership", "Bias for Action", "Frugality"},
		Keywords: []string{"customer", "ownership", "action", "results", "operations", "scale"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "ats-optimized",
			FavoredKeywords:  []string{"customer obsession", "ownership", "bias for action", "frugality", "results"},
			ValuesEmphasized: []string{"ownership", "results", "customer focus", "efficiency"},
		},
	},
	"Microsoft": {
		Name:     "Microsoft",
		Industry: "Technology",
		Culture:  []string{"Growth Mindset", "Collaboration", "Quality", "Innovation"},
		Keywords: []string{"collaboration", "quality", "growth", "innovation", "teamwork", "excellence"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "ats-optimized",
			FavoredKeywords:  []string{"collaboration", "quality mindset", "growth mindset", "teamwork", "innovation"},
			ValuesEmphasized: []string{"quality", "teamwork", "growth", "innovation"},
		},
	},
	"IIT": {
		Name:     "IIT",
		Industry: "Education",
		Culture:  []string{"Excellence", "Research", "Innovation", "Leadership"},
		Keywords: []string{"academic", "research", "innovation", "excellence", "teaching", "contribution"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "plain",
			FavoredKeywords:  []string{"research", "academic excellence", "innovation", "teaching", "contribution"},
			ValuesEmphasized: []string{"excellence", "research", "innovation", "leadership"},
		},
	},
	"Meta": {
		Name:     "Meta",
		Industry: "Technology",
		Culture:  []string{"Fast Moving", "Bold", "Social Impact", "Technical Excellence"},
		Keywords: []string{"impact", "scale", "technical", "innovation", "social", "bold"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "ats-optimized",
			FavoredKeywords:  []string{"social impact", "technical excellence", "fast moving", "bold innovation", "scale"},
			ValuesEmphasized: []string{"impact", "technical depth", "boldness", "speed"},
		},
	},
	"Tesla": {
		Name:     "Tesla",
		Industry: "Automotive/Energy",
		Culture:  []string{"Innovation", "Speed", "Efficiency", "Execution"},
		Keywords: []string{"engineering", "innovation", "efficiency", "speed", "execution", "impact"},
		ATSPreferences: ATSPreferences{
			PreferredFormat:  "ats-optimized",
			FavoredKeywords:  []string{"engineering excellence", "rapid execution", "efficiency", "innovation", "impact"},
			ValuesEmphasized: []string{"execution", "innovation", "efficiency", "impact"},
		},
	},
}

// skillBridgeSuggestions maps a missing-skill flag to advice for bridging it.
var skillBridgeSuggestions = map[string]string{
	"missing-sql":        "Highlight any data manipulation experience, even if not explicit SQL",
	"missing-python":     "Emphasize scripting, automation, or any programming experience",
	"missing-tableau":    "Highlight any data visualization or reporting tool experience",
	"missing-excel":      "Emphasize spreadsheet work, analysis, or financial modeling",
	"missing-cloud":      "Highlight on-premise infrastructure, DevOps, or SaaS experience",
	"missing-agile":      "Emphasize iterative work, sprint planning, or collaborative projects",
	"missing-leadership": "Highlight mentoring, team collaboration, or project ownership",
}

var quantificationPhrases = []string{
	"increased by %",
	"improved by %",
	"reduced by %",
	"grew by %",
	"delivered in X days",
	"saved $ or %",
	"processed X records",
	"served X users",
	"led X-person team",
	"managed $ budget",
}

var sectionKeywords = map[string][]string{
	"experience": {"Led", "Developed", "Implemented", "Increased", "Decreased", "Optimized", "Streamlined", "Managed", "Created"},
	"education":  {"Degree", "GPA", "Honors", "Relevant Coursework", "Distinction"},
	"skills":     {"Proficient", "Expert", "Experienced", "Skilled", "Certified", "Knowledgeable"},
	"projects":   {"Architected", "Developed", "Designed", "Built", "Deployed", "Launched", "Contributed"},
}

// Role returns the profile for role, or the default profile when the role is
// unknown. The second return value reports whether role was found.
func Role(role string) (RoleProfile, bool) {
	p, ok := roles[role]
	if !ok {
		p = roles[DefaultRole]
	}
	return p.clone(), ok
}

// Company returns the profile for company, falling back to the default.
func Company(company string) (CompanyProfile, bool) {
	p, ok := companies[company]
	if !ok {
		p = companies[DefaultCompany]
	}
	return p.clone(), ok
}

// RoleKeywords returns the keyword list for role.
func RoleKeywords(role string) []string {
	p, _ := Role(role)
	return p.Keywords
}

// RoleATSKeywords returns the ATS keyword phrases for role.
func RoleATSKeywords(role string) []string {
	p, _ := Role(role)
	return p.ATSKeywords
}

// RoleNames lists the known roles in sorted order.
func RoleNames() []string {
	return sortedKeys(roles)
}

// CompanyNames lists the known companies in sorted order.
func CompanyNames() []string {
	return sortedKeys(companies)
}

// SkillBridge returns the bridging advice for a skill the résumé lacks, e.g.
// "SQL" or "Leadership".
func SkillBridge(skill string) (string, bool) {
	s, ok := skillBridgeSuggestions["missing-"+strings.ToLower(skill)]
	return s, ok
}

// QuantificationPhrases returns example phrasings for measurable results.
func QuantificationPhrases() []string {
	return append([]string(nil), quantificationPhrases...)
}

// SectionKeywords returns the vocabulary expected in a résumé section.
func SectionKeywords(section string) []string {
	return append([]string(nil), sectionKeywords[strings.ToLower(section)]...)
}

func (p RoleProfile) clone() RoleProfile {
	p.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	p.PreferredSkills = append([]string(nil), p.PreferredSkills...)
	p.NiceToHaveSkills = append([]string(nil), p.NiceToHaveSkills...)
	p.Keywords = append([]string(nil), p.Keywords...)
	p.ATSKeywords = append([]string(nil), p.ATSKeywords...)
	return p
}

// AllSkills returns required, preferred and nice-to-have skills in that order.
func (p RoleProfile) AllSkills() []string {
	out := make([]string, 0, len(p.RequiredSkills)+len(p.PreferredSkills)+len(p.NiceToHaveSkills))
	out = append(out, p.RequiredSkills...)
	out = append(out, p.PreferredSkills...)
	return append(out, p.NiceToHaveSkills...)
}

func (c CompanyProfile) clone() CompanyProfile {
	c.Culture = append([]string(nil), c.Culture...)
	c.Keywords = append([]string(nil), c.Keywords...)
	c.ATSPreferences.FavoredKeywords = append([]string(nil), c.ATSPreferences.FavoredKeywords...)
	c.ATSPreferences.ValuesEmphasized = append([]string(nil), c.ATSPreferences.ValuesEmphasized...)
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
