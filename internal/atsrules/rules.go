// Package atsrules contains the published ATS rule tables: category
// thresholds, point deltas, scoring weights and the red/green flag
// vocabularies. Values are fixed at compile time and never mutated.
package atsrules

// BaseScore is the score every analysis starts from before adjustments.
const BaseScore = 100

// LengthRules bounds résumé length.
type LengthRules struct {
	MinWords     int `json:"minWords"`
	MaxWords     int `json:"maxWords"`
	OptimalPages int `json:"optimalPages"`
	MaxPages     int `json:"maxPages"`
	Scoring      struct {
		TooShort int `json:"tooShort"`
		TooLong  int `json:"tooLong"`
		Optimal  int `json:"optimal"`
	} `json:"scoring"`
}

// StructureRules lists required and optional sections.
type StructureRules struct {
	RequiredSections []string `json:"requiredSections"`
	OptionalSections []string `json:"optionalSections"`
	Scoring          struct {
		MissingRequired    int `json:"missingRequired"`
		GoodStructure      int `json:"goodStructure"`
		ExcellentStructure int `json:"excellentStructure"`
	} `json:"scoring"`
}

// FormattingRules describes layout elements ATS parsers choke on.
type FormattingRules struct {
	ForbiddenElements []string `json:"forbiddenElements"`
	AllowedSymbols    []string `json:"allowedSymbols"`
	RecommendedFont   []string `json:"recommendedFont"`
	FontSizeRange     [2]int   `json:"fontSizeRange"`
	Scoring           struct {
		ForbiddenElement int `json:"forbiddenElement"`
		AllowedElement   int `json:"allowedElement"`
		ProperFormatting int `json:"properFormatting"`
	} `json:"scoring"`
}

// KeywordRules configures keyword matching bonuses.
type KeywordRules struct {
	MinKeywordMatches int `json:"minKeywordMatches"`
	Scoring           struct {
		PerKeywordMatch int `json:"perKeywordMatch"`
		BonusFor5Plus   int `json:"bonusFor5Plus"`
		BonusFor10Plus  int `json:"bonusFor10Plus"`
		NoMatches       int `json:"noMatches"`
	} `json:"scoring"`
}

// BulletPointRules configures bullet quality scoring.
type BulletPointRules struct {
	MinBulletsPerRole int `json:"minBulletsPerRole"`
	Scoring           struct {
		StrongActionVerb      int `json:"strongActionVerb"`
		QuantifiedAchievement int `json:"quantifiedAchievement"`
		Specificity           int `json:"specificity"`
		PassiveVoice          int `json:"passiveVoice"`
		Generic               int `json:"generic"`
	} `json:"scoring"`
	ActionVerbExamples []string `json:"actionVerbExamples"`
	WeakWords          []string `json:"weakWords"`
}

// ExperienceRules scores experience relevance.
type ExperienceRules struct {
	Scoring struct {
		RelevantRole        int `json:"relevantRole"`
		RelevantCompany     int `json:"relevantCompany"`
		YearsMismatched     int `json:"yearsMismatched"`
		NoExperienceSection int `json:"noExperienceSection"`
	} `json:"scoring"`
}

// SkillsRules scores the skills section.
type SkillsRules struct {
	MinSkills int `json:"minSkills"`
	Scoring   struct {
		RelevantSkill     int `json:"relevantSkill"`
		Certifications    int `json:"certifications"`
		Technology        int `json:"technology"`
		SoftSkill         int `json:"softSkill"`
		OverflowingSkills int `json:"overflowingSkills"`
	} `json:"scoring"`
}

// EducationRules scores the education section.
type EducationRules struct {
	Scoring struct {
		RelatedDegree          int `json:"relatedDegree"`
		PrestigiousInstitution int `json:"prestigiousInstitution"`
		GPA                    int `json:"gpa"`
		Honors                 int `json:"honors"`
		NoEducation            int `json:"noEducation"`
	} `json:"scoring"`
}

// ReadabilityRules bounds sentence and bullet length.
type ReadabilityRules struct {
	MaxWordsPerBullet   int `json:"maxWordsPerBullet"`
	MaxWordsPerSentence int `json:"maxWordsPerSentence"`
	Scoring             struct {
		ExcellentReadability int `json:"excellentReadability"`
		GoodReadability      int `json:"goodReadability"`
		PoorReadability      int `json:"poorReadability"`
	} `json:"scoring"`
}

// ContactInfoRules lists contact fields.
type ContactInfoRules struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
	Scoring  struct {
		CompleteInfo   int `json:"completeInfo"`
		IncompleteInfo int `json:"incompleteInfo"`
		NoContactInfo  int `json:"noContactInfo"`
	} `json:"scoring"`
}

// Rules is the full rule table.
type Rules struct {
	Length       LengthRules      `json:"length"`
	Structure    StructureRules   `json:"structure"`
	Formatting   FormattingRules  `json:"formatting"`
	Keywords     KeywordRules     `json:"keywords"`
	BulletPoints BulletPointRules `json:"bulletPoints"`
	Experience   ExperienceRules  `json:"experience"`
	Skills       SkillsRules      `json:"skills"`
	Education    EducationRules   `json:"education"`
	Readability  ReadabilityRules `json:"readability"`
	ContactInfo  ContactInfoRules `json:"contactInfo"`
}

// Weights are the category weights of the aggregate score.
type Weights struct {
	Structure   float64 `json:"structure"`
	Keywords    float64 `json:"keywords"`
	Formatting  float64 `json:"formatting"`
	Content     float64 `json:"content"`
	Readability float64 `json:"readability"`
	Experience  float64 `json:"experience"`
}

// QuickFix pairs a common issue with its fix and expected impact.
type QuickFix struct {
	Issue  string `json:"issue"`
	Fix    string `json:"fix"`
	Impact string `json:"impact"`
}

// KeywordCategory groups example keywords under a label.
type KeywordCategory struct {
	Label    string   `json:"label"`
	Examples []string `json:"examples"`
}

// Table bundles every published table, for serialization.
type Table struct {
	BaseScore         int                        `json:"baseScore"`
	Rules             Rules                      `json:"rules"`
	Weights           Weights                    `json:"weights"`
	RedFlags          map[string]string          `json:"redFlags"`
	GreenFlags        map[string]string          `json:"greenFlags"`
	QuickFixes        []QuickFix                 `json:"quickFixes"`
	KeywordCategories map[string]KeywordCategory `json:"keywordCategories"`
}
