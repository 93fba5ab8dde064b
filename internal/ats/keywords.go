package ats

import (
	"strings"

	"github.com/jonathan/resume-ats/internal/skillmaps"
)

// KeywordMatch partitions a keyword list by presence in a résumé.
type KeywordMatch struct {
	Matched []string
	Missing []string
}

// Keywords returns the evaluation list for a role and company: role
// keywords, then role ATS phrases, then company keywords. Unknown roles and
// companies use the default profiles.
func Keywords(role, company string) []string {
	r, _ := skillmaps.Role(role)
	c, _ := skillmaps.Company(company)

	out := make([]string, 0, len(r.Keywords)+len(r.ATSKeywords)+len(c.Keywords))
	out = append(out, r.Keywords...)
	out = append(out, r.ATSKeywords...)
	return append(out, c.Keywords...)
}

// MatchKeywords tests each keyword as a case-insensitive substring of text.
// Keywords that differ only in case are counted once, under the spelling seen
// first.
func MatchKeywords(text string, keywords []string) KeywordMatch {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(keywords))

	var m KeywordMatch
	for _, kw := range keywords {
		key := strings.ToLower(kw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if strings.Contains(lower, key) {
			m.Matched = append(m.Matched, kw)
		} else {
			m.Missing = append(m.Missing, kw)
		}
	}
	if m.Matched == nil {
		m.Matched = []string{}
	}
	if m.Missing == nil {
		m.Missing = []string{}
	}
	return m
}
