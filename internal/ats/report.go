package ats

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/atsrules"
	"github.com/jonathan/resume-ats/internal/types"
)

// wordsPerPage converts a word count to an estimated page count.
const wordsPerPage = 250

var (
	bulletPattern      = regexp.MustCompile(`[-•*]\s`)
	complexWordPattern = regexp.MustCompile(`\b\w{12,}\b`)
)

func formattingReport(text string, words []string, sectionsFound int) types.FormattingReport {
	limits := atsrules.Current().Length
	wordCount := len(words)
	pages := int(math.Ceil(float64(wordCount) / wordsPerPage))

	lengthVerdict := "optimal"
	switch {
	case wordCount < limits.MinWords:
		lengthVerdict = "too short"
	case wordCount > limits.MaxWords:
		lengthVerdict = "too long"
	}

	complexWords := len(complexWordPattern.FindAllString(text, -1))
	readable := float64(complexWords) < float64(wordCount)*0.1
	readabilityVerdict := "Could be improved"
	if readable {
		readabilityVerdict = "Good"
	}

	return types.FormattingReport{
		Length: types.LengthReport{
			Pages:    pages,
			Words:    wordCount,
			Optimal:  wordCount >= limits.MinWords && wordCount <= limits.MaxWords,
			Feedback: fmt.Sprintf("%d words (%d pages) - %s", wordCount, pages, lengthVerdict),
		},
		Structure: types.StructureReport{
			HasHeader:    hasHeader(text),
			HasSections:  sectionsFound >= len(requiredSections),
			BulletPoints: len(bulletPattern.FindAllString(text, -1)),
			Feedback:     fmt.Sprintf("%d/%d required sections found", sectionsFound, len(requiredSections)),
		},
		Readability: types.ReadabilityReport{
			ComplexWords:  complexWords,
			AvgWordLength: averageWordLength(words),
			Optimal:       readable,
			Feedback:      "Readability: " + readabilityVerdict,
		},
	}
}

// hasHeader treats a first line of 6 to 49 characters as a name line.
func hasHeader(text string) bool {
	first := text
	for i, r := range text {
		if r == '\n' {
			first = text[:i]
			break
		}
	}
	n := utf8.RuneCountInString(first)
	return n > 5 && n < 50
}

func averageWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	return float64(total) / float64(len(words))
}
