// Package ingestion normalizes free text coming into the scorer: uploaded
// résumé text and job descriptions supplied inline, from a file, or by URL.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	extraBlanks = regexp.MustCompile(`\n{3,}`)
)

// bulletGlyphs are rewritten to "- " so downstream bullet detection sees a
// single marker style.
var bulletGlyphs = []string{"• ", "· ", "▪ ", "◦ ", "● ", "– "}

// CleanText normalizes line endings, collapses runs of spaces, unifies
// bullet glyphs and keeps at most one blank line between paragraphs.
// Leading indentation of bullet lines is preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := extraBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	indent := len(line) - len(trimmed)

	for _, g := range bulletGlyphs {
		if strings.HasPrefix(trimmed, g) {
			trimmed = "- " + strings.TrimPrefix(trimmed, g)
			break
		}
	}

	body := innerSpace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 && isBulletLine(body) {
		return strings.Repeat(" ", indent) + body
	}
	return body
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

// FromFile reads and cleans a text file.
func FromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}
