package llm

import (
	"regexp"
	"strings"
)

// CleanJSONBlock strips a markdown code fence around a JSON response.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag such as "json" on the fence line.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := text[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

var (
	jsonArray  = regexp.MustCompile(`\[[\s\S]*\]`)
	jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ExtractJSONArray returns the outermost [...] span in text, or "[]".
func ExtractJSONArray(text string) string {
	if m := jsonArray.FindString(text); m != "" {
		return m
	}
	return "[]"
}

// ExtractJSONObject returns the outermost {...} span in text, or "".
func ExtractJSONObject(text string) string {
	return jsonObject.FindString(text)
}
