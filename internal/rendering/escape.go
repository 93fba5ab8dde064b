// Package rendering renders structured résumés as plain text or LaTeX.
package rendering

import "strings"

// latexEscaper rewrites the LaTeX special characters \ & % $ # _ { } ~ ^.
// strings.Replacer makes a single left-to-right pass, so the braces and
// backslashes it emits are never escaped a second time.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexEscaper.Replace(text)
}
