// Package textutils provides text cleanup helpers for free-form responses
// returned by the completion service.
package textutils

import "strings"

const fence = "```"

// SanitizeResponse recovers a structured payload from free text that may be
// wrapped in a fenced code block and/or prefixed with a "json" label. It
// does not check that the result is valid JSON.
func SanitizeResponse(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, fence) {
		newline := strings.Index(text, "\n")
		if newline < 0 {
			return ""
		}
		text = strings.TrimSpace(text[newline+1:])
	}

	if strings.HasSuffix(text, fence) {
		text = strings.TrimSpace(text[:strings.LastIndex(text, fence)])
	}

	if strings.HasPrefix(text, "json") {
		if brace := strings.Index(text, "{"); brace >= 0 {
			text = strings.TrimSpace(text[brace:])
		}
	}

	return text
}

// CollapseWhitespace trims s and replaces every run of whitespace,
// newlines included, with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
