package textgen

import (
	"strings"
	"unicode"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Truncate cuts text to at most limit characters, preferring the last
// whitespace before the limit, and appends Ellipsis when anything was cut.
// A limit of zero or less leaves text untouched.
func Truncate(text string, limit int) string {
	if text == "" || limit <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	cut := runes[:limit]
	if idx := lastSpace(cut); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + Ellipsis
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
