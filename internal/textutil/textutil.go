package textutil

import (
	"strings"
	"unicode"
)

// LineBreakMarker is the two-character escape that stands for a line break
// inside list and mapping files.
const LineBreakMarker = `\n`

// Scripts accepted by TARGET_SCRIPT.
var Scripts = map[string]*unicode.RangeTable{
	"hebrew":   unicode.Hebrew,
	"arabic":   unicode.Arabic,
	"cyrillic": unicode.Cyrillic,
	"greek":    unicode.Greek,
	"han":      unicode.Han,
}

// ContainsScript checks if a string contains letters of the given script.
func ContainsScript(s string, script *unicode.RangeTable) bool {
	for _, r := range s {
		if unicode.Is(script, r) && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// HasLineBreak reports a real line break or the literal marker.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n") || strings.Contains(s, LineBreakMarker)
}

// EscapeLineBreaks turns real line breaks into the literal marker.
// CRLF and lone CR count as one break.
func EscapeLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", LineBreakMarker)
}

// UnescapeLineBreaks turns the literal marker back into real line breaks.
func UnescapeLineBreaks(s string) string {
	return strings.ReplaceAll(s, LineBreakMarker, "\n")
}

// LineBreakStyle returns the first line break in s: "\r\n", "\r" or "\n".
// A string without one reports "\n".
func LineBreakStyle(s string) string {
	i := strings.IndexAny(s, "\r\n")
	switch {
	case i < 0 || s[i] == '\n':
		return "\n"
	case i+1 < len(s) && s[i+1] == '\n':
		return "\r\n"
	default:
		return "\r"
	}
}

// UnescapeLineBreaksAs is UnescapeLineBreaks writing brk for each marker.
func UnescapeLineBreaksAs(s, brk string) string {
	return strings.ReplaceAll(s, LineBreakMarker, brk)
}

// NormalizeSpace collapses whitespace runs to single spaces and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens a string to maxLen runes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
