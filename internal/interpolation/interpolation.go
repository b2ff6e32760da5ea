package interpolation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// varMatch stores a detected placeholder position.
type varMatch struct {
	start, end int
	value      string
}

// patterns detect format placeholders in game strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`%[-+]?[0-9]*(?:\.[0-9]+)?[a-zA-Z][0-9]*`), // %s, %d, %w1, %m8, %2d
	regexp.MustCompile(`%%`),                                      // escaped percent literal
	regexp.MustCompile(`\{[0-9]+\}`),                              // {0}, {1}
}

// Find returns every placeholder in text, in order of appearance.
// Overlapping matches keep the earliest, longest one.
func Find(text string) []string {
	matches := scan(text)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// Has reports whether text contains at least one placeholder.
func Has(text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Strip removes every placeholder from text.
func Strip(text string) string {
	matches := scan(text)
	if len(matches) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m.start])
		last = m.end
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// IsNoise reports whether text carries nothing a translator could work on:
// only placeholders, punctuation, digits, symbols and whitespace remain.
func IsNoise(text string) bool {
	for _, r := range Strip(text) {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Union returns the placeholders of a followed by those of b that a lacks.
func Union(a, b []string) []string {
	out := append([]string{}, a...)
	for _, p := range b {
		if !contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// Diff compares the placeholder multisets of a source and its translation.
// missing are in source but not translation; extra are the reverse.
func Diff(source, translation string) (missing, extra []string) {
	counts := make(map[string]int)
	for _, p := range Find(source) {
		counts[p]++
	}
	for _, p := range Find(translation) {
		counts[p]--
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for n := counts[k]; n > 0; n-- {
			missing = append(missing, k)
		}
		for n := counts[k]; n < 0; n++ {
			extra = append(extra, k)
		}
	}
	return missing, extra
}

func scan(text string) []varMatch {
	var all []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, varMatch{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}
	if len(all) == 0 {
		return nil
	}

	// By position, then longest first for matches sharing a start.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	var filtered []varMatch
	lastEnd := -1
	for _, m := range all {
		if m.start >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.end
		}
	}
	return filtered
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
