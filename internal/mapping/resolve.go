package mapping

import (
	"strings"
	"unicode"

	"sci-translator/internal/textutil"
)

// Strategy names the lookup that matched a literal.
type Strategy string

const (
	Exact      Strategy = "exact"
	Escaped    Strategy = "escaped"
	Trimmed    Strategy = "trimmed"
	Normalized Strategy = "normalized"
)

// Resolver looks literals up in a table. It only reads the table.
type Resolver struct {
	table      *Table
	normalized map[string]string
}

// NewResolver indexes t for lookups. When several sources collapse to the
// same whitespace-normalized key the longest source wins.
func NewResolver(t *Table) *Resolver {
	r := &Resolver{table: t, normalized: make(map[string]string, t.Len())}
	for _, e := range t.LongestFirst() {
		key := normalizeKey(e.Source)
		if _, taken := r.normalized[key]; !taken {
			r.normalized[key] = e.Translation
		}
	}
	return r
}

func normalizeKey(s string) string {
	return textutil.NormalizeSpace(textutil.UnescapeLineBreaks(s))
}

// Resolve returns the translation for a whole literal. Strategies are tried
// in order: exact, escaped line breaks, trimmed, whitespace-normalized.
// Literals holding real line breaks get real line breaks back.
func (r *Resolver) Resolve(text string) (string, Strategy, bool) {
	if dst, ok := r.table.Get(text); ok {
		return dst, Exact, true
	}

	realBreaks := strings.ContainsAny(text, "\r\n")
	brk := textutil.LineBreakStyle(text)
	// render keeps orig byte-for-byte when dst is just its escaped form,
	// otherwise writes markers back with the literal's own break style.
	render := func(dst, orig string) string {
		if !realBreaks {
			return dst
		}
		if dst == textutil.EscapeLineBreaks(orig) {
			return orig
		}
		return textutil.UnescapeLineBreaksAs(dst, brk)
	}

	escaped := textutil.EscapeLineBreaks(text)
	if realBreaks {
		if dst, ok := r.table.Get(escaped); ok {
			return render(dst, text), Escaped, true
		}
	}

	inner := strings.TrimFunc(text, unicode.IsSpace)
	if inner == "" {
		return "", "", false
	}
	lead := text[:strings.Index(text, inner)]
	trail := text[len(lead)+len(inner):]

	if inner != text {
		if dst, ok := r.table.Get(textutil.EscapeLineBreaks(inner)); ok {
			return lead + render(dst, inner) + trail, Trimmed, true
		}
	}

	if dst, ok := r.normalized[normalizeKey(inner)]; ok {
		return lead + render(dst, inner) + trail, Normalized, true
	}
	return "", "", false
}
