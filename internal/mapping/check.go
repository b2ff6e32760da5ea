package mapping

import (
	"sci-translator/internal/interpolation"
	"sci-translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// PlaceholderMismatch is an entry whose translation lost or gained
// format placeholders.
type PlaceholderMismatch struct {
	Entry
	Missing []string
	Extra   []string
}

// CheckPlaceholders compares the placeholders of every entry and logs a
// warning per mismatch.
func CheckPlaceholders(t *Table) []PlaceholderMismatch {
	var out []PlaceholderMismatch
	for _, e := range t.entries {
		missing, extra := interpolation.Diff(e.Source, e.Translation)
		if len(missing) == 0 && len(extra) == 0 {
			continue
		}
		log.Warn().
			Str("source", textutil.Truncate(e.Source, 40)).
			Int("record", e.Record).
			Strs("missing", missing).
			Strs("extra", extra).
			Msg("Placeholder mismatch")
		out = append(out, PlaceholderMismatch{Entry: e, Missing: missing, Extra: extra})
	}
	return out
}
